package enginecfg

import "github.com/arenasim/core/engine"

// Bounds returns the world rectangle as an engine.Bounds.
func (c Config) Bounds() engine.Bounds {
	return engine.Bounds{Left: c.BoundsLeft, Right: c.BoundsRight, Bottom: c.BoundsBottom, Top: c.BoundsTop}
}

// UpdateParams builds an engine.UpdateParams from c, plugging in score as
// the host's score(player_type) callback.
func (c Config) UpdateParams(score engine.ScoreFunc) engine.UpdateParams {
	return engine.UpdateParams{
		Score:       score,
		DtMulti:     c.DtMulti,
		EjectMaxAge: c.EjectMaxAge,
		AutoSize:    c.AutoSize,
		DecayMulti:  c.DecayMulti,
		DecayMin:    c.DecayMin,
		Bounds:      c.Bounds(),
	}
}

// MergeParams builds an engine.MergeParams from c.
func (c Config) MergeParams() engine.MergeParams {
	return engine.MergeParams{
		MergeInitial:    c.MergeInitial,
		MergeIncrease:   c.MergeIncrease,
		NoMergeDelay:    c.NoMergeDelay,
		MergeTime:       c.MergeTime,
		MergeVersionNew: c.MergeVersionNew,
		PlayerSpeed:     c.PlayerSpeed,
	}
}

// ResolveParams builds an engine.ResolveParams from c.
func (c Config) ResolveParams() engine.ResolveParams {
	return engine.ResolveParams{
		NoMergeDelay: c.NoMergeDelay,
		NoColliDelay: c.NoColliDelay,
		EatOverlap:   c.EatOverlap,
		EatMulti:     c.EatMulti,
		VirusMaxSize: c.VirusMaxSize,
		RemoveTick:   c.RemoveTick,
	}
}
