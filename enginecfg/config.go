// Package enginecfg loads and saves the tunable parameters a host passes
// into engine.UpdateParams, engine.MergeParams and engine.ResolveParams,
// persisted as a single TOML file.
package enginecfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// Config holds every tunable named in the simulation's option list. The
// zero value is not usable; Load always returns a Config run through
// withDefaults.
type Config struct {
	// World bounds.
	BoundsLeft   float64 `toml:"bounds_left"`
	BoundsRight  float64 `toml:"bounds_right"`
	BoundsBottom float64 `toml:"bounds_bottom"`
	BoundsTop    float64 `toml:"bounds_top"`

	// Integrator.
	DtMulti     float64 `toml:"dt_multi"`
	EjectMaxAge uint32  `toml:"eject_max_age"`
	AutoSize    float64 `toml:"auto_size"`
	DecayMulti  float64 `toml:"decay_multi"`
	DecayMin    float64 `toml:"decay_min"`

	// Player merge and steering.
	MergeInitial    float64 `toml:"merge_initial"`
	MergeIncrease   float64 `toml:"merge_increase"`
	NoMergeDelay    uint32  `toml:"no_merge_delay"`
	MergeTime       uint32  `toml:"merge_time"`
	MergeVersionNew bool    `toml:"merge_version_new"`
	PlayerSpeed     float64 `toml:"player_speed"`

	// Resolver.
	NoColliDelay uint32  `toml:"no_colli_delay"`
	EatOverlap   float64 `toml:"eat_overlap"`
	EatMulti     float64 `toml:"eat_multi"`
	VirusMaxSize float64 `toml:"virus_max_size"`
	RemoveTick   uint32  `toml:"remove_tick"`
}

// withDefaults fills any zero-valued field that the simulation cannot run
// sensibly without, mirroring the pattern of applying defaults onto a
// possibly-partial config loaded from disk.
func (c Config) withDefaults() Config {
	if c.BoundsRight == 0 && c.BoundsLeft == 0 {
		c.BoundsLeft, c.BoundsRight = -8000, 8000
	}
	if c.BoundsTop == 0 && c.BoundsBottom == 0 {
		c.BoundsBottom, c.BoundsTop = -8000, 8000
	}
	if c.DtMulti <= 0 {
		c.DtMulti = 1
	}
	if c.EjectMaxAge == 0 {
		c.EjectMaxAge = 2000
	}
	if c.DecayMulti <= 0 {
		c.DecayMulti = 1
	}
	if c.MergeIncrease <= 0 {
		c.MergeIncrease = 1
	}
	if c.PlayerSpeed <= 0 {
		c.PlayerSpeed = 1
	}
	if c.EatOverlap <= 0 {
		c.EatOverlap = 3
	}
	if c.EatMulti <= 0 {
		c.EatMulti = 1.15
	}
	if c.VirusMaxSize <= 0 {
		c.VirusMaxSize = 400
	}
	if c.RemoveTick == 0 {
		c.RemoveTick = 25
	}
	return c
}

// Load reads the TOML config at path, applying defaults to any field left
// unset. If the file does not exist, Load creates it populated with
// defaults so that subsequent edits have something to start from.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c := Config{}.withDefaults()
			return c, Save(path, c)
		}
		return Config{}, fmt.Errorf("read engine config: %w", err)
	}

	c := Config{}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &c); err != nil {
			return Config{}, fmt.Errorf("decode engine config: %w", err)
		}
	}
	return c.withDefaults(), nil
}

// Save writes c to path as TOML, creating its parent directory if needed.
func Save(path string, c Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create engine config directory: %w", err)
		}
	}
	encoded, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode engine config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("write engine config: %w", err)
	}
	return nil
}
