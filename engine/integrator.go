package engine

// ScoreFunc is the host-provided score(player_type) -> score callback
// queried whenever the integrator begins a new run of player cells sharing
// a type.
type ScoreFunc func(playerType CellType) float64

// UpdateParams bundles the tunable inputs to Update. The zero value is not
// usable: DtMulti, DecayMin and Bounds must reflect the caller's world.
type UpdateParams struct {
	Score ScoreFunc

	DtMulti     float64
	EjectMaxAge uint32
	AutoSize    float64
	DecayMulti  float64
	DecayMin    float64
	Bounds      Bounds
}

// Update runs one tick of kinematic and lifecycle integration over active,
// in list order, and returns the list with any leading REMOVE-flagged
// handles compacted out.
//
// Stage order per live cell: age increment and per-tick bit clear, ejected
// expiry, boost integration, player radius decay and autosplit marking,
// then wall bounce/clamp. The active list is assumed grouped by player
// type so that the per-type decay multiplier can be cached across
// consecutive same-type cells.
//
// Only a *leading* run of REMOVE-flagged handles is zeroed and dropped.
// A REMOVE-flagged handle that is not at the head of active is still
// walked this tick: its flags are cleared down to clearMask, which does
// not preserve REMOVE, so it is processed as live for one more tick before
// a later call sees it at the head.
func Update(store *Store, active []Handle, p UpdateParams) []Handle {
	i := 0
	for i < len(active) {
		h := active[i]
		if h == 0 {
			break
		}
		cell := store.Cell(h)
		if !cell.Has(FlagRemove) {
			break
		}
		store.Clear(h)
		i++
	}
	active = active[i:]
	if len(active) == 0 || active[0] == 0 {
		return active[:0]
	}

	var (
		haveType  bool
		currType  CellType
		currMulti float64 = 1
	)

	for _, h := range active {
		if h == 0 {
			break
		}
		cell := store.Cell(h)

		cell.Age++
		cell.Flags &= clearMask

		if cell.Type.IsEjected() && cell.Age > p.EjectMaxAge {
			cell.Flags |= FlagRemove
		}

		if cell.Boost > 1 {
			db := cell.Boost / 9 * p.DtMulti
			cell.Pos[0] += cell.BoostDir.X() * db
			cell.Pos[1] += cell.BoostDir.Y() * db
			cell.Flags |= FlagUpdate
			cell.Boost -= db
		}

		if cell.Type.IsPlayer() {
			if !haveType || currType != cell.Type {
				currType = cell.Type
				haveType = true
				score := p.Score(currType)
				m := (score - 0.01*p.DecayMin*p.DecayMin) * 5e-5
				if m < 1 {
					m = 1
				}
				currMulti = m
			}

			if cell.R > p.DecayMin {
				cell.R -= currMulti * cell.R * p.DecayMulti * p.DtMulti / 50
				cell.Flags |= FlagUpdate
			}
			if p.AutoSize > 0 && cell.R > p.AutoSize {
				cell.Flags |= FlagAutosplit
			}
		}

		bounce := cell.Boost > 1
		hr := cell.R / 2

		if cell.Pos.X() < p.Bounds.Left+hr {
			cell.Pos[0] = p.Bounds.Left + hr
			cell.Flags |= FlagUpdate
			if bounce {
				cell.BoostDir[0] = -cell.BoostDir[0]
			}
		}
		if cell.Pos.X() > p.Bounds.Right-hr {
			cell.Pos[0] = p.Bounds.Right - hr
			cell.Flags |= FlagUpdate
			if bounce {
				cell.BoostDir[0] = -cell.BoostDir[0]
			}
		}
		if cell.Pos.Y() > p.Bounds.Top-hr {
			cell.Pos[1] = p.Bounds.Top - hr
			cell.Flags |= FlagUpdate
			if bounce {
				cell.BoostDir[1] = -cell.BoostDir[1]
			}
		}
		if cell.Pos.Y() < p.Bounds.Bottom+hr {
			cell.Pos[1] = p.Bounds.Bottom + hr
			cell.Flags |= FlagUpdate
			if bounce {
				cell.BoostDir[1] = -cell.BoostDir[1]
			}
		}
	}

	return active
}
