package engine

import "math"

// MergeParams bundles the merge-eligibility and seek-speed tuning consumed
// by UpdatePlayerCells.
type MergeParams struct {
	MergeInitial    float64
	MergeIncrease   float64
	NoMergeDelay    uint32
	MergeTime       uint32
	MergeVersionNew bool
	PlayerSpeed     float64
}

// UpdatePlayerCells marks merge eligibility on each of ids' cells and then
// steers them toward (mouseX, mouseY). ids is one player's own cell
// handles; a caller may run distinct players' slices concurrently since
// they never share a handle.
func UpdatePlayerCells(store *Store, ids []Handle, mouseX, mouseY, dt float64, p MergeParams) {
	if len(ids) == 0 {
		return
	}

	switch {
	case p.MergeTime == 0:
		for _, h := range ids {
			cell := store.Cell(h)
			if float64(cell.Age) > float64(p.NoMergeDelay) {
				cell.Flags |= FlagMerge
			}
		}
	case p.MergeVersionNew:
		for _, h := range ids {
			cell := store.Cell(h)
			increase := math.Round(25 * cell.R * p.MergeIncrease)
			threshold := math.Max(increase, float64(p.NoMergeDelay))
			if float64(cell.Age) > p.MergeInitial && float64(cell.Age) > threshold {
				cell.Flags |= FlagMerge
			}
		}
	default:
		threshold := p.MergeInitial + p.MergeIncrease
		for _, h := range ids {
			cell := store.Cell(h)
			if float64(cell.Age) > float64(p.NoMergeDelay) && float64(cell.Age) > threshold {
				cell.Flags |= FlagMerge
			}
		}
	}

	for _, h := range ids {
		cell := store.Cell(h)

		dx := mouseX - cell.Pos.X()
		dy := mouseY - cell.Pos.Y()
		d := math.Sqrt(dx*dx + dy*dy)
		if d < 1 {
			continue
		}
		dx /= d
		dy /= d

		speed := 88 * math.Pow(cell.R, -0.4396754) * p.PlayerSpeed
		m := speed
		if d < m {
			m = d
		}
		m *= dt

		cell.Pos[0] += dx * m
		cell.Pos[1] += dy * m
	}
}
