package engine

import (
	"math"

	"github.com/arenasim/core/engine/quadtree"
)

// ResolveParams bundles the delay, eat-geometry and lifecycle tuning
// consumed by Resolve.
type ResolveParams struct {
	NoMergeDelay uint32 // unused directly by Resolve; retained for symmetry with the host's merge pipeline.
	NoColliDelay uint32
	EatOverlap   float64
	EatMulti     float64
	VirusMaxSize float64
	RemoveTick   uint32
}

type physicsAction uint8

const (
	actionNone physicsAction = iota
	actionEat
	actionCollide
)

// Resolve is the pairwise physical resolver: for each cell in active that
// Resolve does not skip, it walks root's quadtree with the cell's disc and
// resolves EAT or COLLIDE outcomes against every other id visited, using
// stack as caller-supplied scratch space sized for the worst-case tree
// depth times four. It returns the number of pairs that reached a distance
// check, for caller-side budget monitoring.
//
// Determinism depends on three things holding together: active-list order,
// the half-pair rule below (larger radius acts; on equal radii the lower
// handle acts), and quadtree.Query's fixed push/pop order. A correct caller
// must not reorder active between Update and Resolve within a tick.
func Resolve(store *Store, active []Handle, root quadtree.Node, stack []quadtree.Node, p ResolveParams) uint32 {
	var collisions uint32

	for _, h := range active {
		if h == 0 {
			break
		}
		cell := store.Cell(h)

		if cell.Flags.Any(SkipResolveBits) {
			continue
		}

		if cell.Type.IsDead() && cell.Age > p.RemoveTick {
			cell.Flags |= FlagRemove
			cell.EatenBy = 0
			continue
		}

		// The descent disc is a snapshot taken before the walk begins: it
		// governs which nodes are visited, not the per-pair math below,
		// which always re-reads cell's current position and radius so
		// that a chain of EATs within the same outer cell's walk keeps
		// growing cell correctly (area conservation across sequential
		// EATs).
		quadtree.Query(root, cell.Pos.X(), cell.Pos.Y(), cell.R, stack, func(id uint16) {
			other := Handle(id)
			if other == h {
				return
			}

			oc := store.Cell(other)

			// Half-pair rule: the larger radius acts; on equal radii the
			// lower handle acts, so each unordered pair resolves once.
			if cell.R < oc.R {
				return
			}
			if cell.R == oc.R && h > other {
				return
			}

			if oc.Flags.Any(SkipResolveBits) {
				return
			}

			action := interactionAction(cell, oc, p)
			if action == actionNone {
				return
			}

			dx := oc.Pos.X() - cell.Pos.X()
			dy := oc.Pos.Y() - cell.Pos.Y()
			r1, r2 := cell.R, oc.R

			// Coarse reject. Sign-sensitive by construction: a negative
			// delta always passes this test regardless of magnitude.
			if dx > r1+r2 || dy > r1+r2 {
				return
			}

			d := math.Sqrt(dx*dx + dy*dy)
			collisions++

			switch action {
			case actionCollide:
				resolveCollide(cell, oc, dx, dy, d, r1, r2)
			case actionEat:
				resolveEat(store, cell, oc, h, d, r1, r2, p)
			}
		})
	}

	return collisions
}

// interactionAction selects the EAT/COLLIDE/NONE outcome for the ordered
// pair (cell acting on other) per the interaction matrix below.
func interactionAction(cell, other *Cell, p ResolveParams) physicsAction {
	switch {
	case cell.Type.IsPlayer():
		if cell.Type == other.Type {
			if cell.Flags.Has(FlagMerge) && other.Flags.Has(FlagMerge) {
				return actionEat
			}
			if cell.Age > p.NoColliDelay && other.Age > p.NoColliDelay {
				return actionCollide
			}
			return actionNone
		}
		return actionEat
	case cell.Type.IsVirus() && other.Type.IsEjected():
		return actionEat
	case cell.Type.IsEjected() && other.Type.IsEjected():
		return actionCollide
	case cell.Type.IsDead():
		if other.Type.IsDead() {
			return actionCollide
		}
		return actionNone
	case cell.Type.IsMother():
		return actionEat
	default:
		return actionNone
	}
}

// resolveCollide applies mass-weighted separation between cell and other,
// mutating both in place. dx, dy, d and r1, r2 are the pre-computed delta
// and radii from the caller.
func resolveCollide(cell, other *Cell, dx, dy, d, r1, r2 float64) {
	m := r1 + r2 - d
	if m <= 0 {
		return
	}

	if d == 0 {
		dx, dy, d = 1, 0, 1
	} else {
		dx /= d
		dy /= d
	}

	if d+r2 < r1 {
		other.Flags |= FlagInside
	}

	a, b := r1*r1, r2*r2
	aM := b / (a + b)
	bM := a / (a + b)

	cMove := math.Min(m, r1) * aM
	oMove := math.Min(m, r2) * bM

	cell.Pos[0] -= dx * cMove
	cell.Pos[1] -= dy * cMove
	other.Pos[0] += dx * oMove
	other.Pos[1] += dy * oMove

	cell.Flags |= FlagUpdate
	other.Flags |= FlagUpdate
}

// resolveEat applies the EAT outcome of cell eating other, if the eat gate
// passes. cellHandle is cell's own handle, recorded onto other.EatenBy.
func resolveEat(store *Store, cell, other *Cell, cellHandle Handle, d, r1, r2 float64, p ResolveParams) {
	sameType := cell.Type == other.Type
	massGate := cell.R > other.R*p.EatMulti
	if !(sameType || massGate) {
		return
	}
	if !(d < cell.R-other.R/p.EatOverlap) {
		return
	}

	cell.R = math.Sqrt(r1*r1 + r2*r2)

	specialPrey := other.Type.IsVirus() || other.Type.IsMother()
	if specialPrey {
		other.EatenBy = 0
	} else {
		other.EatenBy = cellHandle
	}
	other.Flags |= FlagRemove

	if cell.Type.IsPlayer() && other.Type.IsEjected() {
		ratio := other.R / (cell.R + 100)
		cell.Boost += ratio * 0.02 * other.Boost
		bx := cell.BoostDir.X() + ratio*0.02*other.BoostDir.X()
		by := cell.BoostDir.Y() + ratio*0.02*other.BoostDir.Y()
		norm := math.Sqrt(bx*bx + by*by)
		if norm > 0 {
			cell.BoostDir[0] = bx / norm
			cell.BoostDir[1] = by / norm
		}
	}

	if specialPrey {
		cell.Flags |= FlagPop
	}
	if cell.Type.IsVirus() && other.Type.IsEjected() && cell.R >= p.VirusMaxSize {
		cell.Flags |= FlagPop
		cell.BoostDir = other.BoostDir
	}
}
