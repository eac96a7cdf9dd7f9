package engine

import "github.com/arenasim/core/engine/quadtree"

// IsSafe walks root with the candidate spawn disc (x, y, r) and returns the
// negated count of cells checked as soon as it finds one overlapping cell
// with type <= TypeVirus (players, dead, mother, virus — everything except
// pellets and ejected mass). Otherwise it returns the non-negative number
// of cells checked. Only cells with type <= TypeVirus are checked and
// counted; pellets and ejected mass are skipped without being counted.
// stack has the same sizing requirement as quadtree.Query.
func IsSafe(store *Store, root quadtree.Node, stack []quadtree.Node, x, y, r float64) int {
	counter := 0
	unsafe := false

	quadtree.Query(root, x, y, r, stack, func(id uint16) {
		if unsafe {
			return
		}
		h := Handle(id)
		cell := store.Cell(h)
		if cell.Type > TypeVirus {
			return
		}

		dx := cell.Pos.X() - x
		dy := cell.Pos.Y() - y
		counter++

		rr := r + cell.R
		if dx*dx+dy*dy < rr*rr {
			unsafe = true
		}
	})

	if unsafe {
		return -counter
	}
	return counter
}
