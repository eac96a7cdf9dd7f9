package engine

import "github.com/arenasim/core/engine/quadtree"

// Select rect-descends root and appends to out every visited id whose AABB
// intersects (l, r, b, t) and that is not a freshly created pellet (any
// non-pellet type, or a pellet older than one tick). stack is scratch
// space sized per quadtree.QueryRect's requirement. out is reset to length
// 0 before use and may be reused across calls to avoid allocation.
func Select(store *Store, root quadtree.Node, stack []quadtree.Node, out []Handle, l, r, b, t float64) []Handle {
	out = out[:0]

	quadtree.QueryRect(root, l, r, b, t, stack, func(id uint16) {
		h := Handle(id)
		cell := store.Cell(h)

		if cell.Pos.X()-cell.R > r || cell.Pos.X()+cell.R < l ||
			cell.Pos.Y()-cell.R > t || cell.Pos.Y()+cell.R < b {
			return
		}
		if cell.Type.IsPellet() && cell.Age <= 1 {
			return
		}

		out = append(out, h)
	})

	return out
}
