// Package quadtree implements the read-only query contract the cell
// simulation core consumes: explicit depth-first traversal of a disc or
// rectangle against a tree built and owned by an external spatial index
// service. The core only ever queries; Build in this package is a
// supplemental, non-normative reference builder used by tests and the
// cmd/arenad demo, not the authoritative index a production host would
// supply.
package quadtree

// Node is the shape of a quadtree node as the core consumes it: a center
// point, up to four children (all non-nil iff the node is internal), and
// an inline bucket of ids. Implementations are read-only for the duration
// of a query.
type Node interface {
	CenterX() float64
	CenterY() float64

	// Leaf reports whether the node has no children. An internal node
	// always has all four of TL, TR, BL, BR non-nil.
	Leaf() bool

	TL() Node
	TR() Node
	BL() Node
	BR() Node

	// Bucket returns the ids stored directly at this node.
	Bucket() []uint16
}

// Query walks root with a depth-first traversal against the disc
// (x, y, r), invoking visit once per id found in every node whose quadrant
// test matches the disc. stack is caller-supplied scratch space that must
// be sized for the worst-case tree depth times four; Query performs no
// allocation and does not grow stack.
//
// Descent order (push order for an internal node): br, bl, tr, tl, each
// gated by the corresponding quadrant predicate against (x, y, r). Nodes
// are popped in the opposite order they were pushed, which combined with
// this fixed push order gives deterministic traversal order.
func Query(root Node, x, y, r float64, stack []Node, visit func(id uint16)) {
	sp := 0
	curr := root
	for {
		if !curr.Leaf() {
			cx, cy := curr.CenterX(), curr.CenterY()
			if y-r < cy {
				if x+r > cx {
					stack[sp] = curr.BR()
					sp++
				}
				if x-r < cx {
					stack[sp] = curr.BL()
					sp++
				}
			}
			if y+r > cy {
				if x+r > cx {
					stack[sp] = curr.TR()
					sp++
				}
				if x-r < cx {
					stack[sp] = curr.TL()
					sp++
				}
			}
		}
		for _, id := range curr.Bucket() {
			visit(id)
		}
		if sp == 0 {
			return
		}
		sp--
		curr = stack[sp]
	}
}

// QueryRect walks root with a depth-first traversal against the rectangle
// (l, r, b, t), invoking visit once per id found in every visited node's
// bucket. stack has the same sizing requirement as in Query.
//
// Unlike Query, the root is pushed onto the stack and popped before its
// first visit, rather than starting from an already-current node.
func QueryRect(root Node, l, r, b, t float64, stack []Node, visit func(id uint16)) {
	sp := 0
	stack[sp] = root
	sp++

	for sp > 0 {
		sp--
		curr := stack[sp]

		if !curr.Leaf() {
			cx, cy := curr.CenterX(), curr.CenterY()
			if b < cy {
				if r > cx {
					stack[sp] = curr.BR()
					sp++
				}
				if l < cx {
					stack[sp] = curr.BL()
					sp++
				}
			}
			if t > cy {
				if r > cx {
					stack[sp] = curr.TR()
					sp++
				}
				if l < cx {
					stack[sp] = curr.TL()
					sp++
				}
			}
		}

		for _, id := range curr.Bucket() {
			visit(id)
		}
	}
}
