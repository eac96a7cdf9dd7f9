package quadtree

import "github.com/brentp/intintmap"

// Bounds is the rectangular extent a Build call partitions.
type Bounds struct {
	Left, Right, Bottom, Top float64
}

// Item is a single point-with-extent inserted into a Build call: an id,
// its center, and its radius. Build places each item by its center alone
// and does not read R; a disc straddling a quadrant boundary is stored
// only in the quadrant that holds its center.
type Item struct {
	ID      uint16
	X, Y, R float64
}

// treeNode is the supplemental reference implementation of Node. Building
// and rebuilding the index is an external service's responsibility; this
// exists so the engine's own tests and cmd/arenad have something concrete
// to query.
type treeNode struct {
	cx, cy         float64
	tl, tr, bl, br *treeNode
	bucket         []uint16
}

func (n *treeNode) CenterX() float64 { return n.cx }
func (n *treeNode) CenterY() float64 { return n.cy }
func (n *treeNode) Leaf() bool       { return n.tl == nil }
func (n *treeNode) Bucket() []uint16 { return n.bucket }

func (n *treeNode) TL() Node {
	if n.tl == nil {
		return nil
	}
	return n.tl
}
func (n *treeNode) TR() Node {
	if n.tr == nil {
		return nil
	}
	return n.tr
}
func (n *treeNode) BL() Node {
	if n.bl == nil {
		return nil
	}
	return n.bl
}
func (n *treeNode) BR() Node {
	if n.br == nil {
		return nil
	}
	return n.br
}

const defaultMaxDepth = 16

// Index bundles a built tree with an intintmap membership set so a caller
// can cheaply answer "was this id present in the last rebuild" without a
// full bucket scan — useful for churn diagnostics across ticks, the way a
// host tracking which entities moved between chunks needs fast
// id-keyed membership tests.
type Index struct {
	Root    Node
	present *intintmap.Map
}

// Build partitions items over bounds into a quadtree, splitting any node
// that holds more than bucketCap ids. A node is left unsplit, and its
// bucket may exceed bucketCap, when all of its items fall in the same
// quadrant or when it is defaultMaxDepth levels deep.
func Build(items []Item, bounds Bounds, bucketCap int) *Index {
	root := buildNode(items, bounds.Left, bounds.Right, bounds.Bottom, bounds.Top, bucketCap, 0)

	present := intintmap.New(len(items)*2+16, 0.6)
	for _, it := range items {
		present.Put(int64(it.ID), 1)
	}

	return &Index{Root: root, present: present}
}

// Contains reports whether id was part of the item set the Index was last
// Built from.
func (idx *Index) Contains(id uint16) bool {
	_, ok := idx.present.Get(int64(id))
	return ok
}

func buildNode(items []Item, l, r, b, t float64, bucketCap, depth int) *treeNode {
	cx, cy := (l+r)/2, (b+t)/2
	n := &treeNode{cx: cx, cy: cy}

	if len(items) <= bucketCap || depth >= defaultMaxDepth {
		n.bucket = make([]uint16, len(items))
		for i, it := range items {
			n.bucket[i] = it.ID
		}
		return n
	}

	var tl, tr, bl, br []Item
	for _, it := range items {
		right := it.X >= cx
		top := it.Y >= cy
		switch {
		case top && right:
			tr = append(tr, it)
		case top && !right:
			tl = append(tl, it)
		case !top && right:
			br = append(br, it)
		default:
			bl = append(bl, it)
		}
	}

	// If every item landed in one quadrant, a split would not separate
	// them; keep them all in a single bucket at this node.
	if len(tr) == len(items) || len(tl) == len(items) || len(br) == len(items) || len(bl) == len(items) {
		n.bucket = make([]uint16, len(items))
		for i, it := range items {
			n.bucket[i] = it.ID
		}
		return n
	}

	n.tl = buildNode(tl, l, cx, cy, t, bucketCap, depth+1)
	n.tr = buildNode(tr, cx, r, cy, t, bucketCap, depth+1)
	n.bl = buildNode(bl, l, cx, b, cy, bucketCap, depth+1)
	n.br = buildNode(br, cx, r, b, cy, bucketCap, depth+1)
	return n
}
