package quadtree

import "testing"

func TestBuildPartitionsIntoQuadrants(t *testing.T) {
	items := []Item{
		{ID: 1, X: -5, Y: 5, R: 1},
		{ID: 2, X: 5, Y: 5, R: 1},
		{ID: 3, X: -5, Y: -5, R: 1},
		{ID: 4, X: 5, Y: -5, R: 1},
	}
	idx := Build(items, Bounds{Left: -10, Right: 10, Bottom: -10, Top: 10}, 1)

	if idx.Root.Leaf() {
		t.Fatal("expected root to split given one item per quadrant and bucketCap 1")
	}
	for _, id := range []uint16{1, 2, 3, 4} {
		if !idx.Contains(id) {
			t.Fatalf("expected Index to contain id %d", id)
		}
	}
	if idx.Contains(99) {
		t.Fatal("expected Index to not contain an id that was never built in")
	}
}

func TestBuildSingleBucketWithinCap(t *testing.T) {
	items := []Item{
		{ID: 1, X: 1, Y: 1, R: 1},
		{ID: 2, X: 2, Y: 2, R: 1},
	}
	idx := Build(items, Bounds{Left: -10, Right: 10, Bottom: -10, Top: 10}, 8)

	if !idx.Root.Leaf() {
		t.Fatal("expected a single leaf bucket when item count is within bucketCap")
	}
	if len(idx.Root.Bucket()) != 2 {
		t.Fatalf("expected both items in the root bucket, got %v", idx.Root.Bucket())
	}
}

func TestBuildCoincidentPointsFallBackToSingleBucket(t *testing.T) {
	items := []Item{
		{ID: 1, X: 3, Y: 3, R: 1},
		{ID: 2, X: 3, Y: 3, R: 1},
		{ID: 3, X: 3, Y: 3, R: 1},
	}
	idx := Build(items, Bounds{Left: -10, Right: 10, Bottom: -10, Top: 10}, 1)

	// All three items land in the same quadrant at every depth; Build must
	// terminate by falling back to one bucket rather than recursing forever.
	if !idx.Root.Leaf() {
		t.Fatal("expected coincident points to fall back to a single leaf bucket")
	}
	if len(idx.Root.Bucket()) != 3 {
		t.Fatalf("expected all 3 coincident items in the fallback bucket, got %v", idx.Root.Bucket())
	}
}

func TestBuildEmptyItems(t *testing.T) {
	idx := Build(nil, Bounds{Left: -1, Right: 1, Bottom: -1, Top: 1}, 4)
	if !idx.Root.Leaf() || len(idx.Root.Bucket()) != 0 {
		t.Fatal("expected an empty item set to produce a single empty leaf")
	}
}
