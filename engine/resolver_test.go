package engine

import (
	"math"
	"testing"

	"github.com/arenasim/core/engine/quadtree"
	"github.com/go-gl/mathgl/mgl64"
)

// flatLeaf is a single-bucket quadtree.Node that reports every id given to
// it, regardless of the queried disc or rectangle. It lets resolver tests
// exercise Resolve/Select/IsSafe's pairwise logic without depending on
// quadtree.Build's partitioning.
type flatLeaf struct {
	ids []uint16
}

func (f flatLeaf) CenterX() float64  { return 0 }
func (f flatLeaf) CenterY() float64  { return 0 }
func (f flatLeaf) Leaf() bool        { return true }
func (f flatLeaf) TL() quadtree.Node { return nil }
func (f flatLeaf) TR() quadtree.Node { return nil }
func (f flatLeaf) BL() quadtree.Node { return nil }
func (f flatLeaf) BR() quadtree.Node { return nil }
func (f flatLeaf) Bucket() []uint16  { return f.ids }

func defaultResolveParams() ResolveParams {
	return ResolveParams{
		NoColliDelay: 0,
		EatOverlap:   3,
		EatMulti:     1.15,
		VirusMaxSize: 400,
		RemoveTick:   25,
	}
}

// TestResolveEatGrowth covers a larger player cell eating a smaller
// different-type cell: it grows by sqrt(r1^2+r2^2) and flags the prey
// REMOVE with EatenBy set to the eater.
func TestResolveEatGrowth(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 20, Type: CellType(1)})
	s.Set(2, Cell{Pos: mgl64.Vec2{1, 0}, R: 5, Type: TypePellet})

	root := flatLeaf{ids: []uint16{1, 2}}
	stack := make([]quadtree.Node, 8)
	active := []Handle{1, 2}

	Resolve(s, active, root, stack, defaultResolveParams())

	want := math.Sqrt(20*20 + 5*5)
	if s.Cell(1).R != want {
		t.Fatalf("expected eater radius sqrt(20^2+5^2)=%v, got %v", want, s.Cell(1).R)
	}
	prey := s.Cell(2)
	if !prey.Has(FlagRemove) {
		t.Fatal("expected prey REMOVE flagged")
	}
	if prey.EatenBy != 1 {
		t.Fatalf("expected EatenBy = 1, got %v", prey.EatenBy)
	}
}

// TestResolveCollideSeparation covers two same-type player cells below
// merge eligibility separating along their connecting axis, weighted by
// mass.
func TestResolveCollideSeparation(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10, Type: CellType(1), Age: 100})
	s.Set(2, Cell{Pos: mgl64.Vec2{15, 0}, R: 10, Type: CellType(1), Age: 100})

	root := flatLeaf{ids: []uint16{1, 2}}
	stack := make([]quadtree.Node, 8)
	active := []Handle{1, 2}

	Resolve(s, active, root, stack, defaultResolveParams())

	if s.Cell(1).Pos.X() == 0 {
		t.Fatal("expected cell 1 to be pushed by collision separation")
	}
	if !s.Cell(1).Has(FlagUpdate) || !s.Cell(2).Has(FlagUpdate) {
		t.Fatal("expected both cells UPDATE flagged after collide")
	}
}

// TestResolveVirusPop covers a virus eating ejected mass that crosses
// VirusMaxSize popping.
func TestResolveVirusPop(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 399, Type: TypeVirus})
	s.Set(2, Cell{Pos: mgl64.Vec2{1, 0}, R: 50, Type: TypeEjected, BoostDir: mgl64.Vec2{1, 0}})

	root := flatLeaf{ids: []uint16{1, 2}}
	stack := make([]quadtree.Node, 8)
	active := []Handle{1, 2}

	p := defaultResolveParams()
	Resolve(s, active, root, stack, p)

	virus := s.Cell(1)
	if !virus.Has(FlagPop) {
		t.Fatal("expected virus POP flagged once its radius reached VirusMaxSize")
	}
	if virus.R < p.VirusMaxSize {
		t.Fatalf("expected virus radius >= VirusMaxSize, got %v", virus.R)
	}
}

// TestResolveDeadCellGC covers a dead tombstone past RemoveTick being
// flagged REMOVE with EatenBy cleared, independent of any pairwise check.
func TestResolveDeadCellGC(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 1, Type: TypeDead, Age: 30, EatenBy: 9})

	root := flatLeaf{ids: []uint16{1}}
	stack := make([]quadtree.Node, 8)
	active := []Handle{1}

	Resolve(s, active, root, stack, defaultResolveParams())

	cell := s.Cell(1)
	if !cell.Has(FlagRemove) {
		t.Fatal("expected dead cell past RemoveTick to be REMOVE flagged")
	}
	if cell.EatenBy != 0 {
		t.Fatalf("expected EatenBy cleared, got %v", cell.EatenBy)
	}
}

// TestResolveSkipsInsideFlagged covers the INSIDE exclusion: a cell fully
// engulfed by another is skipped by Resolve entirely, acting neither as
// eater nor prey.
func TestResolveSkipsInsideFlagged(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 20, Type: CellType(1)})
	s.Set(2, Cell{Pos: mgl64.Vec2{0, 0}, R: 5, Type: TypePellet, Flags: FlagExist | FlagInside})

	root := flatLeaf{ids: []uint16{1, 2}}
	stack := make([]quadtree.Node, 8)
	active := []Handle{1, 2}

	Resolve(s, active, root, stack, defaultResolveParams())

	if s.Cell(2).Has(FlagRemove) {
		t.Fatal("expected INSIDE-flagged cell to be skipped, not eaten")
	}
}

// TestResolveHalfPairRuleNoDoubleAction asserts that equal-radius same-type
// cells past NoColliDelay (so they COLLIDE) resolve via exactly one of the
// pair acting, per
// the half-pair rule's handle tiebreak, not both.
func TestResolveHalfPairRuleNoDoubleAction(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10, Type: CellType(1), Age: 100})
	s.Set(2, Cell{Pos: mgl64.Vec2{5, 0}, R: 10, Type: CellType(1), Age: 100})

	root := flatLeaf{ids: []uint16{1, 2}}
	stack := make([]quadtree.Node, 8)
	active := []Handle{1, 2}

	collisions := Resolve(s, active, root, stack, defaultResolveParams())

	if collisions != 1 {
		t.Fatalf("expected exactly one pair to reach a distance check under the half-pair rule, got %v", collisions)
	}
}
