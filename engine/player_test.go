package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestUpdatePlayerCellsMergeDisabled(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10, Age: 5})

	UpdatePlayerCells(s, []Handle{1}, 0, 0, 1, MergeParams{MergeTime: 0, NoMergeDelay: 2})

	if !s.Cell(1).Has(FlagMerge) {
		t.Fatal("expected MERGE flagged when MergeTime == 0 and Age exceeds NoMergeDelay")
	}
}

func TestUpdatePlayerCellsMergeNewPolicy(t *testing.T) {
	s := NewStore(4)
	// increase = round(25 * R * MergeIncrease); R=10, MergeIncrease=1 -> 250
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10, Age: 300})
	s.Set(2, Cell{Pos: mgl64.Vec2{0, 0}, R: 10, Age: 100})

	p := MergeParams{
		MergeTime:       5000,
		MergeVersionNew: true,
		MergeInitial:    200,
		MergeIncrease:   1,
		NoMergeDelay:    10,
	}
	UpdatePlayerCells(s, []Handle{1, 2}, 0, 0, 1, p)

	if !s.Cell(1).Has(FlagMerge) {
		t.Fatal("expected cell 1 (Age 300 > MergeInitial 200 and > threshold 250) to be MERGE flagged")
	}
	if s.Cell(2).Has(FlagMerge) {
		t.Fatal("expected cell 2 (Age 100 below threshold) to not be MERGE flagged")
	}
}

func TestUpdatePlayerCellsMergeOldPolicy(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10, Age: 50})

	p := MergeParams{
		MergeTime:     5000,
		MergeInitial:  20,
		MergeIncrease: 10,
		NoMergeDelay:  5,
	}
	UpdatePlayerCells(s, []Handle{1}, 0, 0, 1, p)

	if !s.Cell(1).Has(FlagMerge) {
		t.Fatal("expected MERGE flagged: Age 50 > NoMergeDelay 5 and > MergeInitial+MergeIncrease 30")
	}
}

func TestUpdatePlayerCellsSeeksMouse(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10})

	UpdatePlayerCells(s, []Handle{1}, 100, 0, 1, MergeParams{MergeTime: 0, PlayerSpeed: 1})

	cell := s.Cell(1)
	if cell.Pos.X() <= 0 {
		t.Fatalf("expected cell to move toward mouse at +x, got %v", cell.Pos.X())
	}
	if cell.Pos.Y() != 0 {
		t.Fatalf("expected no y movement when mouse is on the x axis, got %v", cell.Pos.Y())
	}
}

func TestUpdatePlayerCellsIgnoresSubUnitDistance(t *testing.T) {
	s := NewStore(4)
	s.Set(1, Cell{Pos: mgl64.Vec2{0, 0}, R: 10})

	UpdatePlayerCells(s, []Handle{1}, 0.5, 0, 1, MergeParams{MergeTime: 0, PlayerSpeed: 1})

	if s.Cell(1).Pos.X() != 0 {
		t.Fatal("expected no movement when target distance is below 1")
	}
}
