// Package engine implements the tick-driven cell simulation core: kinematic
// integration, player steering and merge eligibility, pairwise eat/collide
// resolution against a caller-supplied spatial index, viewport selection and
// safe-spawn queries.
//
// The package is single-threaded and allocation-free on its hot paths. All
// mutation happens through a Store, addressed by Handle, under the exclusive
// control of whichever stage is currently running; see the package-level
// ordering guarantees documented on Resolve.
package engine

import "github.com/go-gl/mathgl/mgl64"

// Handle is a 16-bit id into a Store. The zero Handle is the sentinel
// meaning "no cell" and also terminates a sentinel-style active list.
type Handle uint16

// CellType discriminates the kind of a Cell. Values 0 through MaxPlayerType
// are player cells, where the numeric value is the owning player id;
// distinct players have distinct type values. The remaining values are
// reserved kinds.
type CellType uint8

// Reserved CellType values. Player cells occupy [0, MaxPlayerType].
const (
	MaxPlayerType CellType = 250
	TypeDead      CellType = 251
	TypeMother    CellType = 252
	TypeVirus     CellType = 253
	TypePellet    CellType = 254
	TypeEjected   CellType = 255
)

// IsPlayer reports whether t identifies a player cell, in which case the
// numeric value of t is the owning player id.
func (t CellType) IsPlayer() bool { return t <= MaxPlayerType }

// IsDead reports whether t is the dead-cell tombstone kind.
func (t CellType) IsDead() bool { return t == TypeDead }

// IsMother reports whether t is the mother-cell kind.
func (t CellType) IsMother() bool { return t == TypeMother }

// IsVirus reports whether t is the virus kind.
func (t CellType) IsVirus() bool { return t == TypeVirus }

// IsPellet reports whether t is the pellet kind.
func (t CellType) IsPellet() bool { return t == TypePellet }

// IsEjected reports whether t is the ejected-mass kind.
func (t CellType) IsEjected() bool { return t == TypeEjected }

// Flags is the per-cell lifecycle and tick-local bitset.
type Flags uint8

// Flag bits. EXIST and MERGE persist across the per-tick bit clear
// performed at the start of Update; the rest are tick-local marks.
const (
	FlagExist     Flags = 0x01
	FlagUpdate    Flags = 0x02
	FlagInside    Flags = 0x04
	FlagAutosplit Flags = 0x10
	FlagRemove    Flags = 0x20
	FlagMerge     Flags = 0x40
	FlagPop       Flags = 0x80
)

// clearMask preserves EXIST and MERGE across Update's per-tick bit clear;
// every other bit, including INSIDE, REMOVE and POP, is cleared. This
// matches the source's CLEAR_BITS (0x49 = EXIST | an unused bit | MERGE);
// it is load bearing in two ways: a REMOVE-flagged cell that is not at the
// head of the active list loses its REMOVE bit the next time Update walks
// over it and is processed as live for that tick, and a cell that acquired
// INSIDE or POP during the previous tick's Resolve is not permanently
// excluded from future Resolve passes — SkipResolveBits only ever sees
// those bits set within the tick that set them.
const clearMask = Flags(FlagExist | FlagMerge)

// SkipResolveBits marks a cell that Resolve must ignore entirely.
const SkipResolveBits = FlagInside | FlagRemove | FlagPop

// Has reports whether all bits in mask are set in f.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Any reports whether any bit in mask is set in f.
func (f Flags) Any(mask Flags) bool { return f&mask != 0 }

// Cell is a single circular entity: a disc with a position, radius, kind,
// lifecycle flags and an impulse boost consumed over successive ticks.
type Cell struct {
	Pos  mgl64.Vec2 // world position, center of the disc
	R    float64    // radius; area ~ R^2 governs mass
	Type CellType
	Flags
	EatenBy  Handle     // set when REMOVE is due to EAT; 0 otherwise
	Age      uint32     // ticks since creation
	Boost    float64    // impulse magnitude, consumed each tick
	BoostDir mgl64.Vec2 // unit direction of boost motion; inert when Boost <= 1
}

// Live reports whether the cell slot is occupied.
func (c *Cell) Live() bool { return c.Flags.Has(FlagExist) }

// Store is a dense, fixed-capacity, handle-indexed table of Cell records.
// Handle 0 is never a live cell and always reads as the zero Cell. Store
// performs no hidden allocation once constructed.
type Store struct {
	cells []Cell
}

// NewStore allocates a Store with room for capacity live handles plus the
// reserved sentinel slot 0.
func NewStore(capacity int) *Store {
	return &Store{cells: make([]Cell, capacity+1)}
}

// Cap returns the number of addressable handles, excluding the sentinel.
func (s *Store) Cap() int { return len(s.cells) - 1 }

// Cell returns a pointer to the record at h. The pointer is valid until the
// next call to Clear(h) or Set(h, ...); callers within a single tick stage
// may freely mutate through it.
func (s *Store) Cell(h Handle) *Cell {
	debugAssert(int(h) < len(s.cells), "handle out of range")
	return &s.cells[h]
}

// X returns the x coordinate of the cell at h.
func (s *Store) X(h Handle) float64 { return s.cells[h].Pos.X() }

// Y returns the y coordinate of the cell at h.
func (s *Store) Y(h Handle) float64 { return s.cells[h].Pos.Y() }

// R returns the radius of the cell at h. Undefined once REMOVE is set;
// callers must not consult it in that state.
func (s *Store) R(h Handle) float64 { return s.cells[h].R }

// Type returns the CellType of the cell at h.
func (s *Store) Type(h Handle) CellType { return s.cells[h].Type }

// EatenBy returns the handle of the eater when the cell at h carries
// REMOVE due to an EAT outcome, or 0 otherwise.
func (s *Store) EatenBy(h Handle) Handle { return s.cells[h].EatenBy }

// Set installs cell as the live record at h, setting FlagExist.
func (s *Store) Set(h Handle, cell Cell) {
	debugAssert(int(h) < len(s.cells), "handle out of range")
	cell.Flags |= FlagExist
	s.cells[h] = cell
}

// Clear zero-initializes the slot at h in full, discarding every field.
func (s *Store) Clear(h Handle) {
	debugAssert(int(h) < len(s.cells), "handle out of range")
	s.cells[h] = Cell{}
}
