// Package fixture builds deterministic synthetic cell tables for engine
// package tests, so property tests (area conservation, determinism, the
// half-pair rule) can run over many cells without depending on the Go
// runtime's math/rand state. Hashing, not randomness, drives the
// generation: the same (seed, index) always produces the same cell.
package fixture

import (
	"math"
	"strconv"

	"github.com/arenasim/core/engine"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/fasthash/fnv1a"
)

// Gen deterministically derives a Cell from seed and index i. Varying i
// across a loop produces a reproducible scatter of positions, radii and
// boost directions without any shared RNG state, the way a property test
// wants each run of the same seed to hash identically.
func Gen(seed string, i int, typ engine.CellType, bounds engine.Bounds) engine.Cell {
	h := fnv1a.HashString64(seed + "#" + strconv.Itoa(i))

	unit := func(shift uint) float64 {
		return float64((h>>shift)&0xFFFF) / float64(0xFFFF)
	}

	x := bounds.Left + unit(0)*(bounds.Right-bounds.Left)
	y := bounds.Bottom + unit(16)*(bounds.Top-bounds.Bottom)
	r := 5 + unit(32)*45
	angle := unit(48) * 2 * 3.141592653589793

	return engine.Cell{
		Pos:      mgl64.Vec2{x, y},
		R:        r,
		Type:     typ,
		BoostDir: mgl64.Vec2{math.Cos(angle), math.Sin(angle)},
	}
}
