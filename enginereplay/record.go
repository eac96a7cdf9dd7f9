// Package enginereplay is an external diagnostic recorder for simulation
// ticks: it is not part of the simulation core's own state (the core has
// no persistence of its own, per its design) but a separate tool built on
// top of it, the way a world's Provider persists chunks to LevelDB
// independently of the in-memory world it backs.
package enginereplay

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arenasim/core/engine"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
)

// recordSize is the per-cell encoded width: handle, pos.x, pos.y, r, type,
// flags, eatenBy, age, boost, boostDir.x, boostDir.y.
const recordSize = 2 + 8 + 8 + 8 + 1 + 1 + 2 + 4 + 8 + 8 + 8

// Recorder persists one snapshot per tick to a LevelDB database, keyed by
// big-endian tick number so iteration is naturally chronological.
type Recorder struct {
	db *leveldb.DB
}

// OpenRecorder opens (creating if absent) the LevelDB database at dir for
// writing tick snapshots.
func OpenRecorder(dir string) (*Recorder, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("open replay database: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Close closes the underlying database.
func (r *Recorder) Close() error { return r.db.Close() }

// RecordTick encodes every live cell reachable from active, in order, and
// stores it under tick. Calling RecordTick with the same tick twice
// overwrites the prior snapshot.
func (r *Recorder) RecordTick(tick uint64, store *engine.Store, active []engine.Handle) error {
	buf := make([]byte, 0, len(active)*recordSize)
	var rec [recordSize]byte

	for _, h := range active {
		if h == 0 {
			break
		}
		cell := store.Cell(h)

		binary.LittleEndian.PutUint16(rec[0:2], uint16(h))
		binary.LittleEndian.PutUint64(rec[2:10], math.Float64bits(cell.Pos.X()))
		binary.LittleEndian.PutUint64(rec[10:18], math.Float64bits(cell.Pos.Y()))
		binary.LittleEndian.PutUint64(rec[18:26], math.Float64bits(cell.R))
		rec[26] = byte(cell.Type)
		rec[27] = byte(cell.Flags)
		binary.LittleEndian.PutUint16(rec[28:30], uint16(cell.EatenBy))
		binary.LittleEndian.PutUint32(rec[30:34], cell.Age)
		binary.LittleEndian.PutUint64(rec[34:42], math.Float64bits(cell.Boost))
		binary.LittleEndian.PutUint64(rec[42:50], math.Float64bits(cell.BoostDir.X()))
		binary.LittleEndian.PutUint64(rec[50:58], math.Float64bits(cell.BoostDir.Y()))

		buf = append(buf, rec[:58]...)
	}

	var key [8]byte
	binary.BigEndian.PutUint64(key[:], tick)
	return r.db.Put(key[:], buf, nil)
}

// Snapshot is one decoded cell record read back from a Reader.
type Snapshot struct {
	Handle   engine.Handle
	Pos      [2]float64
	R        float64
	Type     engine.CellType
	Flags    engine.Flags
	EatenBy  engine.Handle
	Age      uint32
	Boost    float64
	BoostDir [2]float64
}

// Reader reads back tick snapshots written by a Recorder.
type Reader struct {
	db *leveldb.DB
}

// OpenReader opens dir read-only for replay.
func OpenReader(dir string) (*Reader, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open replay database: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close closes the underlying database.
func (r *Reader) Close() error { return r.db.Close() }

// Tick decodes the snapshot recorded for tick, or leveldb.ErrNotFound if no
// such tick was ever recorded.
func (r *Reader) Tick(tick uint64) ([]Snapshot, error) {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], tick)

	raw, err := r.db.Get(key[:], nil)
	if err != nil {
		return nil, err
	}

	n := len(raw) / 58
	out := make([]Snapshot, n)
	for i := 0; i < n; i++ {
		rec := raw[i*58 : i*58+58]
		out[i] = Snapshot{
			Handle:  engine.Handle(binary.LittleEndian.Uint16(rec[0:2])),
			Pos:     [2]float64{math.Float64frombits(binary.LittleEndian.Uint64(rec[2:10])), math.Float64frombits(binary.LittleEndian.Uint64(rec[10:18]))},
			R:       math.Float64frombits(binary.LittleEndian.Uint64(rec[18:26])),
			Type:    engine.CellType(rec[26]),
			Flags:   engine.Flags(rec[27]),
			EatenBy: engine.Handle(binary.LittleEndian.Uint16(rec[28:30])),
			Age:     binary.LittleEndian.Uint32(rec[30:34]),
			Boost:   math.Float64frombits(binary.LittleEndian.Uint64(rec[34:42])),
			BoostDir: [2]float64{
				math.Float64frombits(binary.LittleEndian.Uint64(rec[42:50])),
				math.Float64frombits(binary.LittleEndian.Uint64(rec[50:58])),
			},
		}
	}
	return out, nil
}
