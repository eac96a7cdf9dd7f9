// Package enginehost bookkeeps the host-side state the engine package does
// not own: which session uuid.UUID is bound to which in-arena player
// CellType id, and the score the decay integrator consults for that
// player. This is the kind of summary/lookup layer a host builds on top of
// a simulation core the way plugin.PlayerSummary sits on top of a running
// world.Player without reaching into its internals.
package enginehost

import (
	"errors"
	"sync"

	"github.com/arenasim/core/engine"
	"github.com/google/uuid"
)

// ErrNoFreePlayerSlot is returned by Join when every player CellType in
// [0, engine.MaxPlayerType] is already bound to a session.
var ErrNoFreePlayerSlot = errors.New("enginehost: no free player slot")

// ErrUnknownSession is returned when an operation references a session
// uuid.UUID that is not currently registered.
var ErrUnknownSession = errors.New("enginehost: unknown session")

// PlayerSummary is a snapshot of a joined session, safe to hand to callers
// without exposing the Registry's internals.
type PlayerSummary struct {
	Session uuid.UUID
	Type    engine.CellType
	Name    string
	Score   float64
}

// Registry binds session identities to the CellType slots the engine
// treats as player ids, and holds the externally reported score used by
// engine.ScoreFunc.
type Registry struct {
	mu     sync.RWMutex
	bySess map[uuid.UUID]engine.CellType
	slots  [int(engine.MaxPlayerType) + 1]*slot
}

type slot struct {
	session uuid.UUID
	name    string
	score   float64
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bySess: make(map[uuid.UUID]engine.CellType)}
}

// Join allocates the lowest-numbered free CellType slot to session and
// returns it. Calling Join again for a session already joined returns its
// existing type without allocating a new one.
func (r *Registry) Join(session uuid.UUID, name string) (engine.CellType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.bySess[session]; ok {
		return t, nil
	}

	for i := range r.slots {
		if r.slots[i] != nil {
			continue
		}
		t := engine.CellType(i)
		r.slots[i] = &slot{session: session, name: name}
		r.bySess[session] = t
		return t, nil
	}
	return 0, ErrNoFreePlayerSlot
}

// Leave frees session's slot, if any. It is a no-op if session is not
// currently joined.
func (r *Registry) Leave(session uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.bySess[session]
	if !ok {
		return
	}
	delete(r.bySess, session)
	r.slots[t] = nil
}

// SetScore records the score the host computed for session, consulted by
// the Score method the next time the integrator runs a decay pass over
// that player's cells.
func (r *Registry) SetScore(session uuid.UUID, score float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.bySess[session]
	if !ok {
		return ErrUnknownSession
	}
	r.slots[t].score = score
	return nil
}

// Score implements engine.ScoreFunc: it looks up the score last recorded
// for the session bound to playerType, or 0 if the slot is unbound (a
// player that left mid-tick; the caller's active list should not still
// reference it, but Score must not panic if it briefly does).
func (r *Registry) Score(playerType engine.CellType) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(playerType) >= len(r.slots) || r.slots[playerType] == nil {
		return 0
	}
	return r.slots[playerType].score
}

// Summary returns a snapshot of session's registered state.
func (r *Registry) Summary(session uuid.UUID) (PlayerSummary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.bySess[session]
	if !ok {
		return PlayerSummary{}, false
	}
	s := r.slots[t]
	return PlayerSummary{Session: session, Type: t, Name: s.name, Score: s.score}, true
}
