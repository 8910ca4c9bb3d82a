// Package history keeps debounced snapshots of the location collection and
// a cursor for undo/redo.
package history

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"quotebuilder/internal/plan"
)

// MaxEntries caps the snapshot list; pushing past it drops the oldest.
const MaxEntries = 50

// DefaultQuiet is how long the collection must sit unchanged before a
// snapshot is recorded.
const DefaultQuiet = 500 * time.Millisecond

// Store holds an ordered list of full location-collection snapshots plus a
// cursor. Snapshots are slices of location pointers: the copy-on-write
// mutation contract guarantees a location graph is never written after it
// enters the collection, so no deep copy is needed here.
type Store struct {
	mu        sync.Mutex
	snapshots [][]*plan.Location
	cursor    int
	gen       int
	debounced func(func())
	onChange  func()
}

// NewStore returns a store seeded with the initial collection state. quiet
// is the debounce window for Record; DefaultQuiet matches the editor.
func NewStore(initial []*plan.Location, quiet time.Duration) *Store {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Store{
		snapshots: [][]*plan.Location{snapshot(initial)},
		debounced: debounce.New(quiet),
	}
}

// OnChange registers a callback fired after every push, undo, or redo. Used
// for UI enablement updates; may be nil.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Record schedules a snapshot of locs after the quiet period. A newer
// Record, or an Undo/Redo, supersedes any pending one; only the latest
// state is ever snapshotted.
func (s *Store) Record(locs []*plan.Location) {
	snap := snapshot(locs)
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	s.debounced(func() {
		s.mu.Lock()
		if gen != s.gen {
			// A restore happened after this record was scheduled; the
			// pending state is stale.
			s.mu.Unlock()
			return
		}
		s.pushLocked(snap)
		cb := s.onChange
		s.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// Push records a snapshot immediately, bypassing the debounce window.
func (s *Store) Push(locs []*plan.Location) {
	snap := snapshot(locs)
	s.mu.Lock()
	s.pushLocked(snap)
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// pushLocked appends at cursor+1, discarding any redo tail, and enforces
// the entry cap.
func (s *Store) pushLocked(snap []*plan.Location) {
	if equalSnapshots(s.snapshots[s.cursor], snap) {
		return
	}
	s.snapshots = append(s.snapshots[:s.cursor+1], snap)
	if len(s.snapshots) > MaxEntries {
		drop := len(s.snapshots) - MaxEntries
		s.snapshots = s.snapshots[drop:]
	}
	s.cursor = len(s.snapshots) - 1
}

// Undo moves the cursor back one and returns that snapshot. The restore is
// not itself recorded, and any pending debounced record is invalidated.
func (s *Store) Undo() ([]*plan.Location, bool) {
	s.mu.Lock()
	if s.cursor == 0 {
		s.mu.Unlock()
		return nil, false
	}
	s.gen++
	s.cursor--
	snap := snapshot(s.snapshots[s.cursor])
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
	return snap, true
}

// Redo moves the cursor forward one and returns that snapshot.
func (s *Store) Redo() ([]*plan.Location, bool) {
	s.mu.Lock()
	if s.cursor >= len(s.snapshots)-1 {
		s.mu.Unlock()
		return nil, false
	}
	s.gen++
	s.cursor++
	snap := snapshot(s.snapshots[s.cursor])
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
	return snap, true
}

// CanUndo reports whether an undo step exists.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo reports whether a redo step exists.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.snapshots)-1
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// snapshot copies the top-level slice; the pointed-to graphs are immutable
// once committed.
func snapshot(locs []*plan.Location) []*plan.Location {
	return append([]*plan.Location(nil), locs...)
}

// equalSnapshots compares collections by location identity, which is exact
// under the copy-on-write contract.
func equalSnapshots(a, b []*plan.Location) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
