package engine

import (
	"golang.org/x/exp/maps"

	"tutor-engine/board"
)

// Bound classifies how a stored value relates to the true minimax value.
type Bound uint8

const (
	BoundExact Bound = iota + 1
	// BoundLower: the search failed high, true value >= Value.
	BoundLower
	// BoundUpper: the search failed low, true value <= Value.
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "none"
}

type TTEntry struct {
	Depth int
	Value int
	Bound Bound
	// Age is the Position.Age of the node the entry was computed for.
	Age int
	// Reason is the breakdown of the leaf the value came from.
	Reason Breakdown
	// PV leads from the node to that leaf. It is shared, never modified.
	PV []board.Move
}

// TransTable caches search results by canonical position key. Entries are
// never replaced by size pressure; Collect drops the ones from positions that
// can no longer occur.
type TransTable struct {
	entries map[board.Key]TTEntry

	stores uint64
	hits   uint64
}

func NewTransTable() *TransTable {
	return &TransTable{entries: make(map[board.Key]TTEntry)}
}

// Lookup returns whatever is stored for key, regardless of bound and depth.
func (tt *TransTable) Lookup(key board.Key) (TTEntry, bool) {
	e, ok := tt.entries[key]
	return e, ok
}

// Lookup returns a value usable in place of a search to the given depth: only
// exact entries searched at least that deep qualify.
func (tt *TransTable) Lookup(key board.Key, depth int) (int, bool) {
	e, ok := tt.entries[key]
	if !ok || e.Bound != BoundExact || e.Depth < depth {
		return 0, false
	}
	tt.hits++
	return e.Value, true
}

// Store overwrites any previous entry for key.
func (tt *TransTable) Store(key board.Key, e TTEntry) {
	tt.stores++
	tt.entries[key] = e
}

// Collect deletes every entry whose age is <= age and returns how many went.
func (tt *TransTable) Collect(age int) int {
	before := len(tt.entries)
	maps.DeleteFunc(tt.entries, func(_ board.Key, e TTEntry) bool {
		return e.Age <= age
	})
	return before - len(tt.entries)
}

func (tt *TransTable) Len() int { return len(tt.entries) }

func (tt *TransTable) Clear() {
	maps.Clear(tt.entries)
	tt.stores, tt.hits = 0, 0
}

// BoundCounts tallies the stored entries per bound kind.
func (tt *TransTable) BoundCounts() map[Bound]int {
	out := make(map[Bound]int, 3)
	for _, e := range tt.entries {
		out[e.Bound]++
	}
	return out
}
