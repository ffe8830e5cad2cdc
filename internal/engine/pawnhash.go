package engine

import "math/bits"

// pawnEntrySize is the combined size of one PawnEntry's fields: an 8-byte
// key plus two 2-byte scores. Alignment pads the struct itself to 16 bytes.
const pawnEntrySize = 8 + 2 + 2

// PawnEntry caches the pawn-structure term of static evaluation for one
// Zobrist pawn key, split into the middlegame and endgame halves that
// get tapered together later.
type PawnEntry struct {
	Key     uint64
	MgScore int16
	EgScore int16
}

// PawnTable is a direct-mapped hash table keyed by a position's pawn
// hash. Collisions just evict; a stale read is caught by the Key check
// in Probe, not prevented.
type PawnTable struct {
	entries []PawnEntry
	mask    uint64
}

// powerOfTwoEntries returns the largest power of two number of
// pawnEntrySize-byte entries that fit in sizeMB megabytes.
func powerOfTwoEntries(sizeMB int) int {
	budget := sizeMB * 1024 * 1024 / pawnEntrySize
	if budget < 1 {
		return 1
	}
	return 1 << (bits.Len(uint(budget)) - 1)
}

// NewPawnTable allocates a pawn hash table sized to hold roughly sizeMB
// megabytes of entries, rounded down to a power of two so lookups can
// mask instead of mod.
func NewPawnTable(sizeMB int) *PawnTable {
	size := powerOfTwoEntries(sizeMB)
	return &PawnTable{
		entries: make([]PawnEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe reports the cached middlegame/endgame pawn-structure scores for
// key, if the slot holding it hasn't been overwritten by another key.
func (pt *PawnTable) Probe(key uint64) (mg, eg int, found bool) {
	entry := &pt.entries[key&pt.mask]
	if entry.Key != key {
		return 0, 0, false
	}
	return int(entry.MgScore), int(entry.EgScore), true
}

// Store records mg/eg under key, overwriting whatever previously
// occupied that slot.
func (pt *PawnTable) Store(key uint64, mg, eg int) {
	pt.entries[key&pt.mask] = PawnEntry{
		Key:     key,
		MgScore: int16(mg),
		EgScore: int16(eg),
	}
}

// Clear empties every slot.
func (pt *PawnTable) Clear() {
	for i := range pt.entries {
		pt.entries[i] = PawnEntry{}
	}
}
