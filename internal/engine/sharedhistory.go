package engine

import "sync/atomic"

// SharedHistory is a [from][to] quiet-move history table shared by every
// worker in a Lazy-SMP search. Unlike the per-worker MoveOrderer history,
// it is written from multiple goroutines concurrently; each cell is an
// atomic.Int32 so updates never race, at the cost of losing the exact
// read-modify-write ordering a single-threaded history gets - an
// acceptable trade since this table only ever biases move ordering.
type SharedHistory struct {
	scores [64][64]atomic.Int32
}

// NewSharedHistory creates an empty shared history table.
func NewSharedHistory() *SharedHistory {
	return &SharedHistory{}
}

// Update adds bonus (or subtracts, if negative) to the from/to cell,
// clamped to keep the table from overflowing across a long search.
func (sh *SharedHistory) Update(from, to, bonus int) {
	cell := &sh.scores[from][to]
	next := cell.Add(int32(bonus))
	if next > 400000 {
		cell.Store(400000)
	} else if next < -400000 {
		cell.Store(-400000)
	}
}

// Get returns the current shared history score for a from/to pair.
func (sh *SharedHistory) Get(from, to int) int {
	return int(sh.scores[from][to].Load())
}

// Age halves every entry. Called once per root move by the driver so
// older statistics decay relative to the position actually being played.
func (sh *SharedHistory) Age() {
	for i := range sh.scores {
		for j := range sh.scores[i] {
			cell := &sh.scores[i][j]
			cell.Store(cell.Load() / 2)
		}
	}
}

// Clear resets the table, used on ucinewgame/new_game.
func (sh *SharedHistory) Clear() {
	for i := range sh.scores {
		for j := range sh.scores[i] {
			sh.scores[i][j].Store(0)
		}
	}
}
