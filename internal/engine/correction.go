package engine

import (
	"github.com/jwkunz/plum-chess/internal/board"
)

// correctionHistorySize is 2^18 entries, chosen the way the rest of the
// package sizes hash-indexed tables: big enough that collisions between
// unrelated positions stay rare without the table itself being a
// noticeable chunk of memory (512KB at 16 bits/entry).
const correctionHistorySize = 1 << 18
const correctionHistoryMask = correctionHistorySize - 1

const (
	correctionBonusCap = 256
	correctionValueCap = 16000
	correctionGravity  = 16 // new = old + (target-old)/correctionGravity
)

// CorrectionHistory tracks, per position hash, how far the static
// evaluator's guess tends to miss the search's actual result, and
// nudges future static evals of similar positions toward the truth.
type CorrectionHistory struct {
	positionCorr [correctionHistorySize]int16
}

// NewCorrectionHistory creates a new correction history table.
func NewCorrectionHistory() *CorrectionHistory {
	return &CorrectionHistory{}
}

// index mixes the hash's high bits into its low bits before masking, so
// the table isn't just sampling the Zobrist key's bottom 18 bits.
func (ch *CorrectionHistory) index(hash uint64) int {
	return int((hash ^ (hash >> 18)) & correctionHistoryMask)
}

// Get returns the correction to add to a position's static evaluation.
func (ch *CorrectionHistory) Get(pos *board.Position) int {
	return int(ch.positionCorr[ch.index(pos.Hash)])
}

// Update applies a depth-scaled gravity step toward the gap between a
// completed search's score and the static eval that seeded it, so
// recurring mis-evaluations of this position shrink over time.
func (ch *CorrectionHistory) Update(pos *board.Position, searchScore, staticEval, depth int) {
	if depth < 1 {
		return
	}

	bonus := clampInt((searchScore-staticEval)*depth/8, -correctionBonusCap, correctionBonusCap)

	idx := ch.index(pos.Hash)
	old := int(ch.positionCorr[idx])
	newVal := clampInt(old+(bonus-old)/correctionGravity, -correctionValueCap, correctionValueCap)

	ch.positionCorr[idx] = int16(newVal)
}

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Clear resets all correction values.
func (ch *CorrectionHistory) Clear() {
	for i := range ch.positionCorr {
		ch.positionCorr[i] = 0
	}
}

// Age scales down all correction values (called between games/positions).
func (ch *CorrectionHistory) Age() {
	for i := range ch.positionCorr {
		ch.positionCorr[i] /= 2
	}
}
