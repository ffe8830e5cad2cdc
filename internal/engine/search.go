package engine

import (
	"sync/atomic"

	"github.com/jwkunz/plum-chess/internal/board"
	"golang.org/x/sync/errgroup"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// Pruning constants
const (
	lazyEvalMargin          = 150   // Lazy eval margin for quiescence
	historyPruningThreshold = -4000 // History pruning threshold
	probcutDepth            = 3     // Minimum depth for probcut (Stockfish uses 3)
	probcutMargin           = 200   // Probcut margin above beta
	probcutReduction        = 4     // Probcut depth reduction
	nmpVerificationDepth    = 10    // Null-move fail-highs above this depth get a real re-search
)

// LMP (Late Move Pruning) thresholds by depth
// At depth d, prune quiet moves after lmpThreshold[d] moves
var lmpThreshold = [8]int{0, 3, 5, 9, 15, 23, 33, 45}

// Threat extension constants
const (
	threatExtensionMinDepth  = 4   // Minimum depth to consider threat extensions
	threatExtensionThreshold = 200 // Minimum material value to trigger extension (below a knight, above a pawn)
)

// Multi-Cut constants: if enough of the first moves searched at a
// reduced depth fail high, the node itself is pruned without searching
// the remaining moves.
const (
	multicutDepth    = 8 // Minimum depth to attempt multi-cut
	multicutMoves    = 6 // Moves sampled before giving up
	multicutRequired = 3 // Cutoffs required among the sample to prune
)

// Feature flags for A/B testing
// Set to false to disable feature and measure ELO impact
const (
	// Tier 1: High-Risk Pruning
	EnableProbcut     = true // worker.go: Probcut pruning - FIXED with Stockfish improvements
	EnableRazoring    = true // worker.go: Razoring
	EnableSingularExt = true // worker.go: Singular extension - includes integrated Multi-Cut
	EnableThreatExt   = true // worker.go: Threat extension - ESSENTIAL

	// Tier 2: Medium-Risk Pruning
	EnableRFP             = true  // worker.go: Reverse Futility Pruning
	EnableLMP             = true  // worker.go: Late Move Pruning - KEEP (helps)
	EnableSEEPruning      = true  // worker.go: SEE pruning for captures
	EnableHistoryPruning  = false // worker.go: History pruning - DISABLED (+3.5%)
	EnableFutilityPruning = true  // worker.go: Futility pruning - KEEP (helps)

	// Tier 3: Extensions/Reductions
	EnableNMP = true // worker.go: Null Move Pruning
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs the alpha-beta search. With Threads == 1 it behaves as
// a single Worker; with Threads > 1 it runs additional helper workers in
// the background (Lazy SMP), sharing the transposition table, pawn hash
// table, shared history and the stop flag with the main worker that the
// iterative-deepening driver in Engine talks to directly.
type Searcher struct {
	worker        *Worker
	tt            *TranspositionTable
	pawnTable     *PawnTable
	sharedHistory *SharedHistory
	stopFlag      atomic.Bool

	threads   int
	helpers   []*Worker
	helperEG  *errgroup.Group
	nextDepth atomic.Int64
}

// NewSearcher creates a single-threaded searcher.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return NewSearcherWithThreads(tt, 1)
}

// NewSearcherWithThreads creates a searcher with the given number of Lazy
// SMP worker threads (clamped to at least 1). Thread 0 is the main worker
// driven synchronously by the iterative-deepening loop; threads 1..n-1 are
// helpers that run in the background once StartHelpers is called.
func NewSearcherWithThreads(tt *TranspositionTable, threads int) *Searcher {
	if threads < 1 {
		threads = 1
	}
	pawnTable := NewPawnTable(1) // 1MB pawn hash table
	sharedHistory := NewSharedHistory()

	s := &Searcher{
		tt:            tt,
		pawnTable:     pawnTable,
		sharedHistory: sharedHistory,
		threads:       threads,
	}
	s.worker = NewWorker(0, tt, pawnTable, sharedHistory, &s.stopFlag)

	for i := 1; i < threads; i++ {
		s.helpers = append(s.helpers, NewWorker(i, tt, pawnTable, sharedHistory, &s.stopFlag))
	}
	return s
}

// Stop signals the search (main worker and all helpers) to stop and waits
// for helper goroutines to exit.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
	s.StopHelpers()
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.worker.Reset()
	for _, h := range s.helpers {
		h.Reset()
	}
	s.nextDepth.Store(0)
	s.sharedHistory.Age()
}

// StartHelpers launches the Lazy SMP helper goroutines against pos. Each
// helper claims successive depths from a shared atomic counter and runs a
// full-window search at that depth, populating the shared transposition
// table ahead of (or alongside) the main worker's own iterative-deepening
// loop. No-op when the searcher has no helper threads.
func (s *Searcher) StartHelpers(pos *board.Position, rootHistory []uint64) {
	if len(s.helpers) == 0 {
		return
	}
	eg := &errgroup.Group{}
	for _, h := range s.helpers {
		h.SetRootHistory(rootHistory)
		h := h
		eg.Go(func() error {
			for !s.stopFlag.Load() {
				depth := int(s.nextDepth.Add(1))
				if depth > MaxPly-1 {
					return nil
				}
				h.InitSearch(pos)
				h.SearchDepth(depth, -Infinity, Infinity)
			}
			return nil
		})
	}
	s.helperEG = eg
}

// StopHelpers waits for any running helper goroutines to exit. Safe to
// call when no helpers are running.
func (s *Searcher) StopHelpers() {
	if s.helperEG != nil {
		s.helperEG.Wait()
		s.helperEG = nil
	}
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.worker.Nodes()
}

// Search performs the search at the given depth.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	return s.SearchWithBounds(pos, depth, -Infinity, Infinity)
}

// SetRootHistory sets the position history from the game (for repetition detection).
// This should be called before Search() with hashes from the game's move history.
func (s *Searcher) SetRootHistory(hashes []uint64) {
	s.worker.SetRootHistory(hashes)
}

// SetExcludedMoves sets the moves to exclude at root (for Multi-PV).
func (s *Searcher) SetExcludedMoves(moves []board.Move) {
	s.worker.SetExcludedMoves(moves)
}

// SearchWithBounds performs search with custom alpha/beta bounds (for aspiration windows).
func (s *Searcher) SearchWithBounds(pos *board.Position, depth, alpha, beta int) (board.Move, int) {
	s.worker.InitSearch(pos)
	return s.worker.SearchDepth(depth, alpha, beta)
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	return s.worker.GetPV()
}

// ClearOrderer clears the move orderer state.
func (s *Searcher) ClearOrderer() {
	s.worker.orderer.Clear()
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
