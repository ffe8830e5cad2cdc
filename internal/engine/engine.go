package engine

import (
	"context"
	"sort"
	"time"

	"github.com/jwkunz/plum-chess/internal/board"
	"github.com/jwkunz/plum-chess/internal/persist"
	"github.com/jwkunz/plum-chess/internal/telemetry"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int // Permille of hash table used
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth       int              // Maximum depth (0 = no limit)
	Nodes       uint64           // Maximum nodes (0 = no limit)
	MoveTime    time.Duration    // Fixed time for this move (0 = not fixed)
	Infinite    bool             // Search until stopped
	MultiPV     int              // Number of PV lines for SearchMultiPV (0 = 1)
	Mate        int              // Stop once mate in this many moves is confirmed (0 = no mate search)
	SearchMoves []board.Move     // Restrict the root to this subset of moves (empty = all moves)
	Time        [2]time.Duration // wtime/btime remaining, indexed by board.Color (0 = no clock)
	Inc         [2]time.Duration // winc/binc per-move increment, indexed by board.Color
	MovesToGo   int              // Moves until next time control (0 = sudden death)
}

// Engine is the chess AI engine.
type Engine struct {
	searcher      *Searcher
	tt            *TranspositionTable
	threads       int
	deterministic bool
	rootHistory   []uint64
	cache         *persist.Cache

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine with the given transposition table size in MB.
// The analysis cache starts disabled; call SetAnalysisCacheDir to enable it.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	return &Engine{
		searcher: NewSearcher(tt),
		tt:       tt,
		threads:  1,
		cache:    persist.NewDisabled(),
	}
}

// SetAnalysisCacheDir opens a persistent analysis cache at dir (creating
// it if necessary), replacing any previously open cache. Pass an empty
// dir to disable the cache again.
func (e *Engine) SetAnalysisCacheDir(dir string) error {
	c, err := persist.Open(dir)
	if err != nil {
		return err
	}
	e.cache.Close()
	e.cache = c
	return nil
}

// SetThreads sets the number of Lazy SMP search threads. Has no effect
// until the next search starts (it rebuilds the searcher, so in-flight
// aspiration state is discarded). Ignored (clamped to 1) while
// deterministic mode is enabled, since helper threads race the shared
// transposition table and make repeated searches of the same position
// produce different move orderings.
func (e *Engine) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	e.threads = n
	threads := n
	if e.deterministic {
		threads = 1
	}
	e.searcher = NewSearcherWithThreads(e.tt, threads)
}

// SetDeterministic toggles deterministic single-threaded search. When
// enabled, Threads is forced to 1 regardless of SetThreads until
// disabled again.
func (e *Engine) SetDeterministic(on bool) {
	e.deterministic = on
	threads := e.threads
	if on {
		threads = 1
	}
	e.searcher = NewSearcherWithThreads(e.tt, threads)
}

// SetRootHistory records the game's position history (for repetition
// detection) ahead of the next search.
func (e *Engine) SetRootHistory(hashes []uint64) {
	e.rootHistory = make([]uint64, len(hashes))
	copy(e.rootHistory, hashes)
}

// SearchWithLimits finds the best move with specific search limits.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) board.Move {
	excluded := excludedForSearchMoves(pos, limits.SearchMoves)
	result := e.iterativeDeepen(pos, limits, excluded)
	return result.Move
}

// excludedForSearchMoves returns every legal move in pos that is not in
// allowed, reusing the root-exclusion mechanism that Multi-PV already has
// to restrict iterativeDeepen to a UCI "searchmoves" subset. An empty or
// nil allowed list means no restriction.
func excludedForSearchMoves(pos *board.Position, allowed []board.Move) []board.Move {
	if len(allowed) == 0 {
		return nil
	}
	var excluded []board.Move
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		kept := false
		for _, a := range allowed {
			if m == a {
				kept = true
				break
			}
		}
		if !kept {
			excluded = append(excluded, m)
		}
	}
	return excluded
}

// PVResult is one line of a multi-PV search.
type PVResult struct {
	Move  board.Move
	Score int
	Depth int
	PV    []board.Move
}

// SearchMultiPV runs limits.MultiPV (at least 1) independent searches,
// excluding each previously found root move from the next, and returns
// the lines ordered best-first. It shares the engine's transposition
// table and helper threads across lines the same way a single search
// would.
func (e *Engine) SearchMultiPV(pos *board.Position, limits SearchLimits) []PVResult {
	n := limits.MultiPV
	if n < 1 {
		n = 1
	}

	var results []PVResult
	excluded := excludedForSearchMoves(pos, limits.SearchMoves)
	for i := 0; i < n; i++ {
		result := e.iterativeDeepen(pos, limits, excluded)
		if result.Move == board.NoMove {
			break
		}
		results = append(results, result)
		excluded = append(excluded, result.Move)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// iterativeDeepen runs the iterative-deepening/aspiration-window loop and
// returns the best line found, excluding any root move in excludedMoves.
func (e *Engine) iterativeDeepen(pos *board.Position, limits SearchLimits, excludedMoves []board.Move) PVResult {
	_, endSpan := telemetry.StartSearchSpan(context.Background(), pos.ToFEN())
	defer endSpan()

	e.searcher.Reset()
	e.tt.NewSearch()
	e.searcher.SetRootHistory(e.rootHistory)
	e.searcher.SetExcludedMoves(excludedMoves)
	e.seedFromCache(pos)
	e.searcher.StartHelpers(pos, e.rootHistory)
	defer e.searcher.StopHelpers()

	var bestMove board.Move
	var bestScore int
	var bestDepth int

	// Determine maximum depth
	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}
	if limits.Mate > 0 {
		// A mate in N moves takes up to 2N-1 plies to confirm, so the
		// search depth is capped there.
		if mateDepth := 2*limits.Mate - 1; mateDepth < maxDepth {
			maxDepth = mateDepth
		}
	}

	tm := NewTimeManager()
	tm.Init(UCILimits{
		Time:      limits.Time,
		Inc:       limits.Inc,
		MovesToGo: limits.MovesToGo,
		MoveTime:  limits.MoveTime,
		Depth:     limits.Depth,
		Nodes:     limits.Nodes,
		Infinite:  limits.Infinite,
	}, pos.SideToMove, pos.FullMoveNumber*2)
	baseOptimum := tm.optimumTime

	var prevMove board.Move
	var stabilityStreak, instabilityChanges int

	// Aspiration window parameters
	const initialWindow = 50 // Start with Â±50 centipawns

	// Iterative deepening
	for depth := 1; depth <= maxDepth; depth++ {
		// Check time before starting new iteration
		if tm.ShouldStop() {
			break
		}

		var move board.Move
		var score int

		// Use aspiration windows after depth 4 and when we have a previous score
		if depth >= 5 && bestMove != board.NoMove {
			window := initialWindow
			alpha := bestScore - window
			beta := bestScore + window

			// Aspiration window search with widening
			for {
				move, score = e.searcher.SearchWithBounds(pos, depth, alpha, beta)

				// Check if search was stopped
				if e.searcher.stopFlag.Load() {
					break
				}

				if score <= alpha {
					// Fail low - widen window down
					alpha = -Infinity
				} else if score >= beta {
					// Fail high - widen window up
					beta = Infinity
				} else {
					// Score within window, we're done
					break
				}

				// If both bounds are infinite, we've done a full search
				if alpha == -Infinity && beta == Infinity {
					break
				}
			}
		} else {
			// Full window search for early depths
			move, score = e.searcher.Search(pos, depth)
		}

		// Check if search was stopped
		if e.searcher.stopFlag.Load() {
			break
		}

		// Update best move and best-move stability
		if move != board.NoMove {
			if move == prevMove {
				stabilityStreak++
				instabilityChanges = 0
			} else {
				instabilityChanges++
				stabilityStreak = 0
			}
			prevMove = move

			bestMove = move
			bestScore = score
			bestDepth = depth
		}

		// Report info
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    bestScore,
				Nodes:    e.searcher.Nodes(),
				Time:     tm.Elapsed(),
				PV:       e.searcher.GetPV(),
				HashFull: e.tt.HashFull(),
			})
		}

		// Early termination: found mate, or the specific mate-in-N the
		// caller asked for.
		if d := MateDistance(score); d > 0 {
			if limits.Mate == 0 || d <= limits.Mate {
				break
			}
		}

		// Re-derive the optimum from the base allocation rather than
		// compounding adjustments depth over depth.
		tm.optimumTime = baseOptimum
		if stabilityStreak > 0 {
			tm.AdjustForStability(stabilityStreak)
		} else if instabilityChanges > 0 {
			tm.AdjustForInstability(instabilityChanges)
		}

		if tm.PastOptimum() {
			break
		}
	}

	e.storeToCache(pos, bestMove, bestScore, bestDepth)
	telemetry.RecordNodes(int64(e.searcher.Nodes()))

	return PVResult{Move: bestMove, Score: bestScore, Depth: bestDepth, PV: e.searcher.GetPV()}
}

// seedFromCache warm-starts the transposition table with a cached
// analysis of pos, if one exists. This never changes search results,
// only the order in which the first iteration tries moves.
func (e *Engine) seedFromCache(pos *board.Position) {
	entry, found, err := e.cache.Load(pos.PolyglotHash())
	if err != nil || !found {
		return
	}

	move := parseCachedMove(pos, entry.BestMove)
	if move == board.NoMove {
		return
	}
	// Seed only the move: a depth-1 lower bound of -Infinity can never
	// narrow the window or cut off, so the cached score is not reused.
	e.tt.Store(pos.Hash, 1, -Infinity, TTLowerBound, move, false)
}

// storeToCache records the result of a completed search, best-effort.
// Failures are not surfaced to callers since the cache is purely an
// optimization.
func (e *Engine) storeToCache(pos *board.Position, move board.Move, score, depth int) {
	if move == board.NoMove {
		return
	}
	go e.cache.Store(pos.PolyglotHash(), persist.Entry{
		FEN:      pos.ToFEN(),
		BestMove: move.String(),
		Score:    score,
		Depth:    depth,
	})
}

// parseCachedMove resolves a long-algebraic move string ("e2e4") against
// pos's legal moves, returning board.NoMove if it no longer applies.
func parseCachedMove(pos *board.Position, s string) board.Move {
	if len(s) < 4 {
		return board.NoMove
	}
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.String() == s {
			return m
		}
	}
	return board.NoMove
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Close releases resources held by the engine, including the analysis
// cache's underlying database handle.
func (e *Engine) Close() {
	e.cache.Close()
}

// Clear clears the transposition table and other caches.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.searcher.ClearOrderer()
	e.searcher.sharedHistory.Clear()
}

// ClearHash clears only the transposition table, leaving move-ordering
// history and killers intact. Backs the UCI "Clear Hash" button, which is
// narrower than ucinewgame's full Clear.
func (e *Engine) ClearHash() {
	e.tt.Clear()
}

// ResizeHash reallocates the transposition table to sizeMB megabytes,
// discarding its contents. Returns false if sizeMB is out of range, in
// which case the table is left untouched.
func (e *Engine) ResizeHash(sizeMB int) bool {
	return e.tt.Resize(sizeMB)
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove(move, undo)
	}

	return nodes
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// MateDistance returns the number of moves to mate implied by score, or 0
// if score isn't a forced mate. The sign of score tells delivering mate
// apart from being mated; the magnitude is always positive. Shared by
// ScoreToString, the mate-in-N search cutoff, and UCI's "score mate"
// formatting.
func MateDistance(score int) int {
	if score > MateScore-100 {
		return (MateScore - score + 1) / 2
	}
	if score < -MateScore+100 {
		return (MateScore + score + 1) / 2
	}
	return 0
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if d := MateDistance(score); d > 0 {
		if score > 0 {
			return "Mate in " + itoa(d)
		}
		return "Mated in " + itoa(d)
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100

	return sign + itoa(pawns) + "." + itoa(centipawns)
}

// Simple integer to string (avoid fmt import)
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}
