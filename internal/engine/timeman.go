package engine

import (
	"time"

	"github.com/jwkunz/plum-chess/internal/board"
)

// UCILimits contains UCI time control parameters.
type UCILimits struct {
	Time      [2]time.Duration // wtime, btime (remaining time for each color)
	Inc       [2]time.Duration // winc, binc (increment per move)
	MovesToGo int              // moves until next time control (0 = sudden death)
	MoveTime  time.Duration    // fixed time per move (overrides other time controls)
	Depth     int              // maximum search depth
	Nodes     uint64           // maximum nodes to search
	Infinite  bool             // search until stopped
	Ponder    bool             // ponder mode
}

// TimeManager handles time allocation for searches.
type TimeManager struct {
	optimumTime time.Duration // Target time for this move
	maximumTime time.Duration // Maximum time allowed
	startTime   time.Time     // When search started
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init initializes the time manager for a new search.
// ply is the current game ply (half-move number).
func (tm *TimeManager) Init(limits UCILimits, us board.Color, ply int) {
	tm.startTime = time.Now()

	// Fixed move time mode
	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}

	// Infinite or depth-limited mode
	if limits.Infinite || (limits.Time[us] == 0 && limits.MoveTime == 0) {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	// Calculate time allocation based on remaining time and increment
	timeLeft := limits.Time[us]
	inc := limits.Inc[us]

	// Sudden death: estimate moves remaining from game phase, since
	// there's no explicit movestogo to divide by.
	mtg := limits.MovesToGo
	if mtg == 0 {
		mtg = clampInt(50-ply/4, 10, 50)
	}

	baseTime := timeLeft/time.Duration(mtg) + inc*9/10

	tm.optimumTime = baseTime
	if ply < 8 {
		// Early moves: keep a buffer rather than committing to baseTime.
		tm.optimumTime = baseTime * 85 / 100
	}

	// Maximum is 5x optimum or 80% of remaining, whichever is smaller,
	// and never more than 95% of remaining regardless.
	tm.maximumTime = min(tm.optimumTime*5, timeLeft*8/10, timeLeft*95/100)

	tm.optimumTime = max(tm.optimumTime, 10*time.Millisecond)
	tm.maximumTime = max(tm.maximumTime, 50*time.Millisecond)
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// ShouldStop returns true if we should stop searching.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.maximumTime
}

// PastOptimum returns true if we've exceeded the optimum time.
func (tm *TimeManager) PastOptimum() bool {
	return tm.Elapsed() >= tm.optimumTime
}

// stabilityCut maps a minimum best-move-stability streak to the fraction
// of optimumTime still worth spending. Checked from the top down, so the
// first threshold met wins.
var stabilityCut = []struct {
	minStreak int
	fraction  int // percent
}{
	{6, 40},
	{4, 60},
	{2, 80},
}

// AdjustForStability shrinks the optimum time once the best move has held
// for several consecutive depths, on the theory that a settled search has
// little left to gain from running longer.
func (tm *TimeManager) AdjustForStability(stability int) {
	for _, cut := range stabilityCut {
		if stability >= cut.minStreak {
			tm.optimumTime = tm.optimumTime * time.Duration(cut.fraction) / 100
			return
		}
	}
}

// instabilityBoost maps a minimum best-move-change count to the multiple
// of optimumTime worth spending instead, capped at maximumTime.
var instabilityBoost = []struct {
	minChanges int
	multiple   int // percent
}{
	{4, 200},
	{2, 150},
}

// AdjustForInstability grows the optimum time when the best move keeps
// flipping between depths, since that's a sign the position still needs
// more search before committing.
func (tm *TimeManager) AdjustForInstability(changes int) {
	for _, boost := range instabilityBoost {
		if changes >= boost.minChanges {
			tm.optimumTime = min(tm.optimumTime*time.Duration(boost.multiple)/100, tm.maximumTime)
			return
		}
	}
}
