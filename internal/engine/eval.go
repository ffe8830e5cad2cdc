// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/jwkunz/plum-chess/internal/board"
)

// tempoBonus is a small score added for the side to move, reflecting
// the edge of holding the initiative.
const tempoBonus = 10

// maxPhase is the phase value of a position with every non-pawn piece
// still on the board (4 minors*1 + 2 rooks*2 + 1 queen*4 = 12 per side,
// summed over both sides).
const maxPhase = 24

// materialAndPST walks every piece once, folding in material value and
// its piece-square-table term for both the middlegame and endgame
// tables, and accumulates the game-phase counter used to taper between
// them. Shared by Evaluate and EvaluateWithPawnTable so the two don't
// duplicate the only genuinely hot loop in static evaluation.
func materialAndPST(pos *board.Position) (mgScore, egScore, phase int) {
	for c := board.White; c <= board.Black; c++ {
		sign := signFor(c)

		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()

				mgScore += sign * pieceValues[pt]
				egScore += sign * pieceValues[pt]

				pstSq := sq
				if c == board.White {
					pstSq = sq.Mirror()
				}

				if pt == board.King {
					mgScore += sign * kingMidgamePST[pstSq]
					egScore += sign * kingEndgamePST[pstSq]
				} else {
					pstValue := psts[pt][pstSq]
					mgScore += sign * pstValue
					egScore += sign * pstValue
				}

				switch pt {
				case board.Knight, board.Bishop:
					phase++
				case board.Rook:
					phase += 2
				case board.Queen:
					phase += 4
				}
			}
		}
	}
	return mgScore, egScore, phase
}

// taper interpolates between a middlegame and endgame score by how much
// non-pawn material remains, clamping phase to maxPhase first.
func taper(mgScore, egScore, phase int) int {
	if phase > maxPhase {
		phase = maxPhase
	}
	return (mgScore*phase + egScore*(maxPhase-phase)) / maxPhase
}

// Evaluate returns the full static evaluation of pos, from the side to
// move's perspective. Every positional term below is computed fresh;
// EvaluateWithPawnTable is the version the search hot path actually
// calls, which skips the more expensive terms and caches the pawn term.
func Evaluate(pos *board.Position) int {
	mgScore, egScore, phase := materialAndPST(pos)

	ppMg, ppEg := evaluatePassedPawns(pos)
	mgScore += ppMg
	egScore += ppEg

	mobMg, mobEg := evaluateMobility(pos)
	mgScore += mobMg
	egScore += mobEg

	mgScore += evaluateKingSafety(pos)
	mgScore += evaluateKingTropism(pos)

	bpMg, bpEg := evaluateBishopPair(pos)
	mgScore += bpMg
	egScore += bpEg

	rfMg, rfEg := evaluateRooksOnFiles(pos)
	mgScore += rfMg
	egScore += rfEg

	coordMg, coordEg := evaluatePieceCoordination(pos)
	mgScore += coordMg
	egScore += coordEg

	psMg, psEg := evaluatePawnStructure(pos)
	mgScore += psMg
	egScore += psEg

	opMg, opEg := evaluateOutposts(pos)
	mgScore += opMg
	egScore += opEg

	thrMg, thrEg := evaluateThreats(pos)
	mgScore += thrMg
	egScore += thrEg

	mgScore += evaluateSpace(pos)

	tpMg, tpEg := evaluateTrappedPieces(pos)
	mgScore += tpMg
	egScore += tpEg

	score := taper(mgScore, egScore, phase) + tempoBonus

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// EvaluateWithPawnTable is Evaluate's hot-path sibling: same material
// and PST term, the pawn-structure term fronted by pawnTable, and a
// deliberately smaller set of positional terms (no tropism, piece
// coordination, space, or trapped-piece checks) to keep per-node cost
// down during search.
func EvaluateWithPawnTable(pos *board.Position, pawnTable *PawnTable) int {
	mgScore, egScore, phase := materialAndPST(pos)

	ppMg, ppEg := evaluatePassedPawns(pos)
	mgScore += ppMg
	egScore += ppEg

	mobMg, mobEg := evaluateMobility(pos)
	mgScore += mobMg
	egScore += mobEg

	mgScore += evaluateKingSafety(pos)

	bpMg, bpEg := evaluateBishopPair(pos)
	mgScore += bpMg
	egScore += bpEg

	rfMg, rfEg := evaluateRooksOnFiles(pos)
	mgScore += rfMg
	egScore += rfEg

	psMg, psEg := evaluatePawnStructureWithCache(pos, pawnTable)
	mgScore += psMg
	egScore += psEg

	opMg, opEg := evaluateOutposts(pos)
	mgScore += opMg
	egScore += opEg

	thrMg, thrEg := evaluateThreats(pos)
	mgScore += thrMg
	egScore += thrEg

	score := taper(mgScore, egScore, phase) + tempoBonus

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// chebyshevDistance is the number of king moves needed to travel
// between two squares: max(|file delta|, |rank delta|).
func chebyshevDistance(sq1, sq2 board.Square) int {
	f1, r1 := sq1.File(), sq1.Rank()
	f2, r2 := sq2.File(), sq2.Rank()

	fileDiff := f1 - f2
	if fileDiff < 0 {
		fileDiff = -fileDiff
	}
	rankDiff := r1 - r2
	if rankDiff < 0 {
		rankDiff = -rankDiff
	}

	return max(fileDiff, rankDiff)
}
