package engine

import "github.com/jwkunz/plum-chess/internal/board"

// attackerWeight is the king-safety attack-unit contributed by each
// enemy piece type that can see the king zone, indexed by board.PieceType.
var attackerWeight = [6]int{0, 20, 20, 40, 80, 0}

const (
	pawnShieldBonus      = 10
	pawnShieldMissing    = -15
	openFileNearKing     = -20
	semiOpenFileNearKing = -10
)

// tropismWeight rewards a piece standing close to the enemy king,
// indexed by board.PieceType (Pawn and King unused).
var tropismWeight = [6]int{0, 3, 2, 2, 5, 0}

// evaluateKingSafety scores the middlegame danger to each king: attack
// units from enemy pieces that see the king zone (scaled up once two or
// more attackers pile on), plus a pawn-shield/open-file term.
func evaluateKingSafety(pos *board.Position) int {
	var score int
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := signFor(color)

		kingSq := pos.KingSquare[color]
		kingFile := kingSq.File()

		kingZone := board.KingAttacks(kingSq) | board.SquareBB(kingSq)
		if color == board.White {
			kingZone |= kingZone.North()
		} else {
			kingZone |= kingZone.South()
		}

		enemy := color.Other()

		attackerCount := 0
		attackWeight := 0

		countAttacks := func(pt board.PieceType, attacks board.Bitboard) {
			if attacks&kingZone != 0 {
				attackerCount++
				attackWeight += attackerWeight[pt]
			}
		}

		for temp := pos.Pieces[enemy][board.Knight]; temp != 0; {
			sq := temp.PopLSB()
			countAttacks(board.Knight, board.KnightAttacks(sq))
		}
		for temp := pos.Pieces[enemy][board.Bishop]; temp != 0; {
			sq := temp.PopLSB()
			countAttacks(board.Bishop, board.BishopAttacks(sq, occupied))
		}
		for temp := pos.Pieces[enemy][board.Rook]; temp != 0; {
			sq := temp.PopLSB()
			countAttacks(board.Rook, board.RookAttacks(sq, occupied))
		}
		for temp := pos.Pieces[enemy][board.Queen]; temp != 0; {
			sq := temp.PopLSB()
			countAttacks(board.Queen, board.QueenAttacks(sq, occupied))
		}

		if attackerCount >= 2 {
			attackWeight = attackWeight * attackerCount / 2
		}
		score -= sign * attackWeight

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyFilePawns := pos.Pieces[enemy][board.Pawn]

		for f := kingFile - 1; f <= kingFile+1; f++ {
			if f < 0 || f > 7 {
				continue
			}

			filePawns := ownPawns & board.FileMask[f]
			enemyOnFile := enemyFilePawns & board.FileMask[f]

			var shieldRank int
			if color == board.White {
				shieldRank = 1
			} else {
				shieldRank = 6
			}

			shieldMask := board.FileMask[f] & board.RankMask[shieldRank]
			if ownPawns&shieldMask != 0 {
				score += sign * pawnShieldBonus
			} else if filePawns == 0 {
				score += sign * pawnShieldMissing
			}

			if filePawns == 0 && enemyOnFile == 0 {
				score += sign * openFileNearKing
			} else if filePawns == 0 {
				score += sign * semiOpenFileNearKing
			}
		}
	}

	return score
}

// evaluateKingTropism rewards minor/major pieces standing close to the
// enemy king - a crude proxy for attacking potential that only matters
// in the middlegame.
func evaluateKingTropism(pos *board.Position) int {
	var score int

	for color := board.White; color <= board.Black; color++ {
		sign := signFor(color)

		enemy := color.Other()
		enemyKingSq := pos.KingSquare[enemy]

		for pt := board.Knight; pt <= board.Queen; pt++ {
			pieces := pos.Pieces[color][pt]
			for pieces != 0 {
				sq := pieces.PopLSB()
				dist := chebyshevDistance(sq, enemyKingSq)
				if dist < 7 {
					score += sign * tropismWeight[pt] * (7 - dist)
				}
			}
		}
	}

	return score
}
