package engine

import "github.com/jwkunz/plum-chess/internal/board"

const (
	knightOutpostMg          = 25
	knightOutpostEg          = 15
	knightOutpostProtectedMg = 15
	knightOutpostProtectedEg = 10
	bishopOutpostMg          = 15
	bishopOutpostEg          = 10
)

// canBeAttackedByPawn reports whether an enemy pawn, now or after
// advancing, could ever land an attack on sq - i.e. there's an enemy
// pawn on an adjacent file that hasn't already passed sq's rank.
func canBeAttackedByPawn(sq board.Square, color board.Color, enemyPawns board.Bitboard) bool {
	file := sq.File()
	var adjacentFiles board.Bitboard
	if file > 0 {
		adjacentFiles |= board.FileMask[file-1]
	}
	if file < 7 {
		adjacentFiles |= board.FileMask[file+1]
	}

	var candidateRanks board.Bitboard
	if color == board.White {
		for r := 0; r <= sq.Rank(); r++ {
			candidateRanks |= board.RankMask[r]
		}
	} else {
		for r := sq.Rank(); r < 8; r++ {
			candidateRanks |= board.RankMask[r]
		}
	}

	return (enemyPawns & adjacentFiles & candidateRanks) != 0
}

// evaluateOutposts rewards knights and bishops sitting on squares the
// enemy can never attack with a pawn, extra for a knight also defended
// by a friendly pawn.
func evaluateOutposts(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := signFor(color)

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]

		var outpostRanks board.Bitboard
		if color == board.White {
			outpostRanks = board.RankMask[3] | board.RankMask[4] | board.RankMask[5]
		} else {
			outpostRanks = board.RankMask[2] | board.RankMask[3] | board.RankMask[4]
		}

		knights := pos.Pieces[color][board.Knight] & outpostRanks
		for knights != 0 {
			sq := knights.PopLSB()
			if canBeAttackedByPawn(sq, color, enemyPawns) {
				continue
			}

			mgBonus += sign * knightOutpostMg
			egBonus += sign * knightOutpostEg

			if board.PawnAttacks(sq, color.Other())&ownPawns != 0 {
				mgBonus += sign * knightOutpostProtectedMg
				egBonus += sign * knightOutpostProtectedEg
			}
		}

		bishops := pos.Pieces[color][board.Bishop] & outpostRanks
		for bishops != 0 {
			sq := bishops.PopLSB()
			if canBeAttackedByPawn(sq, color, enemyPawns) {
				continue
			}
			mgBonus += sign * bishopOutpostMg
			egBonus += sign * bishopOutpostEg
		}
	}
	return mgBonus, egBonus
}
