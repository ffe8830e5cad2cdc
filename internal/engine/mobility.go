package engine

import "github.com/jwkunz/plum-chess/internal/board"

// Mobility weight per piece type, indexed by board.PieceType.
var mobilityMgWeight = [6]int{0, 4, 5, 2, 1, 0}
var mobilityEgWeight = [6]int{0, 3, 4, 4, 2, 0}

// evaluateMobility scores each minor/major piece by the number of
// squares it safely attacks - not occupied by a friendly piece and not
// covered by an enemy pawn.
func evaluateMobility(pos *board.Position) (mgBonus, egBonus int) {
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := signFor(color)

		enemyPawns := pos.Pieces[color.Other()][board.Pawn]
		var unsafeSquares board.Bitboard
		if color == board.White {
			unsafeSquares = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		} else {
			unsafeSquares = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		}

		blockedSquares := unsafeSquares | pos.Occupied[color]

		addMobility := func(pt board.PieceType, attacks board.Bitboard) {
			count := (attacks &^ blockedSquares).PopCount()
			mgBonus += sign * mobilityMgWeight[pt] * count
			egBonus += sign * mobilityEgWeight[pt] * count
		}

		knights := pos.Pieces[color][board.Knight]
		for knights != 0 {
			sq := knights.PopLSB()
			addMobility(board.Knight, board.KnightAttacks(sq))
		}

		bishops := pos.Pieces[color][board.Bishop]
		for bishops != 0 {
			sq := bishops.PopLSB()
			addMobility(board.Bishop, board.BishopAttacks(sq, occupied))
		}

		rooks := pos.Pieces[color][board.Rook]
		for rooks != 0 {
			sq := rooks.PopLSB()
			addMobility(board.Rook, board.RookAttacks(sq, occupied))
		}

		queens := pos.Pieces[color][board.Queen]
		for queens != 0 {
			sq := queens.PopLSB()
			addMobility(board.Queen, board.QueenAttacks(sq, occupied))
		}
	}

	return mgBonus, egBonus
}
