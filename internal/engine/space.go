package engine

import "github.com/jwkunz/plum-chess/internal/board"

const (
	spaceSquareBonus     = 2
	spaceBehindPawnBonus = 3
	spaceMinPieces       = 3
)

// Central files across the ranks a side's pieces can realistically
// occupy during the middlegame.
var (
	whiteSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
		(board.Rank2 | board.Rank3 | board.Rank4 | board.Rank5)
	blackSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
		(board.Rank4 | board.Rank5 | board.Rank6 | board.Rank7)
)

// evaluateSpace rewards controlling central squares not reachable by an
// enemy pawn, with an extra bonus for squares tucked behind the own
// pawn chain. Skipped once both sides have shed most of their pieces,
// since space stops mattering in the endgame.
func evaluateSpace(pos *board.Position) int {
	var score int

	whitePieceCount := pos.Pieces[board.White][board.Knight].PopCount() +
		pos.Pieces[board.White][board.Bishop].PopCount() +
		pos.Pieces[board.White][board.Rook].PopCount() +
		pos.Pieces[board.White][board.Queen].PopCount()
	blackPieceCount := pos.Pieces[board.Black][board.Knight].PopCount() +
		pos.Pieces[board.Black][board.Bishop].PopCount() +
		pos.Pieces[board.Black][board.Rook].PopCount() +
		pos.Pieces[board.Black][board.Queen].PopCount()

	if whitePieceCount < spaceMinPieces && blackPieceCount < spaceMinPieces {
		return 0
	}

	for color := board.White; color <= board.Black; color++ {
		sign := signFor(color)

		pieceCount := whitePieceCount
		if color == board.Black {
			pieceCount = blackPieceCount
		}
		if pieceCount < spaceMinPieces {
			continue
		}

		enemy := color.Other()
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[enemy][board.Pawn]

		var spaceZone board.Bitboard
		if color == board.White {
			spaceZone = whiteSpaceZone
		} else {
			spaceZone = blackSpaceZone
		}

		var pawnControl board.Bitboard
		if color == board.White {
			pawnControl = ownPawns.NorthEast() | ownPawns.NorthWest()
		} else {
			pawnControl = ownPawns.SouthEast() | ownPawns.SouthWest()
		}

		var enemyPawnAttacks board.Bitboard
		if color == board.White {
			enemyPawnAttacks = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		} else {
			enemyPawnAttacks = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		}

		safeSpace := spaceZone &^ enemyPawnAttacks

		var behindPawns board.Bitboard
		if color == board.White {
			behindPawns = ownPawns.SouthFill()
		} else {
			behindPawns = ownPawns.NorthFill()
		}

		controlledSpace := (pawnControl | behindPawns) & safeSpace
		spaceCount := controlledSpace.PopCount()

		behindChainSpace := controlledSpace & behindPawns
		behindCount := behindChainSpace.PopCount()

		bonus := spaceCount*spaceSquareBonus + behindCount*spaceBehindPawnBonus
		score += sign * bonus
	}

	return score
}
