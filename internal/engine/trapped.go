package engine

import "github.com/jwkunz/plum-chess/internal/board"

const (
	badBishopPenaltyMg = -5
	badBishopPenaltyEg = -10

	trappedBishopPenaltyMg = -80
	trappedBishopPenaltyEg = -50

	trappedRookPenaltyMg = -50
	trappedRookPenaltyEg = -25

	knightRimPenaltyMg    = -15
	knightRimPenaltyEg    = -10
	knightCornerPenaltyMg = -30
	knightCornerPenaltyEg = -20
)

var (
	lightSquares board.Bitboard
	darkSquares  board.Bitboard
)

var (
	rimSquares    = board.FileA | board.FileH | board.Rank1 | board.Rank8
	cornerSquares = board.SquareBB(board.A1) | board.SquareBB(board.H1) |
		board.SquareBB(board.A8) | board.SquareBB(board.H8)
)

func init() {
	for sq := board.A1; sq <= board.H8; sq++ {
		if (sq.File()+sq.Rank())%2 == 1 {
			lightSquares |= board.SquareBB(sq)
		} else {
			darkSquares |= board.SquareBB(sq)
		}
	}
}

// trappedBishopCorners pairs a corner square a bishop of the given
// color can get stuck on with the two enemy pawn squares that seal it
// in. Grouping this as data rather than four near-identical if-blocks
// is what lets white and black share one loop below.
type trappedBishopCorner struct {
	square       board.Square
	sealingPawns [2]board.Square
}

var whiteTrappedBishopCorners = []trappedBishopCorner{
	{board.A6, [2]board.Square{board.B7, board.B5}},
	{board.H6, [2]board.Square{board.G7, board.G5}},
}

var blackTrappedBishopCorners = []trappedBishopCorner{
	{board.A3, [2]board.Square{board.B2, board.B4}},
	{board.H3, [2]board.Square{board.G2, board.G4}},
}

// evaluateTrappedPieces penalizes bad bishops (blocked by their own
// pawns), bishops and rooks stuck in a corner, and knights with little
// mobility stranded on the rim or in a corner.
func evaluateTrappedPieces(pos *board.Position) (mgPenalty, egPenalty int) {
	for color := board.White; color <= board.Black; color++ {
		sign := signFor(color)

		enemy := color.Other()
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[enemy][board.Pawn]

		corners := whiteTrappedBishopCorners
		if color == board.Black {
			corners = blackTrappedBishopCorners
		}

		bishops := pos.Pieces[color][board.Bishop]
		for temp := bishops; temp != 0; {
			sq := temp.PopLSB()

			bishopColorSquares := darkSquares
			if lightSquares.IsSet(sq) {
				bishopColorSquares = lightSquares
			}

			if blockingPawns := (ownPawns & bishopColorSquares).PopCount(); blockingPawns >= 3 {
				mgPenalty += sign * badBishopPenaltyMg * blockingPawns
				egPenalty += sign * badBishopPenaltyEg * blockingPawns
			}

			for _, corner := range corners {
				if sq == corner.square &&
					enemyPawns.IsSet(corner.sealingPawns[0]) && enemyPawns.IsSet(corner.sealingPawns[1]) {
					mgPenalty += sign * trappedBishopPenaltyMg
					egPenalty += sign * trappedBishopPenaltyEg
				}
			}
		}

		kingSquare := pos.KingSquare[color]
		rooks := pos.Pieces[color][board.Rook]

		if color == board.White {
			if kingSquare == board.F1 || kingSquare == board.G1 {
				if rooks&(board.SquareBB(board.G1)|board.SquareBB(board.H1)) != 0 &&
					pos.CastlingRights&board.WhiteKingSideCastle == 0 {
					mgPenalty += sign * trappedRookPenaltyMg
					egPenalty += sign * trappedRookPenaltyEg
				}
			}
			if kingSquare == board.B1 || kingSquare == board.C1 || kingSquare == board.D1 {
				if rooks&(board.SquareBB(board.A1)|board.SquareBB(board.B1)) != 0 &&
					pos.CastlingRights&board.WhiteQueenSideCastle == 0 {
					mgPenalty += sign * trappedRookPenaltyMg
					egPenalty += sign * trappedRookPenaltyEg
				}
			}
		} else {
			if kingSquare == board.F8 || kingSquare == board.G8 {
				if rooks&(board.SquareBB(board.G8)|board.SquareBB(board.H8)) != 0 &&
					pos.CastlingRights&board.BlackKingSideCastle == 0 {
					mgPenalty += sign * trappedRookPenaltyMg
					egPenalty += sign * trappedRookPenaltyEg
				}
			}
			if kingSquare == board.B8 || kingSquare == board.C8 || kingSquare == board.D8 {
				if rooks&(board.SquareBB(board.A8)|board.SquareBB(board.B8)) != 0 &&
					pos.CastlingRights&board.BlackQueenSideCastle == 0 {
					mgPenalty += sign * trappedRookPenaltyMg
					egPenalty += sign * trappedRookPenaltyEg
				}
			}
		}

		knights := pos.Pieces[color][board.Knight]
		rimKnights := knights & rimSquares
		for temp := rimKnights; temp != 0; {
			sq := temp.PopLSB()

			if cornerSquares.IsSet(sq) {
				mgPenalty += sign * knightCornerPenaltyMg
				egPenalty += sign * knightCornerPenaltyEg
				continue
			}

			mobility := (board.KnightAttacks(sq) &^ pos.Occupied[color]).PopCount()
			if mobility <= 3 {
				mgPenalty += sign * knightRimPenaltyMg
				egPenalty += sign * knightRimPenaltyEg
			}
		}
	}

	return mgPenalty, egPenalty
}
