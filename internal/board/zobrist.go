package board

// zobristSeed fixes the PRNG start state so two runs of the engine hash
// the same position to the same key, which matters for reproducing
// persisted analysis and for deterministic search.
const zobristSeed = 0x98F107A2BEEF1234

var (
	zobristPiece      [2][7][64]uint64 // [Color][PieceType][Square], 7 wide to index NoPieceType safely
	zobristEnPassant  [8]uint64        // one per file
	zobristCastling   [16]uint64       // one per castling-rights combination
	zobristSideToMove uint64
)

func init() {
	rng := splitMix64{state: zobristSeed}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// splitMix64 is a xorshift64*-style generator used only to stamp out the
// Zobrist key tables at package init; not meant for general-purpose use.
type splitMix64 struct {
	state uint64
}

func (g *splitMix64) next() uint64 {
	g.state ^= g.state >> 12
	g.state ^= g.state << 25
	g.state ^= g.state >> 27
	return g.state * 0x2545F4914F6CDD1D
}

// ZobristPiece returns the key contribution of a piece sitting on sq.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristEnPassant returns the key contribution of an en-passant target
// on the given file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ZobristCastling returns the key contribution of a castling-rights mask.
func ZobristCastling(cr CastlingRights) uint64 {
	return zobristCastling[cr]
}

// ZobristSideToMove returns the key contribution of it being Black to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}
