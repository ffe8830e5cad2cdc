package board

// polyglotSeed fixes the PRNG start state for the Polyglot-style key
// tables below. The keys are generated here rather than taken from the
// published Polyglot table, so the resulting hashes are stable from run
// to run but do not match the keys in standard opening-book files.
const polyglotSeed = 0x37b4a4b3f0d1c0d0

// The twelve piece kinds are ordered bp,bN,bB,bR,bQ,bK,wp,wN,wB,wR,wQ,wK,
// the reverse of our own Color/PieceType numbering.
var polyglotPieceKind = [2][6]int{
	{6, 7, 8, 9, 10, 11}, // White: p,N,B,R,Q,K
	{0, 1, 2, 3, 4, 5},   // Black: p,N,B,R,Q,K
}

// polyglotCastlingMasks pairs each of the four castling rights with its
// slot in polyglotCastling, in the order the spec assigns them.
var polyglotCastlingMasks = [4]CastlingRights{
	WhiteKingSideCastle, WhiteQueenSideCastle, BlackKingSideCastle, BlackQueenSideCastle,
}

var (
	polyglotPieces     [12][64]uint64
	polyglotCastling   [4]uint64
	polyglotEnPassant  [8]uint64
	polyglotSideToMove uint64
)

func init() {
	rng := splitMix64{state: polyglotSeed}

	for piece := range polyglotPieces {
		for sq := range polyglotPieces[piece] {
			polyglotPieces[piece][sq] = rng.next()
		}
	}
	for i := range polyglotCastling {
		polyglotCastling[i] = rng.next()
	}
	for i := range polyglotEnPassant {
		polyglotEnPassant[i] = rng.next()
	}
	polyglotSideToMove = rng.next()
}

// polyglotEPCapturable reports whether p's en-passant square is one an
// enemy pawn could actually capture onto, which is the condition the
// Polyglot format attaches its en-passant key to (not just "ep square
// is set").
func (p *Position) polyglotEPCapturable() bool {
	if p.EnPassant == NoSquare {
		return false
	}

	file := p.EnPassant.File()
	capturingPawns := p.Pieces[p.SideToMove][Pawn]
	rank := 4
	if p.SideToMove == Black {
		rank = 3
	}

	if file > 0 && capturingPawns.IsSet(NewSquare(file-1, rank)) {
		return true
	}
	return file < 7 && capturingPawns.IsSet(NewSquare(file+1, rank))
}

// PolyglotHash computes a hash laid out like the Polyglot key scheme
// (piece, castling, capturable en-passant and side-to-move terms), kept
// separate from the Zobrist key used internally for transposition
// lookups. Its keys come from polyglotSeed, not the published Polyglot
// table, so it does not reproduce standard opening-book keys.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64

	for color := White; color <= Black; color++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[color][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= polyglotPieces[polyglotPieceKind[color][pt]][sq]
			}
		}
	}

	for i, mask := range polyglotCastlingMasks {
		if p.CastlingRights&mask != 0 {
			hash ^= polyglotCastling[i]
		}
	}

	if p.polyglotEPCapturable() {
		hash ^= polyglotEnPassant[p.EnPassant.File()]
	}

	if p.SideToMove == White {
		hash ^= polyglotSideToMove
	}

	return hash
}
