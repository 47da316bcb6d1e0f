package board

import "encoding/binary"

// KeySize is the byte length of a position key: twelve masks, side to move,
// castling rights and en passant square.
const KeySize = 12*8 + 3

// Key is a canonical byte encoding of a position for transposition lookups.
// Clocks are left out so that transpositions with different move counts share
// a key.
type Key [KeySize]byte

// Key builds the canonical key of the current position.
func (p *Position) Key() Key {
	var k Key
	i := 0
	for c := White; c <= Black; c++ {
		for pt := PieceTypePawn; pt <= PieceTypeKing; pt++ {
			binary.LittleEndian.PutUint64(k[i:], p.pieces[c][pt])
			i += 8
		}
	}
	k[i] = byte(p.sideToMove)
	k[i+1] = byte(p.castlingRights)
	k[i+2] = byte(p.enPassantSquare + 1) // NoSquare encodes as 0
	return k
}

// Age is the ply counter used to timestamp transposition entries:
// 2*fullmove plus one when Black is to move.
func (p *Position) Age() int {
	return 2*p.fullmoveNumber + int(p.sideToMove)
}
