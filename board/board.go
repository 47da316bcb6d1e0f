package board

import (
	"fmt"
	"math/bits"
)

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "b"
	}
	return "w"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// SquareOf builds a square from zero-based file and rank.
func SquareOf(file, rank int) Square { return Square(rank*8 + file) }

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts "e4" style coordinates into a Square.
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 || str[0] < 'a' || str[0] > 'h' || str[1] < '1' || str[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", str)
	}
	return SquareOf(int(str[0]-'a'), int(str[1]-'1')), nil
}

// Position holds the full game state: twelve piece masks, their unions, a
// square index, side to move, castling rights, en passant target and clocks.
type Position struct {
	// pieces[color][type]; index 0 of the type axis is unused
	pieces [2][7]uint64

	occupancy [2]uint64
	all       uint64

	// Piece placement per square, maintained alongside the masks
	mailbox [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square

	// Half-moves since the last capture or pawn move
	halfmoveClock int
	// Starts at 1, incremented after Black's move
	fullmoveNumber int

	// One delta per applied move, popped by Unmake
	history []delta
}

// NewPosition parses a FEN string. It is the constructor used by protocol layers.
func NewPosition(fen string) (*Position, error) { return ParseFEN(fen) }

// StartPosition returns the standard initial position.
func StartPosition() *Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy, including the undo history.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]delta(nil), p.history...)
	return &c
}

// Equal compares every state field (masks, index, rights, en passant, clocks).
// The undo history is not compared.
func (p *Position) Equal(o *Position) bool {
	return p.pieces == o.pieces &&
		p.occupancy == o.occupancy &&
		p.all == o.all &&
		p.mailbox == o.mailbox &&
		p.sideToMove == o.sideToMove &&
		p.castlingRights == o.castlingRights &&
		p.enPassantSquare == o.enPassantSquare &&
		p.halfmoveClock == o.halfmoveClock &&
		p.fullmoveNumber == o.fullmoveNumber
}

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the castling rights still held.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// Ply returns the number of moves applied since the position was constructed.
func (p *Position) Ply() int { return len(p.history) }

// PieceMask returns the mask for one of the twelve piece planes.
func (p *Position) PieceMask(c Color, pt PieceType) uint64 { return p.pieces[c][pt] }

// AllOccupancy returns a bitboard of all occupied squares.
func (p *Position) AllOccupancy() uint64 { return p.all }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (p *Position) ColorOccupancy(c Color) uint64 { return p.occupancy[c] }

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) Piece { return p.mailbox[sq] }

// KingSquare returns the square of c's king, or NoSquare if it is absent.
func (p *Position) KingSquare(c Color) Square {
	k := p.pieces[c][PieceTypeKing]
	if k == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(k))
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

func countBits(x uint64) int { return bits.OnesCount64(x) }

// addPiece places a piece on an empty square and updates the masks and unions.
func (p *Position) addPiece(sq Square, pc Piece) {
	if pc == NoPiece {
		return
	}
	c := pc.Color()
	p.mailbox[sq] = pc
	p.pieces[c][pc.Type()] |= bb(sq)
	p.occupancy[c] |= bb(sq)
	p.all |= bb(sq)
}

// removePiece clears a square and returns whatever stood there.
func (p *Position) removePiece(sq Square) Piece {
	pc := p.mailbox[sq]
	if pc == NoPiece {
		return NoPiece
	}
	c := pc.Color()
	mask := ^bb(sq)
	p.mailbox[sq] = NoPiece
	p.pieces[c][pc.Type()] &= mask
	p.occupancy[c] &= mask
	p.all &= mask
	return pc
}

// movePiece relocates a piece between two squares; the destination must be empty.
func (p *Position) movePiece(from, to Square) {
	p.addPiece(to, p.removePiece(from))
}

// Validate checks internal consistency between the square index, the piece
// masks and the derived unions.
func (p *Position) Validate() error {
	var pieces [2][7]uint64
	var occ [2]uint64
	for sq := Square(0); sq < 64; sq++ {
		pc := p.mailbox[sq]
		if pc == NoPiece {
			continue
		}
		if pc.Type() == PieceTypeNone || pc.Type() > PieceTypeKing {
			return fmt.Errorf("corrupt piece code %d on %s", pc, sq)
		}
		pieces[pc.Color()][pc.Type()] |= bb(sq)
		occ[pc.Color()] |= bb(sq)
	}
	if pieces != p.pieces {
		return fmt.Errorf("piece masks disagree with square index")
	}
	if occ != p.occupancy {
		return fmt.Errorf("color occupancy drifted from piece masks")
	}
	if occ[White]|occ[Black] != p.all || occ[White]&occ[Black] != 0 {
		return fmt.Errorf("total occupancy drifted from piece masks")
	}
	return nil
}
