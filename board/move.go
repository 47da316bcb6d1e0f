package board

import (
	"errors"
	"fmt"
	"strings"
)

// Move encodes a chess move in 16 bits: origin, destination and a flag code.
type Move uint16

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift = 0  // 6 bits
	moveToShift   = 6  // 6 bits
	moveFlagShift = 12 // 4 bits
)

// MoveFlag identifies the kind of move.
type MoveFlag uint8

const (
	FlagQuiet       MoveFlag = 0
	FlagDoublePush  MoveFlag = 1
	FlagKingCastle  MoveFlag = 2
	FlagQueenCastle MoveFlag = 3
	FlagCapture     MoveFlag = 4
	FlagEnPassant   MoveFlag = 5

	// Promotions: 8 + (0 knight, 1 bishop, 2 rook, 3 queen); bit 2 marks a capture.
	FlagPromoKnight        MoveFlag = 8
	FlagPromoBishop        MoveFlag = 9
	FlagPromoRook          MoveFlag = 10
	FlagPromoQueen         MoveFlag = 11
	FlagPromoCaptureKnight MoveFlag = 12
	FlagPromoCaptureBishop MoveFlag = 13
	FlagPromoCaptureRook   MoveFlag = 14
	FlagPromoCaptureQueen  MoveFlag = 15
)

// NoMove is the zero move; it is never generated.
const NoMove Move = 0

// ErrInvalidMoveText is returned for text that is not coordinate notation.
var ErrInvalidMoveText = errors.New("invalid move text")

// NewMove constructs a Move value from components.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(uint16(from&0x3F)<<moveFromShift |
		uint16(to&0x3F)<<moveToShift |
		uint16(flag&0xF)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((m >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// Flag returns the move's flag code.
func (m Move) Flag() MoveFlag { return MoveFlag(m >> moveFlagShift) }

// IsCapture reports captures, en passant and capturing promotions.
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || f >= FlagPromoCaptureKnight
}

func (m Move) IsPromotion() bool { return m.Flag() >= FlagPromoKnight }

func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagKingCastle || f == FlagQueenCastle
}

// PromotionType returns the promoted piece type, or PieceTypeNone.
func (m Move) PromotionType() PieceType {
	if !m.IsPromotion() {
		return PieceTypeNone
	}
	return PieceTypeKnight + PieceType(m.Flag()&3)
}

// promotionFlag returns the flag for promoting to pt, capturing or not.
func promotionFlag(pt PieceType, capture bool) MoveFlag {
	f := FlagPromoKnight + MoveFlag(pt-PieceTypeKnight)
	if capture {
		f |= 4
	}
	return f
}

var promoLetters = [7]byte{PieceTypeKnight: 'n', PieceTypeBishop: 'b', PieceTypeRook: 'r', PieceTypeQueen: 'q'}

// String produces coordinate notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	str := m.From().String() + m.To().String()
	if pt := m.PromotionType(); pt != PieceTypeNone {
		str += string(promoLetters[pt])
	}
	return str
}

// ParseMove splits coordinate notation into its origin, destination and
// optional promotion piece. The flag cannot be known without a position; use
// Position.FindMove to resolve text into a legal Move.
func ParseMove(movestr string) (from, to Square, promo PieceType, err error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) != 4 && len(movestr) != 5 {
		return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %q", ErrInvalidMoveText, movestr)
	}
	if from, err = ParseSquare(movestr[0:2]); err != nil {
		return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %v", ErrInvalidMoveText, err)
	}
	if to, err = ParseSquare(movestr[2:4]); err != nil {
		return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %v", ErrInvalidMoveText, err)
	}
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'n':
			promo = PieceTypeKnight
		case 'b':
			promo = PieceTypeBishop
		case 'r':
			promo = PieceTypeRook
		case 'q':
			promo = PieceTypeQueen
		default:
			return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: bad promotion piece in %q", ErrInvalidMoveText, movestr)
		}
	}
	return from, to, promo, nil
}
