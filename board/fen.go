package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN wraps every FEN parse failure.
var ErrInvalidFEN = errors.New("invalid FEN")

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

const pieceChars = " PNBRQK  pnbrqk"

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(pc Piece) byte { return pieceChars[pc] }

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN parses a FEN string and returns a new Position. The half-move and
// full-move fields may be omitted and default to 0 and 1. Nothing is returned
// unless every field is valid.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return nil, fenError("expected 6 fields, got %d", len(fields))
	}

	p := &Position{enPassantSquare: NoSquare, fullmoveNumber: 1}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := pieceFromChar(ch)
			if pc == NoPiece {
				return nil, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("too many squares in rank %d", rank+1)
			}
			if pc.Type() == PieceTypePawn && (rank == 0 || rank == 7) {
				return nil, fenError("pawn on back rank %d", rank+1)
			}
			p.addPiece(SquareOf(file, rank), pc)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d describes %d squares", rank+1, file)
		}
	}
	for _, c := range []Color{White, Black} {
		if n := countBits(p.pieces[c][PieceTypeKing]); n != 1 {
			return nil, fenError("side %s has %d kings", c, n)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fenError("side to move %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var r CastlingRights
			switch ch {
			case 'K':
				r = CastlingWhiteK
			case 'Q':
				r = CastlingWhiteQ
			case 'k':
				r = CastlingBlackK
			case 'q':
				r = CastlingBlackQ
			default:
				return nil, fenError("castling character %q", ch)
			}
			if p.castlingRights&r != 0 {
				return nil, fenError("repeated castling character %q", ch)
			}
			p.castlingRights |= r
		}
	}

	// 4. En passant target
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("en passant square: %v", err)
		}
		if (p.sideToMove == White && sq.Rank() != 5) || (p.sideToMove == Black && sq.Rank() != 2) {
			return nil, fenError("en passant square %s on wrong rank", sq)
		}
		p.enPassantSquare = sq
	}

	// 5./6. Clocks
	if len(fields) == 6 {
		half, err := strconv.Atoi(fields[4])
		if err != nil || half < 0 {
			return nil, fenError("half-move clock %q", fields[4])
		}
		full, err := strconv.Atoi(fields[5])
		if err != nil || full < 1 {
			return nil, fenError("full-move number %q", fields[5])
		}
		p.halfmoveClock = half
		p.fullmoveNumber = full
	}
	return p, nil
}

// ToFEN serializes the position. Empty runs are always written as a single
// digit, so the output is canonical.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.mailbox[SquareOf(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())

	sb.WriteByte(' ')
	if p.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for i, ch := range "KQkq" {
			if p.castlingRights&(1<<uint(i)) != 0 {
				sb.WriteRune(ch)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.enPassantSquare.String())

	fmt.Fprintf(&sb, " %d %d", p.halfmoveClock, p.fullmoveNumber)
	return sb.String()
}

// String renders the board as eight text ranks followed by the FEN.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			pc := p.mailbox[SquareOf(file, rank)]
			if pc == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(charFromPiece(pc))
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(p.ToFEN())
	return sb.String()
}
