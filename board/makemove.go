package board

import "fmt"

// delta is one undo record: everything Apply overwrote for a single move.
type delta struct {
	move      Move
	moved     Piece
	captured  Piece
	castling  CastlingRights
	enPassant Square
	halfmove  int
}

// Undo is the handle returned by Apply. Unmake only accepts the handle of the
// most recently applied move.
type Undo struct {
	depth int
	move  Move
}

// Move returns the move this handle undoes.
func (u Undo) Move() Move { return u.move }

// castleRevoke[sq] lists the rights lost when a piece leaves or lands on sq.
var castleRevoke [64]CastlingRights

func init() {
	castleRevoke[E1] = CastlingWhiteK | CastlingWhiteQ
	castleRevoke[H1] = CastlingWhiteK
	castleRevoke[A1] = CastlingWhiteQ
	castleRevoke[E8] = CastlingBlackK | CastlingBlackQ
	castleRevoke[H8] = CastlingBlackK
	castleRevoke[A8] = CastlingBlackQ
}

// epVictim returns the square of the pawn removed by an en passant capture
// landing on 'to' when 'us' is the capturing side.
func epVictim(to Square, us Color) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// Apply plays a pseudo-legal move and returns the handle needed to take it back.
func (p *Position) Apply(m Move) Undo {
	from, to, flag := m.From(), m.To(), m.Flag()
	us := p.sideToMove
	moved := p.mailbox[from]
	if moved == NoPiece {
		panic(fmt.Sprintf("board: apply %s: no piece on %s", m, from))
	}

	d := delta{
		move:      m,
		moved:     moved,
		castling:  p.castlingRights,
		enPassant: p.enPassantSquare,
		halfmove:  p.halfmoveClock,
	}

	if flag == FlagEnPassant {
		d.captured = p.removePiece(epVictim(to, us))
	} else {
		d.captured = p.removePiece(to)
	}

	p.removePiece(from)
	if pt := m.PromotionType(); pt != PieceTypeNone {
		p.addPiece(to, PieceFromType(us, pt))
	} else {
		p.addPiece(to, moved)
	}

	p.enPassantSquare = NoSquare
	switch flag {
	case FlagDoublePush:
		p.enPassantSquare = (from + to) / 2
	case FlagKingCastle:
		p.movePiece(to+1, to-1)
	case FlagQueenCastle:
		p.movePiece(to-2, to+1)
	}

	p.halfmoveClock++
	if moved.Type() == PieceTypePawn || d.captured != NoPiece {
		p.halfmoveClock = 0
	}
	p.castlingRights &^= castleRevoke[from] | castleRevoke[to]
	if us == Black {
		p.fullmoveNumber++
	}
	p.sideToMove = us.Other()

	p.history = append(p.history, d)
	if debugAssertions {
		p.assertValid("apply " + m.String())
	}
	return Undo{depth: len(p.history), move: m}
}

// Unmake reverses the move identified by u. Handles must be passed back in
// strict LIFO order; anything else panics.
func (p *Position) Unmake(u Undo) {
	n := len(p.history)
	if n == 0 || u.depth != n || p.history[n-1].move != u.move {
		panic(fmt.Sprintf("board: unmake %s out of order (depth %d, stack %d)", u.move, u.depth, n))
	}
	d := p.history[n-1]
	p.history = p.history[:n-1]

	m := d.move
	from, to, flag := m.From(), m.To(), m.Flag()
	p.sideToMove = p.sideToMove.Other()
	us := p.sideToMove
	if us == Black {
		p.fullmoveNumber--
	}

	switch flag {
	case FlagKingCastle:
		p.movePiece(to-1, to+1)
	case FlagQueenCastle:
		p.movePiece(to+1, to-2)
	}

	p.removePiece(to)
	p.addPiece(from, d.moved)
	if d.captured != NoPiece {
		if flag == FlagEnPassant {
			p.addPiece(epVictim(to, us), d.captured)
		} else {
			p.addPiece(to, d.captured)
		}
	}

	p.castlingRights = d.castling
	p.enPassantSquare = d.enPassant
	p.halfmoveClock = d.halfmove

	if debugAssertions {
		p.assertValid("unmake " + m.String())
	}
}

// LastMove returns the most recently applied move, or NoMove.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].move
}

// CapturedBy returns the piece captured by the most recent move, or NoPiece.
func (p *Position) CapturedBy() Piece {
	if len(p.history) == 0 {
		return NoPiece
	}
	return p.history[len(p.history)-1].captured
}

func (p *Position) assertValid(op string) {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("board: %s: %v", op, err))
	}
}
