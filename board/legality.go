package board

import (
	"math/bits"
	"strings"
)

// LegalMoves returns all legal moves for the side to move.
func (p *Position) LegalMoves() []Move {
	return p.LegalMovesInto(make([]Move, 0, 128))
}

// LegalMovesInto generates pseudo-legal moves into dst and keeps the legal
// ones using check and pin analysis. Only moves that could expose the king
// are verified by make/unmake.
func (p *Position) LegalMovesInto(dst []Move) []Move {
	moves := p.GeneratePseudoMovesInto(dst)
	us := p.sideToMove
	them := us.Other()
	ksq := p.KingSquare(us)
	if ksq == NoSquare {
		return moves[:0]
	}

	legal := moves[:0]
	checkers := p.attackersTo(ksq, them, p.all)
	if checkers != 0 {
		// Squares a non-king move must land on: capture the checker or block it.
		var target uint64
		var checkerSq Square = NoSquare
		double := checkers&(checkers-1) != 0
		if !double {
			checkerSq = Square(bits.TrailingZeros64(checkers))
			target = checkers | between(ksq, checkerSq)
		}
		for _, m := range moves {
			from := m.From()
			switch {
			case m.IsCastle():
				continue
			case from == ksq:
			case double:
				continue
			case m.Flag() == FlagEnPassant:
				if target&bb(m.To()) == 0 && epVictim(m.To(), us) != checkerSq {
					continue
				}
			case target&bb(m.To()) == 0:
				continue
			}
			if p.verify(m) {
				legal = append(legal, m)
			}
		}
		return legal
	}

	// Not in check: only king moves, en passant and pieces sitting on a king
	// ray that also holds a matching enemy slider need verification.
	var exposed uint64
	straight := p.pieces[them][PieceTypeRook] | p.pieces[them][PieceTypeQueen]
	diagonal := p.pieces[them][PieceTypeBishop] | p.pieces[them][PieceTypeQueen]
	for _, d := range rookDirs {
		if rays[ksq][d]&straight != 0 {
			exposed |= rays[ksq][d]
		}
	}
	for _, d := range bishopDirs {
		if rays[ksq][d]&diagonal != 0 {
			exposed |= rays[ksq][d]
		}
	}
	for _, m := range moves {
		switch {
		case m.IsCastle():
			if !p.castlePathSafe(m) {
				continue
			}
		case m.From() == ksq, m.Flag() == FlagEnPassant, exposed&bb(m.From()) != 0:
		default:
			legal = append(legal, m)
			continue
		}
		if p.verify(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// verify applies m and reports whether the mover's king is safe afterwards.
func (p *Position) verify(m Move) bool {
	us := p.sideToMove
	u := p.Apply(m)
	ksq := p.KingSquare(us)
	safe := ksq == NoSquare || !p.IsSquareAttacked(ksq, us.Other())
	p.Unmake(u)
	return safe
}

// castlePathSafe checks that the king is not in check and does not pass
// through an attacked square. The destination is left to verify.
func (p *Position) castlePathSafe(m Move) bool {
	them := p.sideToMove.Other()
	from := m.From()
	pass := (from + m.To()) / 2
	return !p.IsSquareAttacked(from, them) && !p.IsSquareAttacked(pass, them)
}

// ==========================
// Brute-force legality
// ==========================

// LegalMovesBruteForce filters pseudo-legal moves by playing each one and
// generating every opponent reply. It is slow and serves as the reference
// for LegalMoves.
func (p *Position) LegalMovesBruteForce() []Move {
	moves := p.GeneratePseudoMoves()
	legal := moves[:0]
	for _, m := range moves {
		if p.IsLegalBruteForce(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegalBruteForce reports whether a pseudo-legal move leaves the mover's
// king unattacked, judged by the opponent's full reply list. Castling also
// tries a quiet king step onto the square it passes through.
func (p *Position) IsLegalBruteForce(m Move) bool {
	if m.IsCastle() {
		if p.InCheck() {
			return false
		}
		pass := (m.From() + m.To()) / 2
		if p.leavesKingAttacked(NewMove(m.From(), pass, FlagQuiet)) {
			return false
		}
	}
	return !p.leavesKingAttacked(m)
}

func (p *Position) leavesKingAttacked(m Move) bool {
	us := p.sideToMove
	u := p.Apply(m)
	defer p.Unmake(u)
	return p.repliesHit(p.KingSquare(us))
}

// repliesHit reports whether any pseudo-legal reply of the side to move lands on sq.
func (p *Position) repliesHit(sq Square) bool {
	if sq == NoSquare {
		return false
	}
	for _, r := range p.GeneratePseudoMovesInto(make([]Move, 0, 64)) {
		if r.To() == sq {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move is in check. It hands the move to
// the opponent, looks for a reply landing on the king and then restores the
// side to move and en passant square.
func (p *Position) InCheck() bool {
	us := p.sideToMove
	ep := p.enPassantSquare
	defer func() {
		p.sideToMove = us
		p.enPassantSquare = ep
	}()
	p.sideToMove = us.Other()
	p.enPassantSquare = NoSquare
	return p.repliesHit(p.KingSquare(us))
}

// Checked is the attack-table equivalent of InCheck.
func (p *Position) Checked() bool {
	ksq := p.KingSquare(p.sideToMove)
	return ksq != NoSquare && p.IsSquareAttacked(ksq, p.sideToMove.Other())
}

// FindMove resolves coordinate text such as "e2e4" or "e7e8q" against the
// legal moves. ok is false for malformed text or moves that are not legal.
func (p *Position) FindMove(text string) (Move, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if _, _, _, err := ParseMove(text); err != nil {
		return NoMove, false
	}
	for _, m := range p.LegalMoves() {
		if m.String() == text {
			return m, true
		}
	}
	return NoMove, false
}
