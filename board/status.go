package board

import (
	"errors"
	"fmt"
)

// Result is the outcome of a game as seen from the current position.
type Result int

const (
	InProgress Result = iota
	WhiteWin
	BlackWin
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWin:
		return "1-0"
	case BlackWin:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// ErrIllegalMove is returned by Play for text that does not name a legal move.
var ErrIllegalMove = errors.New("illegal move")

// IsDrawBy50 reports a 50-move rule draw (halfmoveClock counts half-moves).
func (p *Position) IsDrawBy50() bool { return p.halfmoveClock >= 100 }

// InsufficientMaterial reports a draw by lack of mating material: no pawns,
// rooks or queens, and neither side holds two bishops or a bishop and a
// knight. Any other minor-piece combination, including two knights, counts
// as a draw here.
func (p *Position) InsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.pieces[c][PieceTypePawn]|p.pieces[c][PieceTypeRook]|p.pieces[c][PieceTypeQueen] != 0 {
			return false
		}
	}
	for c := White; c <= Black; c++ {
		bishops := countBits(p.pieces[c][PieceTypeBishop])
		knights := countBits(p.pieces[c][PieceTypeKnight])
		if bishops >= 2 || (bishops >= 1 && knights >= 1) {
			return false
		}
	}
	return true
}

// ResultWith computes the result given the legal moves of the side to move,
// so callers that already generated them avoid a second pass.
func (p *Position) ResultWith(legal []Move) Result {
	if len(legal) == 0 {
		if p.Checked() {
			if p.sideToMove == White {
				return BlackWin
			}
			return WhiteWin
		}
		return Draw
	}
	if p.IsDrawBy50() || p.InsufficientMaterial() {
		return Draw
	}
	return InProgress
}

// Result reports the game outcome for the current position.
func (p *Position) Result() Result { return p.ResultWith(p.LegalMoves()) }

// IsGameOver reports checkmate, stalemate, the 50-move rule or insufficient material.
func (p *Position) IsGameOver() bool { return p.Result() != InProgress }

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool { return p.Checked() && len(p.LegalMoves()) == 0 }

// IsStalemate reports whether the side to move has no legal move and is not in check.
func (p *Position) IsStalemate() bool { return !p.Checked() && len(p.LegalMoves()) == 0 }

// Play resolves move text against the legal moves and applies it.
func (p *Position) Play(text string) (Undo, error) {
	m, ok := p.FindMove(text)
	if !ok {
		return Undo{}, fmt.Errorf("%w: %q in %s", ErrIllegalMove, text, p.ToFEN())
	}
	return p.Apply(m), nil
}
