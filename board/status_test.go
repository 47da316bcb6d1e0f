package board_test

import (
	"errors"
	"testing"

	"tutor-engine/board"
)

func TestCheckmate_FoolsMate(t *testing.T) {
	// Fool's mate: Black just played Qh4#, White to move and is checkmated
	p := mustParse(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !p.InCheck() {
		t.Fatalf("expected White to be in check")
	}
	if n := len(p.LegalMoves()); n != 0 {
		t.Fatalf("expected no legal moves, got %d", n)
	}
	if !p.IsCheckmate() || p.IsStalemate() {
		t.Fatalf("expected checkmate, not stalemate")
	}
	if !p.IsGameOver() {
		t.Fatalf("expected game over")
	}
	if got := p.Result(); got != board.BlackWin {
		t.Fatalf("result = %v, want BlackWin", got)
	}
	if got := p.Result().String(); got != "0-1" {
		t.Fatalf("result text = %q", got)
	}
}

func TestFoolsMateFromStart(t *testing.T) {
	p := board.StartPosition()
	mustPlay(t, p, "f2f3", "e7e5", "g2g4", "d8h4")
	if p.Result() != board.BlackWin {
		t.Fatalf("result = %v, want BlackWin", p.Result())
	}
}

func TestStalemate_Basic(t *testing.T) {
	// Classic stalemate: Black to move with no legal moves and not in check
	p := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if p.InCheck() {
		t.Fatalf("expected Black not in check")
	}
	if !p.IsStalemate() {
		t.Fatalf("expected stalemate for Black")
	}
	if p.Result() != board.Draw {
		t.Fatalf("result = %v, want Draw", p.Result())
	}
}

func TestFiftyMoveRule(t *testing.T) {
	p := board.StartPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 100; i++ {
		if p.IsGameOver() {
			t.Fatalf("game over after %d half-moves", i)
		}
		mustPlay(t, p, shuffle[i%4])
	}
	if p.HalfmoveClock() != 100 {
		t.Fatalf("halfmove clock = %d, want 100", p.HalfmoveClock())
	}
	if !p.IsGameOver() || p.Result() != board.Draw {
		t.Fatalf("expected draw by fifty-move rule, got %v", p.Result())
	}
}

func TestInsufficientMaterial(t *testing.T) {
	data := []struct {
		name string
		fen  string
		draw bool
	}{
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"lone knight", "8/8/8/4k3/8/8/8/3NK3 w - - 0 1", true},
		{"bishop each", "8/8/8/2b1k3/8/8/8/3BK3 w - - 0 1", true},
		// Two knights cannot force mate but are not a dead position; the
		// rule here still calls it a draw.
		{"two knights (known deviation)", "8/8/8/4k3/8/8/8/2NNK3 w - - 0 1", true},
		{"bishop pair", "8/8/8/4k3/8/8/8/2BBK3 w - - 0 1", false},
		{"bishop and knight", "8/8/8/4k3/8/8/8/2BNK3 w - - 0 1", false},
		{"pawn", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"rook", "8/8/8/4k3/8/8/8/R3K3 w - - 0 1", false},
	}
	for _, d := range data {
		p := mustParse(t, d.fen)
		if got := p.InsufficientMaterial(); got != d.draw {
			t.Fatalf("%s: InsufficientMaterial = %v, want %v", d.name, got, d.draw)
		}
		if d.draw && p.Result() != board.Draw {
			t.Fatalf("%s: result = %v, want Draw", d.name, p.Result())
		}
	}
}

func TestPlayRejectsIllegal(t *testing.T) {
	p := board.StartPosition()
	before := p.Clone()
	if _, err := p.Play("e2e5"); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("Play(e2e5) err = %v, want ErrIllegalMove", err)
	}
	if !p.Equal(before) {
		t.Fatalf("failed Play mutated the position")
	}
}
