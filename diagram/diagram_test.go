package diagram

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tutor-engine/board"
)

func TestRenderStartPosition(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, board.StartPosition()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "<svg") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("%d squares drawn, want 64", n)
	}
	if n := strings.Count(out, "♙") + strings.Count(out, "♟"); n != 16 {
		t.Fatalf("%d pawns drawn, want 16", n)
	}
	if !strings.Contains(out, ">a<") || !strings.Contains(out, ">8<") {
		t.Fatalf("coordinates missing")
	}
}

func TestRenderMarksLastMove(t *testing.T) {
	p := board.StartPosition()
	if _, err := p.Play("e2e4"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, p, MarkMove("#cdd26a", p.LastMove()), Coordinates(false)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(buf.String(), "fill:#cdd26a"); n != 2 {
		t.Fatalf("%d marked squares, want 2", n)
	}
	if strings.Contains(buf.String(), ">a<") {
		t.Fatalf("coordinates drawn although disabled")
	}
}

func TestPerspective(t *testing.T) {
	white := &options{perspective: board.White}
	black := &options{perspective: board.Black}
	if white.squareAt(0, 0) != board.A8 || white.squareAt(7, 7) != board.H1 {
		t.Fatalf("white perspective corners wrong")
	}
	if black.squareAt(0, 0) != board.H1 || black.squareAt(7, 7) != board.A8 {
		t.Fatalf("black perspective corners wrong")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderReportsWriteErrors(t *testing.T) {
	if err := Render(failingWriter{}, board.StartPosition(), SquareSize(20)); err == nil {
		t.Fatalf("expected write error")
	}
}
