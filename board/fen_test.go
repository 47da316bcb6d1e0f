package board_test

import (
	"errors"
	"testing"

	"tutor-engine/board"
)

var roundTripFENs = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 99 80",
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range roundTripFENs {
		p, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := p.ToFEN(); got != fen {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, fen)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate(%q): %v", fen, err)
		}
	}
}

func TestFENRoundTripAfterMoves(t *testing.T) {
	p := board.StartPosition()
	for _, mv := range []string{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4"} {
		if _, err := p.Play(mv); err != nil {
			t.Fatalf("Play(%s): %v", mv, err)
		}
		q, err := board.ParseFEN(p.ToFEN())
		if err != nil {
			t.Fatalf("reparse after %s: %v", mv, err)
		}
		if !q.Equal(p) {
			t.Fatalf("reparsed position differs after %s: %s", mv, p.ToFEN())
		}
	}
}

func TestFENDefaultsClocks(t *testing.T) {
	p, err := board.ParseFEN("8/8/8/8/8/8/8/K6k w - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p.HalfmoveClock() != 0 || p.FullmoveNumber() != 1 {
		t.Fatalf("clocks = %d %d, want 0 1", p.HalfmoveClock(), p.FullmoveNumber())
	}
	if got := p.ToFEN(); got != "8/8/8/8/8/8/8/K6k w - - 0 1" {
		t.Fatalf("ToFEN = %q", got)
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNRR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkqK - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1",
		"Pnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
	}
	for _, fen := range bad {
		p, err := board.ParseFEN(fen)
		if err == nil {
			t.Fatalf("ParseFEN(%q) succeeded, want error", fen)
		}
		if !errors.Is(err, board.ErrInvalidFEN) {
			t.Fatalf("ParseFEN(%q) error %v does not wrap ErrInvalidFEN", fen, err)
		}
		if p != nil {
			t.Fatalf("ParseFEN(%q) returned a partial position", fen)
		}
	}
}
