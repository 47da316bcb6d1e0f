package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tutor-engine/engine"
)

func newTestUCI() (*uci, *bytes.Buffer) {
	var out bytes.Buffer
	cfg := engine.SearchConfig{Depth: 2, QuiescenceDepth: 4, TimeBudget: 5 * time.Second}
	return newUCI(&out, zerolog.Nop(), cfg), &out
}

// run feeds lines to the loop handler and waits for any search to finish.
func run(u *uci, lines ...string) {
	for _, l := range lines {
		u.handle(l)
	}
	u.wait()
}

func TestHandshake(t *testing.T) {
	u, out := newTestUCI()
	run(u, "uci", "isready", "frobnicate")
	got := out.String()
	for _, want := range []string{"id name", "uciok", "readyok", "info string Unknown command: frobnicate"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if u.handle("quit") {
		t.Fatalf("quit should end the loop")
	}
}

func TestPositionCommand(t *testing.T) {
	u, out := newTestUCI()
	run(u, "position startpos moves e2e4 e7e5 g1f3")
	if got := u.pos.ToFEN(); got != "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2" {
		t.Fatalf("FEN after moves = %q", got)
	}

	run(u, "position fen 8/8/8/4k3/8/8/8/4K3 w - - 0 1 moves e1d2")
	if got := u.pos.ToFEN(); got != "8/8/8/4k3/8/8/3K4/8 b - - 1 1" {
		t.Fatalf("FEN = %q", got)
	}

	before := u.pos.ToFEN()
	run(u, "position fen not/a/fen w - - 0 1")
	if u.pos.ToFEN() != before || !strings.Contains(out.String(), "Invalid fen position") {
		t.Fatalf("bad FEN should be reported and ignored:\n%s", out.String())
	}

	run(u, "position startpos moves e2e4 e2e4")
	if !strings.Contains(out.String(), "info string Move e2e4 not applied") {
		t.Fatalf("illegal move not reported:\n%s", out.String())
	}
}

func TestGoFindsMate(t *testing.T) {
	u, out := newTestUCI()
	run(u, "position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", "go depth 1")
	got := out.String()
	if !strings.Contains(got, "bestmove a1a8") {
		t.Fatalf("expected mate, got:\n%s", got)
	}
	if !strings.Contains(got, "info depth 1 score cp 10000") || !strings.Contains(got, "pv a1a8\n") {
		t.Fatalf("missing depth info:\n%s", got)
	}
}

func TestInfoPrintsWholeLine(t *testing.T) {
	u, out := newTestUCI()
	run(u, "position fen 4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", "go depth 2")
	var pv []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "info depth 2 ") {
			_, rest, _ := strings.Cut(line, " pv ")
			pv = strings.Fields(rest)
		}
	}
	if len(pv) < 2 || pv[0] != "d2d5" {
		t.Fatalf("depth 2 pv = %v:\n%s", pv, out.String())
	}
}

func bestMoveIn(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) == 2 && f[0] == "bestmove" {
			return f[1]
		}
	}
	t.Fatalf("no bestmove in:\n%s", out)
	return ""
}

func TestTutorFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communication.txt")
	u, out := newTestUCI()
	u.feed = newTutorFeed(path, zerolog.Nop())

	run(u, "ucinewgame", "position startpos moves e2e4", "go depth 1")
	reply := bestMoveIn(t, out.String())
	run(u, "position startpos moves e2e4 "+reply+" d2d4")
	// Positions from a FEN are not part of the tutored game.
	run(u, "position fen 8/8/8/4k3/8/8/8/4K3 w - - 0 1 moves e1d2")
	// A list that does not extend the game replays it.
	run(u, "position startpos moves g1f3")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []string{"new", "user e2e4", "engine " + reply, "user d2d4", "new", "engine g1f3"}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("tutor file = %q, want %q", got, want)
	}
}

func TestGoWithoutMoves(t *testing.T) {
	u, out := newTestUCI()
	run(u, "position fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", "go")
	if !strings.Contains(out.String(), "bestmove 0000") {
		t.Fatalf("got:\n%s", out.String())
	}
}

func TestStopEndsInfiniteSearch(t *testing.T) {
	u, out := newTestUCI()
	u.handle("position startpos")
	u.handle("go infinite")
	time.Sleep(20 * time.Millisecond)
	run(u, "stop")
	if !strings.Contains(out.String(), "bestmove ") {
		t.Fatalf("no bestmove after stop:\n%s", out.String())
	}
}

func TestEvalAndDisplay(t *testing.T) {
	u, out := newTestUCI()
	run(u, "position startpos", "eval", "d")
	got := out.String()
	if !strings.Contains(got, "Material score: 0") || !strings.Contains(got, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1") {
		t.Fatalf("got:\n%s", got)
	}
}

func TestParseGo(t *testing.T) {
	u, _ := newTestUCI()
	pos := u.pos
	base := engine.SearchConfig{Depth: 5, QuiescenceDepth: 10, TimeBudget: 10 * time.Second}

	data := []struct {
		args   string
		depth  int
		budget time.Duration
	}{
		{"", 5, 10 * time.Second},
		{"depth 3", 3, 0},
		{"infinite", infiniteDepth, 0},
		{"movetime 500", 5, 500 * time.Millisecond},
		{"wtime 60000 btime 1000", 5, time.Minute * 10 / (12 * 44)},
	}
	for _, d := range data {
		cfg, err := parseGo(strings.Fields(d.args), pos, base)
		if err != nil {
			t.Fatalf("parseGo(%q): %v", d.args, err)
		}
		if cfg.Depth != d.depth || cfg.TimeBudget != d.budget || cfg.QuiescenceDepth != 10 {
			t.Fatalf("parseGo(%q) = %+v", d.args, cfg)
		}
	}
	for _, bad := range []string{"wtime", "wtime soon", "ponderhit 3", "depth -2"} {
		if _, err := parseGo(strings.Fields(bad), pos, base); err == nil {
			t.Fatalf("parseGo(%q) should fail", bad)
		}
	}
}
