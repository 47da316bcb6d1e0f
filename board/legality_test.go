package board_test

import (
	"math/rand"
	"sort"
	"testing"

	"tutor-engine/board"
)

// corpus plays seeded random games from a handful of seeds and collects every
// position reached.
func corpus(t testing.TB, games, plies int) []*board.Position {
	seeds := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	rng := rand.New(rand.NewSource(20240601))
	var out []*board.Position
	for g := 0; g < games; g++ {
		p := mustParse(t, seeds[g%len(seeds)])
		for ply := 0; ply < plies; ply++ {
			out = append(out, p.Clone())
			moves := p.LegalMoves()
			if len(moves) == 0 {
				break
			}
			p.Apply(moves[rng.Intn(len(moves))])
		}
	}
	return out
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func TestLegalityFiltersAgree(t *testing.T) {
	positions := corpus(t, 60, 80)
	for _, p := range positions {
		fast := map[board.Move]bool{}
		for _, m := range p.LegalMoves() {
			fast[m] = true
		}
		for _, m := range p.GeneratePseudoMoves() {
			if brute := p.IsLegalBruteForce(m); brute != fast[m] {
				t.Fatalf("%s: move %s brute=%v fast=%v", p.ToFEN(), m, brute, fast[m])
			}
		}
		if p.InCheck() != p.Checked() {
			t.Fatalf("%s: InCheck=%v Checked=%v", p.ToFEN(), p.InCheck(), p.Checked())
		}
	}
}

func TestInCheckRestoresPosition(t *testing.T) {
	p := mustParse(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	before := p.Clone()
	_ = p.InCheck()
	if !p.Equal(before) {
		t.Fatalf("InCheck mutated the position: %s", p.ToFEN())
	}
}

func TestPinnedAndCheckScenarios(t *testing.T) {
	data := []struct {
		name  string
		fen   string
		legal []string
	}{
		{
			// En passant would expose the king along the fifth rank.
			"ep discovered check",
			"8/8/8/KPp4r/8/8/8/7k w - c6 0 2",
			[]string{"a5a4", "a5a6", "a5b6", "b5b6"},
		},
		{
			// Double check: only king moves.
			"double check",
			"4k3/8/8/8/8/4n3/8/4RK1r w - - 0 1",
			[]string{"f1e2", "f1f2"},
		},
		{
			// Bishop pinned against the king may only slide along the pin.
			"diagonal pin",
			"7k/8/8/8/3q4/8/1B6/K7 w - - 0 1",
			[]string{"a1a2", "a1b1", "b2c3", "b2d4"},
		},
	}
	for _, d := range data {
		p := mustParse(t, d.fen)
		got := moveStrings(p.LegalMoves())
		want := append([]string(nil), d.legal...)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Fatalf("%s: legal = %v, want %v", d.name, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%s: legal = %v, want %v", d.name, got, want)
			}
		}
		if brute := moveStrings(p.LegalMovesBruteForce()); len(brute) != len(got) {
			t.Fatalf("%s: brute force = %v", d.name, brute)
		}
	}
}

func TestCastlingThroughAttackIsIllegal(t *testing.T) {
	// Black rook on f8 covers f1: king-side castling is out, queen-side is fine.
	p := mustParse(t, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if _, ok := p.FindMove("e1g1"); ok {
		t.Fatalf("castling through an attacked square accepted")
	}
	if _, ok := p.FindMove("e1c1"); !ok {
		t.Fatalf("queen-side castling should be legal")
	}
	if p.IsLegalBruteForce(board.NewMove(board.E1, board.G1, board.FlagKingCastle)) {
		t.Fatalf("brute force accepted castling through f1")
	}

	// In check: no castling at all.
	p = mustParse(t, "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1")
	for _, m := range p.LegalMoves() {
		if m.IsCastle() {
			t.Fatalf("castled out of check: %s", m)
		}
	}
}
