package crosscheck

import (
	"testing"

	"tutor-engine/board"
)

var benchPositions = []struct {
	name  string
	fen   string
	depth int
}{
	{"Initial_D3", board.FENStartPos, 3},
	{"Kiwipete_D2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	{"Pos6_D2", "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10", 2},
}

// BenchmarkPerft puts board.Perft next to each reference on the same
// positions. Reference timings include FEN parsing.
func BenchmarkPerft(b *testing.B) {
	for _, bp := range benchPositions {
		bp := bp
		b.Run("board/"+bp.name, func(b *testing.B) {
			p, err := board.ParseFEN(bp.fen)
			if err != nil {
				b.Fatalf("ParseFEN: %v", err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = board.Perft(p, bp.depth)
			}
		})
		for _, ref := range References() {
			ref := ref
			b.Run(ref.Name()+"/"+bp.name, func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := ref.Perft(bp.fen, bp.depth); err != nil {
						b.Fatalf("%s: %v", ref.Name(), err)
					}
				}
			})
		}
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	for _, bp := range benchPositions {
		bp := bp
		b.Run("board/"+bp.name, func(b *testing.B) {
			p, err := board.ParseFEN(bp.fen)
			if err != nil {
				b.Fatalf("ParseFEN: %v", err)
			}
			buf := make([]board.Move, 0, 256)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf = p.LegalMovesInto(buf[:0])
			}
		})
		for _, ref := range References() {
			ref := ref
			b.Run(ref.Name()+"/"+bp.name, func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := ref.LegalMoves(bp.fen); err != nil {
						b.Fatalf("%s: %v", ref.Name(), err)
					}
				}
			})
		}
	}
}
