package board

import "testing"

// walkMask builds a ray mask by stepping square by square.
func walkMask(sq Square, deltas [][2]int) uint64 {
	var m uint64
	for _, d := range deltas {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			m |= bb(SquareOf(f, r))
			f += d[0]
			r += d[1]
		}
	}
	return m
}

func TestMaskLiterals(t *testing.T) {
	e4 := SquareOf(4, 3)
	data := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"FileMask(a1)", FileMask(A1), 0x0101010101010100},
		{"RankMask(e4)", RankMask(e4), 0x00000000EF000000},
		{"DiagonalMask(a1)", DiagonalMask(A1), 0x8040201008040200},
		{"DiagonalMask(e4)", DiagonalMask(e4), 0x0080402000080402},
		{"AntiDiagonalMask(e4)", AntiDiagonalMask(e4), 0x0102040800204080},
		{"AntiDiagonalMask(h1)", AntiDiagonalMask(H1), 0x0102040810204000},
		{"KnightMask(a1)", KnightMask(A1), 0x0000000000020400},
		{"KingMask(h8)", KingMask(H8), 0x40C0000000000000},
	}
	for _, d := range data {
		if d.got != d.want {
			t.Errorf("%s = %#016x, want %#016x", d.name, d.got, d.want)
		}
	}
}

func TestMasksMatchRayWalk(t *testing.T) {
	for sq := Square(0); sq < 64; sq++ {
		if got, want := FileMask(sq), walkMask(sq, [][2]int{{0, 1}, {0, -1}}); got != want {
			t.Fatalf("FileMask(%s) = %#x, want %#x", sq, got, want)
		}
		if got, want := RankMask(sq), walkMask(sq, [][2]int{{1, 0}, {-1, 0}}); got != want {
			t.Fatalf("RankMask(%s) = %#x, want %#x", sq, got, want)
		}
		if got, want := DiagonalMask(sq), walkMask(sq, [][2]int{{1, 1}, {-1, -1}}); got != want {
			t.Fatalf("DiagonalMask(%s) = %#x, want %#x", sq, got, want)
		}
		if got, want := AntiDiagonalMask(sq), walkMask(sq, [][2]int{{-1, 1}, {1, -1}}); got != want {
			t.Fatalf("AntiDiagonalMask(%s) = %#x, want %#x", sq, got, want)
		}
		if QueenMask(sq)&bb(sq) != 0 {
			t.Fatalf("QueenMask(%s) contains its origin", sq)
		}
		for d := 0; d < 8; d++ {
			if got, want := rays[sq][d], walkMask(sq, [][2]int{dirDelta[d]}); got != want {
				t.Fatalf("rays[%s][%d] = %#x, want %#x", sq, d, got, want)
			}
		}
	}
}

func TestStepMasksDoNotWrap(t *testing.T) {
	for sq := Square(0); sq < 64; sq++ {
		for m := KnightMask(sq); m != 0; {
			to := Square(popLSB(&m))
			df := abs(to.File() - sq.File())
			dr := abs(to.Rank() - sq.Rank())
			if !(df == 1 && dr == 2) && !(df == 2 && dr == 1) {
				t.Fatalf("knight %s -> %s is not a knight jump", sq, to)
			}
		}
		for m := KingMask(sq); m != 0; {
			to := Square(popLSB(&m))
			if abs(to.File()-sq.File()) > 1 || abs(to.Rank()-sq.Rank()) > 1 {
				t.Fatalf("king %s -> %s wraps", sq, to)
			}
		}
	}
}

func TestBetween(t *testing.T) {
	if got := between(A1, H8); got != DiagonalMask(A1)&^bb(H8) {
		t.Fatalf("between(a1,h8) = %#x", got)
	}
	if got := between(E1, E8); got != FileMask(E1)&^bb(E8) {
		t.Fatalf("between(e1,e8) = %#x", got)
	}
	if got := between(A1, SquareOf(1, 2)); got != 0 {
		t.Fatalf("between(a1,b3) = %#x, want 0", got)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
