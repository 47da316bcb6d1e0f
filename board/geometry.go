package board

import "math/bits"

const (
	fileAMask        uint64 = 0x0101010101010101
	rank1Mask        uint64 = 0x00000000000000FF
	mainDiagonal     uint64 = 0x8040201008040201 // a1-h8
	mainAntiDiagonal uint64 = 0x0102040810204080 // h1-a8
)

// Ray directions. Rook directions come first, then bishop directions.
const (
	dirN = iota
	dirS
	dirE
	dirW
	dirNE
	dirNW
	dirSE
	dirSW
)

var rookDirs = [4]int{dirN, dirS, dirE, dirW}
var bishopDirs = [4]int{dirNE, dirNW, dirSE, dirSW}
var queenDirs = [8]int{dirN, dirS, dirE, dirW, dirNE, dirNW, dirSE, dirSW}

// File/rank deltas per direction.
var dirDelta = [8][2]int{
	dirN:  {0, 1},
	dirS:  {0, -1},
	dirE:  {1, 0},
	dirW:  {-1, 0},
	dirNE: {1, 1},
	dirNW: {-1, 1},
	dirSE: {1, -1},
	dirSW: {-1, -1},
}

// Directions whose squares have increasing indices from the origin.
var dirIncreasing = [8]bool{dirN: true, dirE: true, dirNE: true, dirNW: true}

// Precomputed reach and ray tables, filled from the mask functions below.
var knightMoves [64]uint64
var kingMoves [64]uint64

// pawnAttacks[color][sq] gives the squares a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// rays[sq][dir] is the half-ray from sq in dir, origin excluded.
var rays [64][8]uint64

func init() {
	for sq := Square(0); sq < 64; sq++ {
		knightMoves[sq] = KnightMask(sq)
		kingMoves[sq] = KingMask(sq)

		file, rank := sq.File(), sq.Rank()
		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq] |= bb(SquareOf(file-1, rank+1))
			}
			if file < 7 {
				pawnAttacks[White][sq] |= bb(SquareOf(file+1, rank+1))
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq] |= bb(SquareOf(file-1, rank-1))
			}
			if file < 7 {
				pawnAttacks[Black][sq] |= bb(SquareOf(file+1, rank-1))
			}
		}

		above := ^uint64(0) << uint(sq) << 1
		below := bb(sq) - 1
		rays[sq][dirN] = FileMask(sq) & above
		rays[sq][dirS] = FileMask(sq) & below
		rays[sq][dirE] = RankMask(sq) & above
		rays[sq][dirW] = RankMask(sq) & below
		rays[sq][dirNE] = DiagonalMask(sq) & above
		rays[sq][dirSW] = DiagonalMask(sq) & below
		rays[sq][dirNW] = AntiDiagonalMask(sq) & above
		rays[sq][dirSE] = AntiDiagonalMask(sq) & below
	}
}

// FileMask returns the squares on sq's file, excluding sq.
func FileMask(sq Square) uint64 {
	return (fileAMask << uint(sq&7)) &^ bb(sq)
}

// RankMask returns the squares on sq's rank, excluding sq.
func RankMask(sq Square) uint64 {
	return (rank1Mask << uint(sq&56)) &^ bb(sq)
}

// DiagonalMask returns the a1-h8 oriented diagonal through sq, excluding sq.
// The canonical diagonal is shifted by whole ranks; the sign of the offset
// picks the shift direction.
func DiagonalMask(sq Square) uint64 {
	diag := 8*int32(sq&7) - int32(sq&56)
	nort := -diag & (diag >> 31)
	sout := diag & (-diag >> 31)
	return ((mainDiagonal >> uint(sout)) << uint(nort)) &^ bb(sq)
}

// AntiDiagonalMask returns the h1-a8 oriented diagonal through sq, excluding sq.
func AntiDiagonalMask(sq Square) uint64 {
	diag := 56 - 8*int32(sq&7) - int32(sq&56)
	nort := -diag & (diag >> 31)
	sout := diag & (-diag >> 31)
	return ((mainAntiDiagonal >> uint(sout)) << uint(nort)) &^ bb(sq)
}

// KingMask returns the squares a king on sq reaches.
func KingMask(sq Square) uint64 {
	return offsetMask(sq, [][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	})
}

// KnightMask returns the squares a knight on sq reaches.
func KnightMask(sq Square) uint64 {
	return offsetMask(sq, [][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	})
}

// offsetMask validates every offset by file/rank arithmetic so that nothing
// wraps around the board edge.
func offsetMask(sq Square, offsets [][2]int) uint64 {
	file, rank := sq.File(), sq.Rank()
	var mask uint64
	for _, off := range offsets {
		f, r := file+off[0], rank+off[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			mask |= bb(SquareOf(f, r))
		}
	}
	return mask
}

// RookMask is the empty-board rook template.
func RookMask(sq Square) uint64 { return FileMask(sq) | RankMask(sq) }

// BishopMask is the empty-board bishop template.
func BishopMask(sq Square) uint64 { return DiagonalMask(sq) | AntiDiagonalMask(sq) }

// QueenMask is the empty-board queen template.
func QueenMask(sq Square) uint64 { return RookMask(sq) | BishopMask(sq) }

// firstOnRay returns the nearest set square of blockers along dir.
func firstOnRay(dir int, blockers uint64) Square {
	if dirIncreasing[dir] {
		return Square(bits.TrailingZeros64(blockers))
	}
	return Square(63 - bits.LeadingZeros64(blockers))
}

// slideAttacks returns the attack set along the given directions, stopping at
// (and including) the first occupied square on each ray.
func slideAttacks(sq Square, dirs []int, occ uint64) uint64 {
	var attacks uint64
	for _, d := range dirs {
		ray := rays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			ray &^= rays[firstOnRay(d, blockers)][d]
		}
		attacks |= ray
	}
	return attacks
}

func rookAttacks(sq Square, occ uint64) uint64   { return slideAttacks(sq, rookDirs[:], occ) }
func bishopAttacks(sq Square, occ uint64) uint64 { return slideAttacks(sq, bishopDirs[:], occ) }

// between returns the squares strictly between a and b when they share a
// line, or 0.
func between(a, b Square) uint64 {
	for d := 0; d < 8; d++ {
		if rays[a][d]&bb(b) != 0 {
			return rays[a][d] &^ rays[b][d] &^ bb(b)
		}
	}
	return 0
}
