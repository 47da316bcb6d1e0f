package engine

import (
	"fmt"
	"math/bits"

	"tutor-engine/board"
)

// MateScore is the value of a won game from White's point of view.
const MateScore = 10000

var pieceValue = [7]int{
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 300,
	board.PieceTypeBishop: 300,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
}

// Game phase weights. Phase runs from 0 (all minor and major pieces on the
// board) to 24 (none left).
const (
	KnightPhase = 1
	BishopPhase = 1
	RookPhase   = 2
	QueenPhase  = 4
	TotalPhase  = 24
)

const (
	PawnDoubledPenalty  = 20
	PawnIsolatedPenalty = 20
	PawnConnectedReward = 10
	MobilityWeight      = 2
)

var fileMasks [8]uint64

func init() {
	for f := 0; f < 8; f++ {
		fileMasks[f] = board.FileMask(board.SquareOf(f, 0))
	}
}

// Breakdown is the static evaluation split into its terms, all in
// centipawns from White's point of view.
type Breakdown struct {
	// Result is InProgress unless the position is terminal, in which case the
	// other terms are zero.
	Result      board.Result
	Material    int
	Positioning int
	Pawns       int
	Mobility    int
}

// Total returns the score the breakdown adds up to.
func (b Breakdown) Total() int {
	switch b.Result {
	case board.WhiteWin:
		return MateScore
	case board.BlackWin:
		return -MateScore
	case board.Draw:
		return 0
	}
	return b.Material + b.Positioning + b.Pawns + b.Mobility
}

func (b Breakdown) String() string { return b.Report(b.Total()) }

// Report renders the breakdown under the given overall evaluation, which may
// come from a search rather than from the breakdown itself.
func (b Breakdown) Report(eval int) string {
	res := "N/A"
	if b.Result != board.InProgress {
		res = b.Result.String()
	}
	return fmt.Sprintf("Overall evaluation: %d\nGame result: %s\nMaterial score: %d\nPiece positioning: %d\nPawn structure: %d\nMobility score: %d",
		eval, res, b.Material, b.Positioning, b.Pawns, b.Mobility)
}

/* ============= MATERIAL + PHASE ============= */

// Phase returns the game phase of pos.
func Phase(pos *board.Position) int {
	used := 0
	for c := board.White; c <= board.Black; c++ {
		used += bits.OnesCount64(pos.PieceMask(c, board.PieceTypeKnight)) * KnightPhase
		used += bits.OnesCount64(pos.PieceMask(c, board.PieceTypeBishop)) * BishopPhase
		used += bits.OnesCount64(pos.PieceMask(c, board.PieceTypeRook)) * RookPhase
		used += bits.OnesCount64(pos.PieceMask(c, board.PieceTypeQueen)) * QueenPhase
	}
	return Clamp(TotalPhase-used, 0, TotalPhase)
}

func countMaterial(pos *board.Position) (score int) {
	for pt := board.PieceTypePawn; pt <= board.PieceTypeQueen; pt++ {
		diff := bits.OnesCount64(pos.PieceMask(board.White, pt)) - bits.OnesCount64(pos.PieceMask(board.Black, pt))
		score += diff * pieceValue[pt]
	}
	return score
}

func countPieceTables(pos *board.Position, phase int) int {
	var mgScore, egScore int
	for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
		for x := pos.PieceMask(board.White, pt); x != 0; x &= x - 1 {
			idx := bits.TrailingZeros64(x)
			mgScore += mgTables[pt][idx]
			egScore += egTables[pt][idx]
		}
		for x := pos.PieceMask(board.Black, pt); x != 0; x &= x - 1 {
			revView := bits.TrailingZeros64(x) ^ 56
			mgScore -= mgTables[pt][revView]
			egScore -= egTables[pt][revView]
		}
	}
	return (mgScore*(TotalPhase-phase) + egScore*phase) / TotalPhase
}

/* ============= PAWN STRUCTURE ============= */

func pawnDoublingPenalties(pos *board.Position) int {
	wPawns := pos.PieceMask(board.White, board.PieceTypePawn)
	bPawns := pos.PieceMask(board.Black, board.PieceTypePawn)
	var wDoubled, bDoubled int
	for _, file := range fileMasks {
		wDoubled += Max(bits.OnesCount64(wPawns&file)-1, 0)
		bDoubled += Max(bits.OnesCount64(bPawns&file)-1, 0)
	}
	return (bDoubled - wDoubled) * PawnDoubledPenalty
}

func isolatedCount(pawns uint64) (n int) {
	for f, file := range fileMasks {
		var neighbours uint64
		if f > 0 {
			neighbours |= fileMasks[f-1]
		}
		if f < 7 {
			neighbours |= fileMasks[f+1]
		}
		if pawns&neighbours == 0 {
			n += bits.OnesCount64(pawns & file)
		}
	}
	return n
}

func isolatedPawnPenalty(pos *board.Position) int {
	w := isolatedCount(pos.PieceMask(board.White, board.PieceTypePawn))
	b := isolatedCount(pos.PieceMask(board.Black, board.PieceTypePawn))
	return (b - w) * PawnIsolatedPenalty
}

// connectedLinks counts, for every pawn, the friendly pawns on the squares
// around it. Each pair is therefore seen twice.
func connectedLinks(pawns uint64) (n int) {
	for x := pawns; x != 0; x &= x - 1 {
		sq := board.Square(bits.TrailingZeros64(x))
		n += bits.OnesCount64(board.KingMask(sq) & pawns)
	}
	return n
}

func connectedPawnBonus(pos *board.Position) int {
	w := connectedLinks(pos.PieceMask(board.White, board.PieceTypePawn))
	b := connectedLinks(pos.PieceMask(board.Black, board.PieceTypePawn))
	return (w - b) * PawnConnectedReward / 2
}

/* ============= MOBILITY ============= */

func mobilityBonus(pos *board.Position, phase int) int {
	diff := pos.MobilityCount(board.White) - pos.MobilityCount(board.Black)
	return diff * MobilityWeight * (TotalPhase - phase) / TotalPhase
}

// Explain computes the static evaluation of a position that is not
// terminal, term by term.
func Explain(pos *board.Position) Breakdown {
	phase := Phase(pos)
	return Breakdown{
		Material:    countMaterial(pos),
		Positioning: countPieceTables(pos, phase),
		Pawns:       pawnDoublingPenalties(pos) + isolatedPawnPenalty(pos) + connectedPawnBonus(pos),
		Mobility:    mobilityBonus(pos, phase),
	}
}

// Evaluation is the static score of pos from White's point of view. It does
// not look at the game result; see ExplainLeaf for that.
func Evaluation(pos *board.Position) int {
	return Explain(pos).Total()
}

// ExplainLeaf scores pos as a search leaf: terminal positions get their
// result, everything else the static terms. legal must be the legal moves
// of pos.
func ExplainLeaf(pos *board.Position, legal []board.Move) Breakdown {
	if res := pos.ResultWith(legal); res != board.InProgress {
		return Breakdown{Result: res}
	}
	return Explain(pos)
}
