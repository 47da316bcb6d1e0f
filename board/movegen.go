package board

import "math/bits"

var promotionOrder = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// GeneratePseudoMoves returns moves that obey piece movement rules without
// checking king safety.
func (p *Position) GeneratePseudoMoves() []Move {
	return p.GeneratePseudoMovesInto(make([]Move, 0, 128))
}

// GeneratePseudoMovesInto appends all pseudo-legal moves for the side to move
// into dst[:0] and returns it. Order: pawns, knights, king, rooks, bishops,
// queens. Castling requires rights and an empty path but ignores attacks.
func (p *Position) GeneratePseudoMovesInto(dst []Move) []Move {
	moves := dst[:0]
	us := p.sideToMove
	moves = p.genPawnMoves(moves, us)
	moves = p.genStepMoves(moves, us, PieceTypeKnight, &knightMoves)
	moves = p.genStepMoves(moves, us, PieceTypeKing, &kingMoves)
	moves = p.genCastles(moves, us)
	moves = p.genSlideMoves(moves, us, PieceTypeRook, rookDirs[:])
	moves = p.genSlideMoves(moves, us, PieceTypeBishop, bishopDirs[:])
	moves = p.genSlideMoves(moves, us, PieceTypeQueen, queenDirs[:])
	return moves
}

func (p *Position) genPawnMoves(moves []Move, us Color) []Move {
	them := us.Other()
	forward, startRank, promoRank := 8, 1, 7
	if us == Black {
		forward, startRank, promoRank = -8, 6, 0
	}

	pawns := p.pieces[us][PieceTypePawn]
	for pawns != 0 {
		from := Square(popLSB(&pawns))

		one := from + Square(forward)
		if p.all&bb(one) == 0 {
			if one.Rank() == promoRank {
				for _, pt := range promotionOrder {
					moves = append(moves, NewMove(from, one, promotionFlag(pt, false)))
				}
			} else {
				moves = append(moves, NewMove(from, one, FlagQuiet))
				two := one + Square(forward)
				if from.Rank() == startRank && p.all&bb(two) == 0 {
					moves = append(moves, NewMove(from, two, FlagDoublePush))
				}
			}
		}

		caps := pawnAttacks[us][from]
		for targets := caps & p.occupancy[them]; targets != 0; {
			to := Square(popLSB(&targets))
			if to.Rank() == promoRank {
				for _, pt := range promotionOrder {
					moves = append(moves, NewMove(from, to, promotionFlag(pt, true)))
				}
			} else {
				moves = append(moves, NewMove(from, to, FlagCapture))
			}
		}
		if p.enPassantSquare != NoSquare && caps&bb(p.enPassantSquare) != 0 {
			moves = append(moves, NewMove(from, p.enPassantSquare, FlagEnPassant))
		}
	}
	return moves
}

// genStepMoves handles knights and kings from their reach tables.
func (p *Position) genStepMoves(moves []Move, us Color, pt PieceType, reach *[64]uint64) []Move {
	own := p.occupancy[us]
	opp := p.occupancy[us.Other()]
	pieces := p.pieces[us][pt]
	for pieces != 0 {
		from := Square(popLSB(&pieces))
		for targets := reach[from] &^ own; targets != 0; {
			to := Square(popLSB(&targets))
			flag := FlagQuiet
			if opp&bb(to) != 0 {
				flag = FlagCapture
			}
			moves = append(moves, NewMove(from, to, flag))
		}
	}
	return moves
}

func (p *Position) genCastles(moves []Move, us Color) []Move {
	if us == White {
		if p.castlingRights&CastlingWhiteK != 0 && p.mailbox[E1] == WhiteKing && p.mailbox[H1] == WhiteRook &&
			p.all&(bb(F1)|bb(G1)) == 0 {
			moves = append(moves, NewMove(E1, G1, FlagKingCastle))
		}
		if p.castlingRights&CastlingWhiteQ != 0 && p.mailbox[E1] == WhiteKing && p.mailbox[A1] == WhiteRook &&
			p.all&(bb(B1)|bb(C1)|bb(D1)) == 0 {
			moves = append(moves, NewMove(E1, C1, FlagQueenCastle))
		}
		return moves
	}
	if p.castlingRights&CastlingBlackK != 0 && p.mailbox[E8] == BlackKing && p.mailbox[H8] == BlackRook &&
		p.all&(bb(F8)|bb(G8)) == 0 {
		moves = append(moves, NewMove(E8, G8, FlagKingCastle))
	}
	if p.castlingRights&CastlingBlackQ != 0 && p.mailbox[E8] == BlackKing && p.mailbox[A8] == BlackRook &&
		p.all&(bb(B8)|bb(C8)|bb(D8)) == 0 {
		moves = append(moves, NewMove(E8, C8, FlagQueenCastle))
	}
	return moves
}

// genSlideMoves walks each ray one square at a time: quiet moves while the
// squares are empty, then one capture if the ray ends on an enemy piece.
func (p *Position) genSlideMoves(moves []Move, us Color, pt PieceType, dirs []int) []Move {
	own := p.occupancy[us]
	pieces := p.pieces[us][pt]
	for pieces != 0 {
		from := Square(popLSB(&pieces))
		for _, d := range dirs {
			df, dr := dirDelta[d][0], dirDelta[d][1]
			f, r := from.File()+df, from.Rank()+dr
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				to := SquareOf(f, r)
				if own&bb(to) != 0 {
					break
				}
				if p.all&bb(to) != 0 {
					moves = append(moves, NewMove(from, to, FlagCapture))
					break
				}
				moves = append(moves, NewMove(from, to, FlagQuiet))
				f += df
				r += dr
			}
		}
	}
	return moves
}

// MobilityCount returns the number of pseudo-legal knight, bishop, rook and
// queen moves available to c, regardless of whose turn it is.
func (p *Position) MobilityCount(c Color) int {
	own := p.occupancy[c]
	n := 0
	for ks := p.pieces[c][PieceTypeKnight]; ks != 0; {
		n += bits.OnesCount64(knightMoves[popLSB(&ks)] &^ own)
	}
	for bs := p.pieces[c][PieceTypeBishop]; bs != 0; {
		n += bits.OnesCount64(bishopAttacks(Square(popLSB(&bs)), p.all) &^ own)
	}
	for rs := p.pieces[c][PieceTypeRook]; rs != 0; {
		n += bits.OnesCount64(rookAttacks(Square(popLSB(&rs)), p.all) &^ own)
	}
	for qs := p.pieces[c][PieceTypeQueen]; qs != 0; {
		sq := Square(popLSB(&qs))
		n += bits.OnesCount64((rookAttacks(sq, p.all) | bishopAttacks(sq, p.all)) &^ own)
	}
	return n
}

// ==========================
// Attack queries
// ==========================

// attackersTo returns the pieces of color 'by' attacking sq under occupancy occ.
func (p *Position) attackersTo(sq Square, by Color, occ uint64) uint64 {
	own := &p.pieces[by]
	attackers := pawnAttacks[by.Other()][sq] & own[PieceTypePawn]
	attackers |= knightMoves[sq] & own[PieceTypeKnight]
	attackers |= kingMoves[sq] & own[PieceTypeKing]
	attackers |= rookAttacks(sq, occ) & (own[PieceTypeRook] | own[PieceTypeQueen])
	attackers |= bishopAttacks(sq, occ) & (own[PieceTypeBishop] | own[PieceTypeQueen])
	return attackers & occ
}

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by, p.all) != 0
}
