package engine

import (
	"sort"

	"tutor-engine/board"
)

// Ordering classes: children with an exact table value come first, then
// children with only a bound, then children the table knows nothing about.
const (
	classExact = iota
	classBound
	classUnknown
)

type move struct {
	move  board.Move
	score int
	class int
}

type moveList struct {
	moves []move
}

// less orders exact before bound before unknown. Within the first two
// classes the side to move's preferred values come first; unknown moves are
// never reordered among themselves.
func (ml *moveList) less(i, j int, white bool) bool {
	a, b := ml.moves[i], ml.moves[j]
	if a.class != b.class {
		return a.class < b.class
	}
	if a.class == classUnknown {
		return false
	}
	if white {
		return a.score > b.score
	}
	return a.score < b.score
}

// scoreMovesList looks up the table entry of every child of pos.
func (s *Searcher) scoreMovesList(pos *board.Position, moves []board.Move) (movesList moveList) {
	movesList.moves = make([]move, len(moves))
	for i, m := range moves {
		u := pos.Apply(m)
		e, ok := s.tt.Lookup(pos.Key())
		pos.Unmake(u)

		movesList.moves[i] = move{move: m, class: classUnknown}
		if ok {
			movesList.moves[i].score = e.Value
			movesList.moves[i].class = classBound
			if e.Bound == BoundExact {
				movesList.moves[i].class = classExact
			}
		}
	}
	return movesList
}

// orderMoves sorts moves in place, best first for the side to move.
func (s *Searcher) orderMoves(pos *board.Position, moves []board.Move) {
	if len(moves) < 2 {
		return
	}
	ml := s.scoreMovesList(pos, moves)
	white := pos.SideToMove() == board.White
	sort.SliceStable(ml.moves, func(i, j int) bool { return ml.less(i, j, white) })
	for i := range ml.moves {
		moves[i] = ml.moves[i].move
	}
}
