package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"tutor-engine/board"
)

// ErrNoLegalMoves is returned by BestMove for positions that are already over.
var ErrNoLegalMoves = errors.New("no legal moves")

// infinity bounds the search window; it is larger than any score.
const infinity = 1 << 30

// Info describes a completed iteration of the root search.
type Info struct {
	Depth   int
	Score   int
	Best    board.Move
	PV      []board.Move
	Nodes   uint64
	Elapsed time.Duration
}

// Line is what a search reports next to its value: the breakdown of the
// leaf that decided it and the moves that lead there.
type Line struct {
	Reason Breakdown
	PV     []board.Move
}

// extend returns the line reached by playing m first.
func (l Line) extend(m board.Move) Line {
	pv := make([]board.Move, 0, len(l.PV)+1)
	pv = append(pv, m)
	return Line{Reason: l.Reason, PV: append(pv, l.PV...)}
}

// Analysis is the outcome of a root search.
type Analysis struct {
	Move  board.Move
	Score int
	// Reason is the breakdown of the leaf that decided Score.
	Reason Breakdown
	// PV is the principal variation, starting with Move.
	PV []board.Move
	// Depth is the last iteration that was started.
	Depth int
	// Complete is false when the time budget or the context cut the last
	// iteration short.
	Complete bool
}

// Searcher runs minimax with alpha-beta pruning over a Position. Scores are
// always from White's point of view: White maximises, Black minimises.
//
// A Searcher is not safe for concurrent use; the transposition table it
// owns persists between calls so later moves of a game reuse earlier work.
type Searcher struct {
	tt      *TransTable
	log     zerolog.Logger
	stats   CutStatistics
	onDepth func(Info)

	// Move buffers indexed by distance from the root.
	bufs [][]board.Move

	// ctx is polled inside the tree while abortable is set; once it is
	// done, aborted unwinds the search without storing anything.
	ctx       context.Context
	abortable bool
	aborted   bool
}

type Option func(*Searcher)

// WithLogger sets the diagnostics logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Searcher) { s.log = l }
}

// WithTable makes the searcher share an existing transposition table.
func WithTable(tt *TransTable) Option {
	return func(s *Searcher) { s.tt = tt }
}

// WithDepthCallback registers fn to be called after every completed
// iteration of BestMove.
func WithDepthCallback(fn func(Info)) Option {
	return func(s *Searcher) { s.onDepth = fn }
}

func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if s.tt == nil {
		s.tt = NewTransTable()
	}
	return s
}

func (s *Searcher) Table() *TransTable { return s.tt }

// Stats returns the counters of the most recent search.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// NewGame forgets everything learned in previous games.
func (s *Searcher) NewGame() {
	s.tt.Clear()
	s.stats = CutStatistics{}
}

// BestMove picks a move for the side to move in pos. pos is used as scratch
// space and is restored before returning.
func (s *Searcher) BestMove(ctx context.Context, pos *board.Position, cfg SearchConfig) (board.Move, int, error) {
	a, err := s.Analyze(ctx, pos, cfg)
	if err != nil {
		return board.NoMove, 0, err
	}
	return a.Move, a.Score, nil
}

// Analyze is BestMove with the reasoning attached.
func (s *Searcher) Analyze(ctx context.Context, pos *board.Position, cfg SearchConfig) (Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return Analysis{}, err
	}
	start := time.Now()
	s.stats = CutStatistics{}
	root := pos.Ply()

	removed := s.tt.Collect(pos.Age())
	s.log.Debug().Int("removed", removed).Int("kept", s.tt.Len()).Msg("transposition table collected")

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return Analysis{}, ErrNoLegalMoves
	}
	if len(moves) == 1 {
		u := pos.Apply(moves[0])
		reason := ExplainLeaf(pos, pos.LegalMovesInto(s.buffer(1)))
		pos.Unmake(u)
		return Analysis{Move: moves[0], Score: reason.Total(), Reason: reason, PV: []board.Move{moves[0]}, Complete: true}, nil
	}

	white := pos.SideToMove() == board.White
	s.ctx, s.aborted = ctx, false
	defer func() { s.ctx, s.abortable, s.aborted = nil, false, false }()

	var best Analysis
	for depth := 0; depth <= cfg.Depth; depth++ {
		// The first iteration always finishes its first move so that there
		// is something to return.
		s.abortable = depth > 0
		s.orderMoves(pos, moves)
		cur := Analysis{Move: moves[0], Depth: depth}

		u := pos.Apply(cur.Move)
		v, line := s.search(pos, root, depth, cfg.QuiescenceDepth, -infinity, infinity)
		pos.Unmake(u)
		cur.take(v, line.extend(cur.Move))
		if s.aborted {
			return s.cutShort(best, start), nil
		}
		if s.expired(ctx, start, cfg) {
			return s.cutShort(cur, start), nil
		}

		for _, m := range moves[1:] {
			u := pos.Apply(m)
			var v int
			var line Line
			if white {
				v, line = s.search(pos, root, depth, cfg.QuiescenceDepth, cur.Score, infinity)
			} else {
				v, line = s.search(pos, root, depth, cfg.QuiescenceDepth, -infinity, cur.Score)
			}
			pos.Unmake(u)
			if s.aborted {
				return s.cutShort(cur, start), nil
			}
			if (white && v > cur.Score) || (!white && v < cur.Score) {
				cur.Move = m
				cur.take(v, line.extend(m))
			}
			if s.expired(ctx, start, cfg) {
				return s.cutShort(cur, start), nil
			}
		}
		best = cur

		info := Info{Depth: depth, Score: best.Score, Best: best.Move, PV: best.PV, Nodes: s.stats.Nodes + s.stats.QNodes, Elapsed: time.Since(start)}
		s.log.Debug().Int("depth", depth).Int("score", best.Score).Stringer("best", best.Move).
			Uint64("nodes", info.Nodes).Dur("elapsed", info.Elapsed).Msg("iteration complete")
		if s.onDepth != nil {
			s.onDepth(info)
		}
	}
	best.Complete = true
	return best, nil
}

func (a *Analysis) take(score int, line Line) {
	a.Score, a.Reason, a.PV = score, line.Reason, line.PV
}

func (s *Searcher) cutShort(best Analysis, start time.Time) Analysis {
	s.log.Info().Int("depth", best.Depth).Stringer("best", best.Move).Dur("elapsed", time.Since(start)).
		Msg("search stopped before finishing the iteration")
	return best
}

// poll checks the context every 1024 nodes.
func (s *Searcher) poll() bool {
	if !s.aborted && s.abortable && (s.stats.Nodes+s.stats.QNodes)&1023 == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	return s.aborted
}

func (s *Searcher) expired(ctx context.Context, start time.Time, cfg SearchConfig) bool {
	if ctx.Err() != nil {
		return true
	}
	return cfg.TimeBudget > 0 && time.Since(start) > cfg.TimeBudget
}

// Score searches pos to cfg.Depth with a full window and returns its value
// and the line that decided it. It does not collect the table.
func (s *Searcher) Score(pos *board.Position, cfg SearchConfig) (int, Line) {
	return s.search(pos, pos.Ply(), cfg.Depth, cfg.QuiescenceDepth, -infinity, infinity)
}

// buffer returns the move buffer for the given distance from the root.
func (s *Searcher) buffer(ply int) []board.Move {
	for len(s.bufs) <= ply {
		s.bufs = append(s.bufs, make([]board.Move, 0, 64))
	}
	return s.bufs[ply][:0]
}

func (s *Searcher) keep(ply int, moves []board.Move) {
	s.bufs[ply] = moves
}

func boundFor(value, alpha, beta int) Bound {
	switch {
	case value <= alpha:
		return BoundUpper
	case value >= beta:
		return BoundLower
	}
	return BoundExact
}

func (s *Searcher) store(pos *board.Position, key board.Key, depth, value int, bound Bound, line Line) {
	s.stats.TTStores++
	s.tt.Store(key, TTEntry{Depth: depth, Value: value, Bound: bound, Age: pos.Age(), Reason: line.Reason, PV: line.PV})
}

func (s *Searcher) lookup(key board.Key, depth int) (int, Line, bool) {
	v, ok := s.tt.Lookup(key, depth)
	if !ok {
		return 0, Line{}, false
	}
	s.stats.TTHits++
	e, _ := s.tt.Lookup(key)
	return v, Line{Reason: e.Reason, PV: e.PV}, true
}

// search is the fixed-depth alpha-beta over pos. root is pos.Ply() at the
// root of the search and is used to index move buffers.
func (s *Searcher) search(pos *board.Position, root, depth, qdepth, alpha, beta int) (int, Line) {
	if depth == 0 {
		return s.quiescence(pos, root, qdepth, alpha, beta)
	}
	s.stats.Nodes++
	if s.poll() {
		return 0, Line{}
	}
	key := pos.Key()
	if v, why, ok := s.lookup(key, depth); ok {
		return v, why
	}

	ply := pos.Ply() - root
	moves := pos.LegalMovesInto(s.buffer(ply))
	s.keep(ply, moves)
	if res := pos.ResultWith(moves); res != board.InProgress {
		leaf := Line{Reason: Breakdown{Result: res}}
		s.store(pos, key, depth, leaf.Reason.Total(), BoundExact, leaf)
		return leaf.Reason.Total(), leaf
	}
	s.orderMoves(pos, moves)

	alphaOrig, betaOrig := alpha, beta
	var value int
	var line Line
	if pos.SideToMove() == board.White {
		value = -infinity
		for _, m := range moves {
			u := pos.Apply(m)
			v, child := s.search(pos, root, depth-1, qdepth, alpha, beta)
			pos.Unmake(u)
			if s.aborted {
				return 0, Line{}
			}
			if v > value {
				value, line = v, child.extend(m)
			}
			if value >= beta {
				s.stats.BetaCutoffs++
				break
			}
			alpha = Max(alpha, value)
		}
	} else {
		value = infinity
		for _, m := range moves {
			u := pos.Apply(m)
			v, child := s.search(pos, root, depth-1, qdepth, alpha, beta)
			pos.Unmake(u)
			if s.aborted {
				return 0, Line{}
			}
			if v < value {
				value, line = v, child.extend(m)
			}
			if value <= alpha {
				s.stats.AlphaCutoffs++
				break
			}
			beta = Min(beta, value)
		}
	}
	s.store(pos, key, depth, value, boundFor(value, alphaOrig, betaOrig), line)
	return value, line
}

// isLoud reports whether m is followed in quiescence: promotions, and
// captures other than a pawn taking a pawn.
func isLoud(pos *board.Position, m board.Move) bool {
	if m.IsPromotion() {
		return true
	}
	if !m.IsCapture() {
		return false
	}
	if m.Flag() == board.FlagEnPassant {
		return false
	}
	return pos.PieceAt(m.From()).Type() != board.PieceTypePawn || pos.PieceAt(m.To()).Type() != board.PieceTypePawn
}

func (s *Searcher) quiescence(pos *board.Position, root, depth, alpha, beta int) (int, Line) {
	s.stats.QNodes++
	if s.poll() {
		return 0, Line{}
	}
	key := pos.Key()
	if v, why, ok := s.lookup(key, 0); ok {
		return v, why
	}

	ply := pos.Ply() - root
	legal := pos.LegalMovesInto(s.buffer(ply))
	s.keep(ply, legal)
	standPat := Line{Reason: ExplainLeaf(pos, legal)}
	if standPat.Reason.Result != board.InProgress || depth == 0 {
		s.store(pos, key, 0, standPat.Reason.Total(), BoundExact, standPat)
		return standPat.Reason.Total(), standPat
	}

	loud := legal[:0]
	for _, m := range legal {
		if isLoud(pos, m) {
			loud = append(loud, m)
		}
	}
	if len(loud) == 0 {
		s.store(pos, key, 0, standPat.Reason.Total(), BoundExact, standPat)
		return standPat.Reason.Total(), standPat
	}
	s.orderMoves(pos, loud)

	alphaOrig, betaOrig := alpha, beta
	value, line := standPat.Reason.Total(), standPat
	if pos.SideToMove() == board.White {
		if value >= beta {
			s.stats.QStandPatCutoffs++
			s.store(pos, key, 0, value, BoundLower, line)
			return value, line
		}
		alpha = Max(alpha, value)
		for _, m := range loud {
			u := pos.Apply(m)
			v, child := s.quiescence(pos, root, depth-1, alpha, beta)
			pos.Unmake(u)
			if s.aborted {
				return 0, Line{}
			}
			if v > value {
				value, line = v, child.extend(m)
			}
			if value >= beta {
				s.stats.QBetaCutoffs++
				break
			}
			alpha = Max(alpha, value)
		}
	} else {
		if value <= alpha {
			s.stats.QStandPatCutoffs++
			s.store(pos, key, 0, value, BoundUpper, line)
			return value, line
		}
		beta = Min(beta, value)
		for _, m := range loud {
			u := pos.Apply(m)
			v, child := s.quiescence(pos, root, depth-1, alpha, beta)
			pos.Unmake(u)
			if s.aborted {
				return 0, Line{}
			}
			if v < value {
				value, line = v, child.extend(m)
			}
			if value <= alpha {
				s.stats.QAlphaCutoffs++
				break
			}
			beta = Min(beta, value)
		}
	}
	s.store(pos, key, 0, value, boundFor(value, alphaOrig, betaOrig), line)
	return value, line
}
