package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"tutor-engine/board"
	"tutor-engine/diagram"
	"tutor-engine/engine"
)

var errUnknownCommand = errors.New("unknown command")

// tutor holds one game between a user and the engine and explains, after every
// user move, how it compares with the engine's own choice.
type tutor struct {
	out      io.Writer
	log      zerolog.Logger
	searcher *engine.Searcher
	cfg      engine.SearchConfig
	startFEN string
	svgDir   string
	// style is applied to every diagram before the last-move marks.
	style []diagram.Option

	pos  *board.Position
	best *engine.Analysis
}

func newTutor(out io.Writer, log zerolog.Logger, cfg engine.SearchConfig, startFEN string) *tutor {
	return &tutor{
		out:      out,
		log:      log,
		searcher: engine.NewSearcher(engine.WithLogger(log)),
		cfg:      cfg,
		startFEN: startFEN,
	}
}

// process handles one command line. It reports whether the tutor should stop.
// Errors leave the game as it was before the command.
func (t *tutor) process(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch fields[0] {
	case "quit":
		return true, nil
	case "new":
		return false, t.newGame(ctx)
	case "user", "engine":
		if len(fields) < 2 {
			return false, fmt.Errorf("%s: missing move", fields[0])
		}
		if t.pos == nil {
			if err := t.newGame(ctx); err != nil {
				return false, err
			}
		}
		if fields[0] == "user" {
			return false, t.userMove(ctx, fields[1])
		}
		return false, t.engineMove(ctx, fields[1])
	}
	return false, fmt.Errorf("%w: %q", errUnknownCommand, fields[0])
}

func (t *tutor) newGame(ctx context.Context) error {
	pos, err := board.ParseFEN(t.startFEN)
	if err != nil {
		return err
	}
	t.pos = pos
	t.best = nil
	t.searcher.NewGame()
	t.log.Info().Str("fen", pos.ToFEN()).Msg("new game")
	t.render()
	return t.analyze(ctx)
}

// analyze computes the engine's choice for the side to move.
func (t *tutor) analyze(ctx context.Context) error {
	a, err := t.searcher.Analyze(ctx, t.pos, t.cfg)
	if err != nil {
		t.best = nil
		return err
	}
	t.best = &a
	t.log.Debug().Str("best", a.Move.String()).Int("score", a.Score).Int("depth", a.Depth).Msg("analysis")
	return nil
}

// gameOver prints the result when the game has ended.
func (t *tutor) gameOver() bool {
	res := t.pos.Result()
	if res == board.InProgress {
		return false
	}
	fmt.Fprintf(t.out, "\nGame over\n%s\n", res)
	t.best = nil
	return true
}

func (t *tutor) userMove(ctx context.Context, text string) error {
	best := t.best
	u, err := t.pos.Play(text)
	if err != nil {
		return err
	}
	t.render()
	if t.gameOver() {
		return nil
	}
	score, line := t.searcher.Score(t.pos, t.cfg)
	played := u.Move()
	switch {
	case best == nil:
		fmt.Fprintf(t.out, "\n%s\n", report(score, line.Reason, line.PV))
	case played == best.Move || score == best.Score:
		fmt.Fprintf(t.out, "\nYou played %s, the best move!\n%s\n", played, report(score, line.Reason, line.PV))
	default:
		fmt.Fprintf(t.out, "\nThe move %s was better than your move:\n%s\n\nCompared to your move %s:\n%s\n",
			best.Move, report(best.Score, best.Reason, best.PV[1:]), played, report(score, line.Reason, line.PV))
	}
	t.best = nil
	return nil
}

// report prints the continuation followed by the evaluation terms.
func report(eval int, why engine.Breakdown, cont []board.Move) string {
	moves := make([]string, len(cont))
	for i, m := range cont {
		moves[i] = m.String()
	}
	return "Best continuation: " + strings.Join(moves, ", ") + "\n" + why.Report(eval)
}

func (t *tutor) engineMove(ctx context.Context, text string) error {
	if _, err := t.pos.Play(text); err != nil {
		return err
	}
	t.render()
	if t.gameOver() {
		return nil
	}
	return t.analyze(ctx)
}

// render writes the current board to svgDir, one file per ply.
func (t *tutor) render() {
	if t.svgDir == "" {
		return
	}
	name := filepath.Join(t.svgDir, fmt.Sprintf("ply-%03d.svg", t.pos.Ply()))
	f, err := os.Create(name)
	if err != nil {
		t.log.Warn().Err(err).Str("file", name).Msg("cannot write diagram")
		return
	}
	defer f.Close()
	opts := append(append([]diagram.Option(nil), t.style...), diagram.MarkMove("#f6f669", t.pos.LastMove()))
	if err := diagram.Render(f, t.pos, opts...); err != nil {
		t.log.Warn().Err(err).Str("file", name).Msg("cannot write diagram")
	}
}
