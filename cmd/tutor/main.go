// Command tutor watches a communication file for game commands and explains
// each user move against the engine's own choice.
//
// Recognised lines: "new", "user <move>", "engine <move>" and "quit".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/nxadm/tail"
	"github.com/nxadm/tail/watch"
	"github.com/rs/zerolog"

	"tutor-engine/board"
	"tutor-engine/diagram"
	"tutor-engine/engine"
)

func main() {
	fileFlag := flag.String("file", "communication.txt", "command file to watch")
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	qdepthFlag := flag.Int("qdepth", 12, "quiescence depth")
	budgetFlag := flag.Duration("budget", 0, "time budget per analysis (0 = none)")
	fenFlag := flag.String("fen", board.FENStartPos, "starting position for new games")
	svgFlag := flag.String("svg", "", "directory for board diagrams (empty = off)")
	colorsFlag := flag.String("colors", "", "light,dark square fills for diagrams")
	pollFlag := flag.Duration("poll", 100*time.Millisecond, "poll interval")
	logLevel := flag.String("loglevel", "info", "log level")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -loglevel: %v\n", err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg := engine.SearchConfig{Depth: *depthFlag, QuiescenceDepth: *qdepthFlag, TimeBudget: *budgetFlag}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad search settings")
	}
	if _, err := board.ParseFEN(*fenFlag); err != nil {
		log.Fatal().Err(err).Msg("bad -fen")
	}
	style, err := parseColors(*colorsFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -colors")
	}

	t := newTutor(os.Stdout, log, cfg, *fenFlag)
	t.svgDir = *svgFlag
	t.style = style

	watch.POLL_DURATION = *pollFlag
	tl, err := follow(*fileFlag)
	if err != nil {
		log.Fatal().Err(err).Str("file", *fileFlag).Msg("cannot watch command file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, t, tl)
	stop()
	tl.Stop()
	tl.Cleanup()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("tutor stopped")
		os.Exit(1)
	}
}

// parseColors turns "light,dark" into a diagram style.
func parseColors(s string) ([]diagram.Option, error) {
	if s == "" {
		return nil, nil
	}
	light, dark, ok := strings.Cut(s, ",")
	if !ok || light == "" || dark == "" {
		return nil, fmt.Errorf("want light,dark, got %q", s)
	}
	return []diagram.Option{diagram.Colors(light, dark)}, nil
}

// follow tails path from its first line, waiting for it to appear and
// starting over when it is truncated. Only complete lines are delivered.
func follow(path string) (*tail.Tail, error) {
	return tail.TailFile(path, tail.Config{
		Follow:        true,
		ReOpen:        true,
		Poll:          true,
		CompleteLines: true,
		Logger:        tail.DiscardingLogger,
	})
}

// run feeds the lines of the command file to the tutor until "quit" or ctx
// ends.
func run(ctx context.Context, t *tutor, tl *tail.Tail) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-tl.Lines:
			if !ok {
				return tl.Err()
			}
			if line.Err != nil {
				t.log.Warn().Err(line.Err).Msg("command file")
				continue
			}
			text := strings.TrimRight(line.Text, "\r")
			t.log.Debug().Str("line", text).Msg("command")
			quit, err := t.process(ctx, text)
			if err != nil {
				t.log.Warn().Err(err).Str("line", text).Msg("command rejected")
			}
			if quit {
				return nil
			}
		}
	}
}
