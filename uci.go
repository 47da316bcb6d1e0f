package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tutor-engine/board"
	"tutor-engine/engine"
)

// infiniteDepth bounds "go infinite"; the GUI is expected to send stop.
const infiniteDepth = 64

func main() {
	depth := flag.Int("depth", engine.DefaultSearchConfig().Depth, "default search depth")
	qdepth := flag.Int("qdepth", engine.DefaultSearchConfig().QuiescenceDepth, "quiescence depth")
	logLevel := flag.String("loglevel", "warn", "diagnostics level on stderr (debug, info, warn, error, disabled)")
	stats := flag.Bool("stats", false, "print cut statistics after every search")
	tutorFile := flag.String("tutorfile", "", "append the game to this file for the tutor command (empty = off)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -loglevel: %v\n", err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	cfg := engine.DefaultSearchConfig()
	cfg.Depth, cfg.QuiescenceDepth = *depth, *qdepth
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	u := newUCI(os.Stdout, logger, cfg)
	u.printStats = *stats
	if *tutorFile != "" {
		u.feed = newTutorFeed(*tutorFile, logger)
	}
	u.loop(os.Stdin)
}

type uci struct {
	mu  sync.Mutex // guards out
	out io.Writer
	log zerolog.Logger

	base       engine.SearchConfig
	printStats bool

	pos      *board.Position
	searcher *engine.Searcher
	feed     *tutorFeed

	cancel context.CancelFunc
	done   chan struct{}
}

func newUCI(out io.Writer, logger zerolog.Logger, base engine.SearchConfig) *uci {
	u := &uci{out: out, log: logger, base: base, pos: board.StartPosition()}
	u.searcher = engine.NewSearcher(engine.WithLogger(logger), engine.WithDepthCallback(u.printInfo))
	return u
}

func (u *uci) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *uci) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !u.handle(scanner.Text()) {
			break
		}
	}
	u.stop()
}

// handle executes one command line and reports whether the loop should go on.
func (u *uci) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 { // ignore blank lines
		return true
	}
	switch strings.ToLower(tokens[0]) {
	case "uci":
		u.println("id name TutorEngine")
		u.println("id author the TutorEngine authors")
		u.println("uciok")
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.stop()
		u.pos = board.StartPosition()
		u.searcher.NewGame()
		u.feed.newGame()
	case "position":
		u.stop()
		u.position(tokens[1:])
	case "go":
		u.stop()
		u.goCommand(tokens[1:])
	case "stop":
		u.stop()
	case "d":
		u.wait()
		u.println(u.pos.String())
	case "eval":
		u.wait()
		u.println(engine.ExplainLeaf(u.pos, u.pos.LegalMoves()).String())
	case "quit":
		return false
	default:
		u.println("info string Unknown command:", line)
	}
	return true
}

func (u *uci) position(args []string) {
	if len(args) == 0 {
		u.println("info string Malformed position command")
		return
	}
	var pos *board.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = board.StartPosition()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		p, err := board.ParseFEN(strings.Join(rest[:end], " "))
		if err != nil {
			u.println("info string Invalid fen position:", err)
			return
		}
		pos, rest = p, rest[end:]
	default:
		u.println("info string Invalid position subcommand")
		return
	}
	var played []string
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, mv := range rest[1:] {
			undo, err := pos.Play(mv)
			if err != nil {
				u.println("info string Move", mv, "not applied to", pos.ToFEN()+":", err)
				break
			}
			played = append(played, undo.Move().String())
		}
	}
	u.pos = pos
	u.feed.position(strings.ToLower(args[0]) == "startpos", played)
}

// parseGo maps the go parameters onto a search configuration for pos.
func parseGo(args []string, pos *board.Position, base engine.SearchConfig) (engine.SearchConfig, error) {
	var th engine.TimeHandler
	var infinite, clock bool
	cfg := base
	for i := 0; i < len(args); i++ {
		name := strings.ToLower(args[i])
		if name == "infinite" {
			infinite = true
			continue
		}
		if i+1 >= len(args) {
			return cfg, fmt.Errorf("go option %s needs a value", name)
		}
		i++
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return cfg, fmt.Errorf("go option %s: %w", name, err)
		}
		ms := time.Duration(v) * time.Millisecond
		white := pos.SideToMove() == board.White
		switch name {
		case "wtime":
			clock = true
			if white {
				th.RemainingTime = ms
			}
		case "btime":
			clock = true
			if !white {
				th.RemainingTime = ms
			}
		case "winc":
			if white {
				th.Increment = ms
			}
		case "binc":
			if !white {
				th.Increment = ms
			}
		case "movestogo":
			th.MovesToGo = v
		case "movetime":
			clock = true
			th.MoveTime = ms
		case "depth":
			th.UsingCustomDepth = true
			cfg.Depth = v
		default:
			return cfg, fmt.Errorf("unknown go option %s", name)
		}
	}
	switch {
	case infinite:
		cfg.Depth, cfg.TimeBudget = infiniteDepth, 0
	case th.UsingCustomDepth || clock:
		cfg = th.Config(pos, cfg)
	}
	return cfg, cfg.Validate()
}

func (u *uci) goCommand(args []string) {
	cfg, err := parseGo(args, u.pos, u.base)
	if err != nil {
		u.println("info string", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	u.cancel, u.done = cancel, done
	pos := u.pos.Clone()
	u.log.Debug().Str("fen", pos.ToFEN()).Int("depth", cfg.Depth).Dur("budget", cfg.TimeBudget).Msg("search started")

	go func() {
		defer close(done)
		best, _, err := u.searcher.BestMove(ctx, pos, cfg)
		if err != nil {
			u.log.Info().Err(err).Msg("no move to search")
		}
		if u.printStats {
			u.mu.Lock()
			u.searcher.Stats().Dump(u.out)
			u.mu.Unlock()
		}
		if best != board.NoMove {
			u.feed.engine(best.String())
		}
		u.println("bestmove", best)
	}()
}

// uciScore converts a White-relative score to the side to move's view.
func uciScore(score int, side board.Color) int {
	if side == board.Black {
		return -score
	}
	return score
}

func (u *uci) printInfo(info engine.Info) {
	ms := info.Elapsed.Milliseconds()
	nps := uint64(0)
	if ms > 0 {
		nps = info.Nodes * 1000 / uint64(ms)
	}
	u.println("info depth", info.Depth,
		"score cp", uciScore(info.Score, u.pos.SideToMove()),
		"nodes", info.Nodes,
		"time", ms,
		"nps", nps,
		"pv", pvString(info))
}

func pvString(info engine.Info) string {
	if len(info.PV) == 0 {
		return info.Best.String()
	}
	moves := make([]string, len(info.PV))
	for i, m := range info.PV {
		moves[i] = m.String()
	}
	return strings.Join(moves, " ")
}

// stop cancels a running search and waits for its bestmove.
func (u *uci) stop() {
	if u.cancel != nil {
		u.cancel()
	}
	u.wait()
}

func (u *uci) wait() {
	if u.done != nil {
		<-u.done
		u.done, u.cancel = nil, nil
	}
}
