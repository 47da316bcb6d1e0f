package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"

	"tutor-engine/board"
	"tutor-engine/crosscheck"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	os.Exit(run(os.Args[1:], os.Stdout, log))
}

// run executes the command and returns the process exit code: 0 on success,
// 1 when the work failed and 2 for bad flags.
func run(args []string, out io.Writer, log zerolog.Logger) int {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fen := fs.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := fs.Int("depth", 0, "Perft depth (required)")
	divide := fs.Bool("divide", false, "Print per-move node counts at root")
	brute := fs.Bool("brute", false, "Use the brute-force legality filter (also with -divide)")
	verify := fs.Bool("verify", false, "Compare the count with a reference generator")
	ref := fs.String("ref", "dragontoothmg", "Reference generator for -verify (dragontoothmg, goosemg, notnil)")
	repeat := fs.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := fs.String("label", "", "Optional label prefix for one-line output")
	cpuProf := fs.String("cpuprofile", "", "Write CPU profile to file during run")
	if err := fs.Parse(args); err != nil {
		log.Error().Err(err).Msg("flags")
		return 2
	}

	if *depth <= 0 {
		log.Error().Int("depth", *depth).Msg("-depth must be > 0")
		return 2
	}
	if *verify && (*divide || *brute) {
		log.Error().Msg("-verify compares the fast generator and already localises mismatches; drop -divide and -brute")
		return 2
	}
	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Error().Err(err).Msg("ParseFEN")
		return 2
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Error().Err(err).Msg("creating cpuprofile")
			return 1
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			log.Error().Err(err).Msg("start cpu profile")
			return 1
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	count := board.Perft
	if *brute {
		count = board.PerftBruteForce
	}

	switch {
	case *verify:
		r, err := crosscheck.Lookup(*ref)
		if err != nil {
			log.Error().Err(err).Msg("reference")
			return 1
		}
		if err := crosscheck.VerifyPerft(pos, *depth, r); err != nil {
			log.Error().Err(err).Msg("perft mismatch")
			return 1
		}
		log.Info().Str("reference", r.Name()).Int("depth", *depth).Msg("perft verified")

	case *divide:
		div := divideWith(pos, *depth, *brute, count)
		moves := maps.Keys(div)
		// Sort moves for stable output
		sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
		var sum uint64
		for _, m := range moves {
			fmt.Fprintf(out, "%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Fprintf(out, "Total: %d\n", sum)

	default:
		var totalNodes uint64
		start := time.Now()
		for i := 0; i < *repeat; i++ {
			totalNodes += count(pos, *depth)
		}
		elapsed := time.Since(start)
		nps := float64(totalNodes) / elapsed.Seconds()

		// Single line: Depth Nodes Time NPS
		fmt.Fprintf(out, "%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
	}
	return 0
}

// divideWith splits the count by root move, using the brute-force filter at
// the root as well when brute is set.
func divideWith(pos *board.Position, depth int, brute bool, count func(*board.Position, int) uint64) map[board.Move]uint64 {
	if !brute {
		return board.PerftDivide(pos, depth)
	}
	div := make(map[board.Move]uint64)
	for _, m := range pos.LegalMovesBruteForce() {
		u := pos.Apply(m)
		div[m] = count(pos, depth-1)
		pos.Unmake(u)
	}
	return div
}
