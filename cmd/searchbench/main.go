package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"tutor-engine/board"
	"tutor-engine/engine"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the benchmark and returns the process exit code: 0 on
// success, 1 when the work failed and 2 for bad flags.
func run(args []string, out, errOut io.Writer) int {
	// --- Flags ---
	fs := flag.NewFlagSet("searchbench", flag.ContinueOnError)
	fs.SetOutput(errOut)
	depthFlag := fs.Int("depth", 4, "search depth in plies")
	qdepthFlag := fs.Int("qdepth", 10, "quiescence depth")
	repeatFlag := fs.Int("repeat", 1, "number of searches to run")
	fenFlag := fs.String("fen", "", "FEN to search (empty = startpos)")
	statsFlag := fs.Bool("stats", false, "print cut statistics after every search")
	logLevel := fs.String("loglevel", "info", "log level")
	cpuProfile := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfile := fs.String("memprofile", "", "write memory profile (heap) to file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(errOut, "bad -loglevel: %v\n", err)
		return 2
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: errOut}).Level(level).With().Timestamp().Logger()

	// This mimics "go depth N": no time limit.
	cfg := engine.SearchConfig{Depth: *depthFlag, QuiescenceDepth: *qdepthFlag}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("bad search settings")
		return 2
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}

	fmt.Fprintf(out, "searchbench: fen=%q depth=%d repeat=%d\n", fen, cfg.Depth, *repeatFlag)

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position and table for each run
		pos, err := board.ParseFEN(fen)
		if err != nil {
			log.Error().Err(err).Msg("ParseFEN")
			return 1
		}
		searcher := engine.NewSearcher(engine.WithLogger(log))

		iterStart := time.Now()
		a, err := searcher.Analyze(context.Background(), pos, cfg)
		if err != nil {
			log.Error().Err(err).Msg("search")
			return 1
		}
		iterElapsed := time.Since(iterStart)

		fmt.Fprintf(out, "iteration %d: bestmove %v score %d  time=%v  tt=%d\n", i+1, a.Move, a.Score, iterElapsed, searcher.Table().Len())
		if *statsFlag {
			searcher.Stats().Dump(out)
		}
	}
	fmt.Fprintf(out, "total time: %v\n", time.Since(startAll))

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Error().Err(err).Msg("could not create memory profile")
			return 1
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Error().Err(err).Msg("could not write memory profile")
			return 1
		}
	}
	return 0
}
