// Command benchrun runs the benchmark suites and the perft and search
// throughput commands in one go. Run it from the module root.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// run executes a command and prints its combined output. Returns exit code.
func run(log zerolog.Logger, name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	log.Error().Err(err).Str("cmd", name).Msg("cannot run")
	return 1
}

func main() {
	benchtime := flag.String("benchtime", "1s", "benchtime passed to go test")
	maxDepth := flag.Int("maxdepth", 5, "deepest perft run from the initial position")
	searchDepth := flag.Int("searchdepth", 4, "depth of the search benchmark (0 = skip)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run(log, "go", "test", "./board", "./crosscheck", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime="+*benchtime)
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for depth := 3; depth <= *maxDepth; depth++ {
		run(log, "go", "run", "./cmd/perft", "-depth", fmt.Sprint(depth), "-label", "Initial")
	}
	run(log, "go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete")

	if *searchDepth > 0 {
		fmt.Println("\nSearch Performance:")
		run(log, "go", "run", "./cmd/searchbench", "-depth", fmt.Sprint(*searchDepth), "-fen", kiwipete)
	}
}
