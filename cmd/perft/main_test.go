package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func runPerft(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := run(args, &out, zerolog.Nop())
	return code, out.String()
}

func TestDivideHonoursBrute(t *testing.T) {
	code, fast := runPerft(t, "-fen", kiwipete, "-depth", "2", "-divide")
	if code != 0 {
		t.Fatalf("divide exit %d", code)
	}
	code, brute := runPerft(t, "-fen", kiwipete, "-depth", "2", "-divide", "-brute")
	if code != 0 {
		t.Fatalf("brute divide exit %d", code)
	}
	if fast != brute {
		t.Fatalf("divide output differs:\nfast:\n%s\nbrute:\n%s", fast, brute)
	}
	if !strings.HasSuffix(brute, "Total: 2039\n") || strings.Count(brute, "\n") != 49 {
		t.Fatalf("brute divide:\n%s", brute)
	}
}

func TestFlagCombinations(t *testing.T) {
	for _, args := range [][]string{
		{"-depth", "0"},
		{"-depth", "2", "-verify", "-brute"},
		{"-depth", "2", "-verify", "-divide"},
		{"-depth", "2", "-fen", "not a fen"},
		{"-depth", "2", "-nosuchflag"},
	} {
		if code, _ := runPerft(t, args...); code != 2 {
			t.Fatalf("%v: exit %d, want 2", args, code)
		}
	}
}

func TestCountLine(t *testing.T) {
	code, out := runPerft(t, "-depth", "3", "-label", "Initial", "-brute")
	if code != 0 || !strings.HasPrefix(out, "Initial \t3 \t\t8902 ") {
		t.Fatalf("exit %d, output %q", code, out)
	}
}

func TestProfileSurvivesFailure(t *testing.T) {
	prof := filepath.Join(t.TempDir(), "cpu.out")
	code, _ := runPerft(t, "-depth", "1", "-verify", "-ref", "nosuchref", "-cpuprofile", prof)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	st, err := os.Stat(prof)
	if err != nil || st.Size() == 0 {
		t.Fatalf("profile not flushed: %v %v", st, err)
	}
}

func TestVerifyAgainstReference(t *testing.T) {
	if code, _ := runPerft(t, "-fen", kiwipete, "-depth", "2", "-verify"); code != 0 {
		t.Fatalf("verify exit %d", code)
	}
}
