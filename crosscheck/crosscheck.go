// Package crosscheck verifies the board package against independent move
// generators.
package crosscheck

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"tutor-engine/board"
)

// ErrUnknownReference is returned by Lookup for names not in References.
var ErrUnknownReference = errors.New("unknown reference generator")

// Reference is an independent legal-move generator working on FEN strings.
type Reference interface {
	Name() string
	LegalMoves(fen string) ([]string, error)
	Perft(fen string, depth int) (uint64, error)
	Divide(fen string, depth int) (map[string]uint64, error)
}

// References returns every available reference generator.
func References() []Reference {
	return []Reference{Dragontooth{}, Goose{}, Notnil{}}
}

func Lookup(name string) (Reference, error) {
	for _, r := range References() {
		if r.Name() == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownReference, name)
}

// Mismatch describes a position where our generator and a reference disagree.
type Mismatch struct {
	Reference string
	FEN       string
	Depth     int
	Ours      uint64
	Theirs    uint64
	// Missing holds moves only the reference produced, Extra moves only we
	// produced. Both are empty when only deeper counts differ.
	Missing []string
	Extra   []string
}

func (m *Mismatch) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s disagrees at %q depth %d: ours %d, theirs %d", m.Reference, m.FEN, m.Depth, m.Ours, m.Theirs)
	if len(m.Missing) > 0 {
		fmt.Fprintf(&b, "; missing %s", strings.Join(m.Missing, " "))
	}
	if len(m.Extra) > 0 {
		fmt.Fprintf(&b, "; extra %s", strings.Join(m.Extra, " "))
	}
	return b.String()
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// diff returns the elements only in a and only in b.
func diff(a, b []string) (onlyA, onlyB []string) {
	inA := make(map[string]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
		if !inA[s] {
			onlyB = append(onlyB, s)
		}
	}
	for _, s := range a {
		if !inB[s] {
			onlyA = append(onlyA, s)
		}
	}
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return onlyA, onlyB
}

// CompareMoves checks that pos has exactly the legal moves ref reports.
// A disagreement is returned as a *Mismatch.
func CompareMoves(pos *board.Position, ref Reference) error {
	fen := pos.ToFEN()
	theirs, err := ref.LegalMoves(fen)
	if err != nil {
		return fmt.Errorf("%s: %w", ref.Name(), err)
	}
	ours := moveStrings(pos.LegalMoves())
	extra, missing := diff(ours, theirs)
	if len(extra) == 0 && len(missing) == 0 {
		return nil
	}
	return &Mismatch{
		Reference: ref.Name(),
		FEN:       fen,
		Depth:     1,
		Ours:      uint64(len(ours)),
		Theirs:    uint64(len(theirs)),
		Missing:   missing,
		Extra:     extra,
	}
}

// VerifyPerft compares perft counts with ref. When they differ it walks the
// divide output down to the shallowest position whose move list disagrees
// and reports that one.
func VerifyPerft(pos *board.Position, depth int, ref Reference) error {
	if depth < 1 {
		return nil
	}
	fen := pos.ToFEN()
	theirs, err := ref.Perft(fen, depth)
	if err != nil {
		return fmt.Errorf("%s: %w", ref.Name(), err)
	}
	ours := board.Perft(pos, depth)
	if ours == theirs {
		return nil
	}
	if err := locate(pos, depth, ref); err != nil {
		return err
	}
	return &Mismatch{Reference: ref.Name(), FEN: fen, Depth: depth, Ours: ours, Theirs: theirs}
}

func locate(pos *board.Position, depth int, ref Reference) error {
	if err := CompareMoves(pos, ref); err != nil || depth <= 1 {
		return err
	}
	ours := board.PerftDivide(pos, depth)
	theirs, err := ref.Divide(pos.ToFEN(), depth)
	if err != nil {
		return fmt.Errorf("%s: %w", ref.Name(), err)
	}
	moves := maps.Keys(ours)
	sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
	for _, m := range moves {
		if ours[m] == theirs[m.String()] {
			continue
		}
		u := pos.Apply(m)
		err := locate(pos, depth-1, ref)
		pos.Unmake(u)
		if err != nil {
			return err
		}
	}
	return nil
}
