package crosscheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
)

// Goose wraps the GooseEngineMG move generator.
type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) parse(fen string) (*goosemg.Board, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", fen, err)
	}
	return b, nil
}

func (g Goose) LegalMoves(fen string) ([]string, error) {
	b, err := g.parse(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GenerateMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out, nil
}

func (g Goose) Perft(fen string, depth int) (uint64, error) {
	b, err := g.parse(fen)
	if err != nil || depth < 1 {
		return 0, err
	}
	return goosemg.Perft(b, depth), nil
}

func (g Goose) Divide(fen string, depth int) (map[string]uint64, error) {
	b, err := g.parse(fen)
	if err != nil {
		return nil, err
	}
	div := goosemg.PerftDivide(b, depth)
	out := make(map[string]uint64, len(div))
	for m, n := range div {
		out[m.String()] = n
	}
	return out, nil
}
