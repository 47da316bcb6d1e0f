package crosscheck

import (
	"fmt"

	"github.com/notnil/chess"
)

// Notnil wraps github.com/notnil/chess. It is much slower than the other
// references and is meant for shallow checks.
type Notnil struct{}

func (Notnil) Name() string { return "notnil" }

func (Notnil) parse(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}

func (n Notnil) LegalMoves(fen string) ([]string, error) {
	pos, err := n.parse(fen)
	if err != nil {
		return nil, err
	}
	moves := pos.ValidMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out, nil
}

func notnilPerft(pos *chess.Position, depth int) uint64 {
	moves := pos.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += notnilPerft(pos.Update(m), depth-1)
	}
	return nodes
}

func (n Notnil) Perft(fen string, depth int) (uint64, error) {
	pos, err := n.parse(fen)
	if err != nil || depth < 1 {
		return 0, err
	}
	return notnilPerft(pos, depth), nil
}

func (n Notnil) Divide(fen string, depth int) (map[string]uint64, error) {
	pos, err := n.parse(fen)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64)
	for _, m := range pos.ValidMoves() {
		nodes := uint64(1)
		if depth > 1 {
			nodes = notnilPerft(pos.Update(m), depth-1)
		}
		out[m.String()] = nodes
	}
	return out, nil
}
