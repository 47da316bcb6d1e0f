package crosscheck

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

// Dragontooth wraps github.com/dylhunn/dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

// parse recovers from the panics dragontoothmg raises on malformed input.
func (Dragontooth) parse(fen string) (b dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse %q: %v", fen, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func (d Dragontooth) LegalMoves(fen string) ([]string, error) {
	b, err := d.parse(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	return out, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

func (d Dragontooth) Perft(fen string, depth int) (uint64, error) {
	b, err := d.parse(fen)
	if err != nil || depth < 1 {
		return 0, err
	}
	return dragontoothPerft(&b, depth), nil
}

func (d Dragontooth) Divide(fen string, depth int) (map[string]uint64, error) {
	b, err := d.parse(fen)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		n := uint64(1)
		if depth > 1 {
			n = dragontoothPerft(&b, depth-1)
		}
		unapply()
		out[m.String()] = n
	}
	return out, nil
}
