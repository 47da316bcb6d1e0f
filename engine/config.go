package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by BestMove when the search parameters are unusable.
var ErrInvalidConfig = errors.New("invalid search config")

// SearchConfig bounds a single BestMove call.
type SearchConfig struct {
	// Depth is the maximum nominal depth of the iterative deepening loop.
	Depth int
	// QuiescenceDepth caps how many loud plies are followed past the horizon.
	QuiescenceDepth int
	// TimeBudget is checked after every root move. Zero means no limit.
	TimeBudget time.Duration
}

// DefaultSearchConfig mirrors the engine's stock playing strength.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Depth:           5,
		QuiescenceDepth: 10,
		TimeBudget:      10 * time.Second,
	}
}

func (c SearchConfig) Validate() error {
	switch {
	case c.Depth < 0:
		return fmt.Errorf("%w: depth %d", ErrInvalidConfig, c.Depth)
	case c.QuiescenceDepth < 0:
		return fmt.Errorf("%w: quiescence depth %d", ErrInvalidConfig, c.QuiescenceDepth)
	case c.TimeBudget < 0:
		return fmt.Errorf("%w: time budget %v", ErrInvalidConfig, c.TimeBudget)
	}
	return nil
}
