package engine

import (
	"time"

	"tutor-engine/board"
)

// Engine-side safety knobs.
const (
	overhead       = 30 * time.Millisecond // reserve for protocol and IO jitter
	minMoveTime    = 5 * time.Millisecond
	panicThreshold = time.Second
)

// TimeHandler turns the clock state sent by a GUI into a per-move budget.
type TimeHandler struct {
	RemainingTime time.Duration
	Increment     time.Duration
	// MovesToGo is the number of moves until the next time control, 0 if
	// unknown.
	MovesToGo int
	// MoveTime fixes the budget outright when non-zero.
	MoveTime time.Duration
	// UsingCustomDepth disables the budget; the depth alone bounds the search.
	UsingCustomDepth bool
}

// movesRemaining estimates how many moves the remaining time has to cover:
// 45 at the start of each 40-move block, dropping to 6 at its end.
func movesRemaining(fullmove int) int {
	return 45 - fullmove%40
}

// Budget returns the time to spend on the move in pos, or 0 for no limit.
func (th TimeHandler) Budget(pos *board.Position) time.Duration {
	if th.UsingCustomDepth {
		return 0
	}
	if th.MoveTime > 0 {
		return th.MoveTime
	}
	rem, inc := th.RemainingTime, th.Increment
	if rem <= 0 {
		if inc > 0 {
			return Max(inc-overhead, minMoveTime)
		}
		return 0
	}

	movesLeft := movesRemaining(pos.FullmoveNumber())
	if th.MovesToGo > 0 {
		movesLeft = th.MovesToGo
	}

	var moveTime time.Duration
	if inc > 0 && rem < panicThreshold {
		// Bank a little time and live on the increment.
		moveTime = inc * 9 / 10
	} else {
		moveTime = rem*10/(12*time.Duration(movesLeft)) + inc
	}

	moveTime = Min(moveTime, rem*7/10)
	moveTime = Min(moveTime, rem-overhead)
	return Max(moveTime, minMoveTime)
}

// Config fills the time budget of a copy of base.
func (th TimeHandler) Config(pos *board.Position, base SearchConfig) SearchConfig {
	base.TimeBudget = th.Budget(pos)
	return base
}
