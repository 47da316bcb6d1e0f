package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// tutorFeed appends the game as seen by the protocol loop to the file the
// tutor command watches: "new", "user <move>" for moves the GUI reports and
// "engine <move>" for moves this engine picks.
type tutorFeed struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger

	// played holds every move of the current game already written, from
	// the start position.
	played []string
}

func newTutorFeed(path string, log zerolog.Logger) *tutorFeed {
	return &tutorFeed{path: path, log: log}
}

func (f *tutorFeed) write(lines ...string) {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		f.log.Warn().Err(err).Str("file", f.path).Msg("tutor feed")
		return
	}
	defer file.Close()
	for _, l := range lines {
		if _, err := fmt.Fprintln(file, l); err != nil {
			f.log.Warn().Err(err).Str("file", f.path).Msg("tutor feed")
			return
		}
	}
}

func (f *tutorFeed) newGame() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = f.played[:0]
	f.write("new")
}

// position reports the moves a position command added to the game. A move
// list that does not extend the known game restarts the tutor and replays it.
func (f *tutorFeed) position(startpos bool, moves []string) {
	if f == nil {
		return
	}
	if !startpos {
		f.log.Debug().Msg("tutor feed follows games from the start position only")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(moves) >= len(f.played) && slices.Equal(moves[:len(f.played)], f.played) {
		for _, m := range moves[len(f.played):] {
			f.write("user " + m)
		}
		f.played = append(f.played, moves[len(f.played):]...)
		return
	}
	f.log.Debug().Int("known", len(f.played)).Int("moves", len(moves)).Msg("tutor feed out of step, replaying the game")
	f.write("new")
	for _, m := range moves {
		f.write("engine " + m)
	}
	f.played = append(f.played[:0], moves...)
}

func (f *tutorFeed) engine(move string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.write("engine " + move)
	f.played = append(f.played, move)
}
