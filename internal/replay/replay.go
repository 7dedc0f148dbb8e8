package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/drift-snake/internal/core"
	"github.com/vovakirdan/drift-snake/internal/games/snake"
)

// ErrMismatch is returned when a replay does not reach the recorded board.
var ErrMismatch = errors.New("replay: digest mismatch")

// Play rebuilds the run from the recorded seed and inputs.
// onEvents, when non-nil, receives the events of every frame.
func Play(rec *Recording, onEvents func(frame int, events []snake.Event)) (*snake.State, error) {
	if err := rec.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %s: %w", rec.ID, err)
	}

	s := snake.NewState(rec.Rules, rec.Seed)
	var f snake.Frame
	for i, fr := range rec.Frames {
		f.Elapsed = fr.Elapsed
		f.Now += fr.Elapsed
		in := snake.InputFromFrame(core.FrameFromMask(fr.Mask, fr.Last))
		events := snake.Step(s, in, f)
		if onEvents != nil && len(events) > 0 {
			onEvents(i, events)
		}
	}
	return s, nil
}

// Verify replays rec and compares the final board with the recorded digest.
func Verify(rec *Recording) (snake.Snapshot, error) {
	s, err := Play(rec, nil)
	if err != nil {
		return snake.Snapshot{}, err
	}

	snap := s.Snapshot()
	if got := snap.Digest(); got != rec.Digest {
		return snap, fmt.Errorf("%w: %s recorded %016x, replayed %016x (score %d vs %d)",
			ErrMismatch, rec.ID, rec.Digest, got, rec.Score, snap.Score)
	}
	return snap, nil
}
