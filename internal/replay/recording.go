// Package replay records the input stream of a run and replays it against
// a fresh simulation to prove the result is reproducible.
package replay

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/drift-snake/internal/config"
	"github.com/vovakirdan/drift-snake/internal/core"
	"github.com/vovakirdan/drift-snake/internal/games/snake"
)

// Frame is one recorded simulation step.
type Frame struct {
	Elapsed time.Duration `msgpack:"dt"`
	Mask    uint16        `msgpack:"m,omitempty"`
	Last    core.Action   `msgpack:"l,omitempty"`
}

// Recording is everything needed to rebuild a run bit for bit.
type Recording struct {
	ID        string             `msgpack:"id"`
	Seed      int64              `msgpack:"seed"`
	Rules     config.SnakeConfig `msgpack:"rules"`
	Frames    []Frame            `msgpack:"frames"`
	Score     int                `msgpack:"score"`
	Moves     uint64             `msgpack:"moves"`
	Digest    uint64             `msgpack:"digest"`
	CreatedAt time.Time          `msgpack:"created_at"`
}

// Duration returns the simulated time covered by the recording.
func (r *Recording) Duration() time.Duration {
	var d time.Duration
	for _, f := range r.Frames {
		d += f.Elapsed
	}
	return d
}

// Recorder collects frames as the game steps them.
type Recorder struct {
	rec *Recording
}

// NewRecorder starts a recording for a run created with rules and seed.
func NewRecorder(rules config.SnakeConfig, seed int64) *Recorder {
	return &Recorder{
		rec: &Recording{
			ID:        uuid.New().String(),
			Seed:      seed,
			Rules:     rules,
			CreatedAt: time.Now().UTC(),
		},
	}
}

// Record appends one frame. It matches the snake.FrameObserver signature.
func (r *Recorder) Record(in core.InputFrame, dt time.Duration) {
	r.rec.Frames = append(r.rec.Frames, Frame{
		Elapsed: dt,
		Mask:    in.Mask(),
		Last:    in.Last,
	})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Finish seals the recording with the final board.
func (r *Recorder) Finish(final snake.Snapshot) *Recording {
	r.rec.Score = final.Score
	r.rec.Moves = final.Moves
	r.rec.Digest = final.Digest()
	return r.rec
}

// Marshal encodes a recording with msgpack.
func Marshal(rec *Recording) ([]byte, error) {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode %s: %w", rec.ID, err)
	}
	return data, nil
}

// Unmarshal decodes a recording produced by Marshal.
func Unmarshal(data []byte) (*Recording, error) {
	var rec Recording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	return &rec, nil
}
