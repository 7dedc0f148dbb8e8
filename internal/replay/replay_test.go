package replay

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/drift-snake/internal/config"
	"github.com/vovakirdan/drift-snake/internal/core"
	"github.com/vovakirdan/drift-snake/internal/games/snake"
)

// record drives a game with the autopilot and returns the sealed recording.
func record(t *testing.T, seed int64, frames int) *Recording {
	t.Helper()
	rules := config.DefaultSnakeConfig()
	g := snake.New(rules)
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})

	rec := NewRecorder(rules, seed)
	g.Observe(rec.Record)

	for i := range frames {
		// Uneven frame times, like a real terminal
		dt := time.Duration(12+i%9) * time.Millisecond
		g.Step(g.Autopilot(), dt)
	}
	if rec.Len() != frames {
		t.Fatalf("recorded %d frames, expected %d", rec.Len(), frames)
	}
	return rec.Finish(g.Snapshot())
}

func TestVerifyReproducesRun(t *testing.T) {
	rec := record(t, 2024, 2500)

	snap, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if snap.Score != rec.Score || snap.Moves != rec.Moves {
		t.Errorf("replayed score/moves = %d/%d, recorded %d/%d", snap.Score, snap.Moves, rec.Score, rec.Moves)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	rec := record(t, 7, 600)

	data, err := Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	if got.ID != rec.ID || got.Seed != rec.Seed || got.Digest != rec.Digest {
		t.Errorf("header changed: %s/%d/%x vs %s/%d/%x", got.ID, got.Seed, got.Digest, rec.ID, rec.Seed, rec.Digest)
	}
	if got.Rules != rec.Rules {
		t.Errorf("rules changed:\n%+v\n%+v", got.Rules, rec.Rules)
	}
	if got.Duration() != rec.Duration() {
		t.Errorf("duration = %s, expected %s", got.Duration(), rec.Duration())
	}
	if _, err := Verify(got); err != nil {
		t.Errorf("decoded recording failed verification: %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := record(t, 99, 400)
	rec.Seed++

	if _, err := Verify(rec); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() = %v, expected ErrMismatch", err)
	}
}

func TestPlayRejectsInvalidRules(t *testing.T) {
	rec := record(t, 1, 10)
	rec.Rules.Board.Width = 1

	if _, err := Play(rec, nil); err == nil {
		t.Error("Play() should reject invalid rules")
	}
}

func TestPlayReportsEvents(t *testing.T) {
	rec := record(t, 5, 300)

	moved := 0
	_, err := Play(rec, func(_ int, events []snake.Event) {
		for _, e := range events {
			if _, ok := e.(snake.SnakeMoved); ok {
				moved++
			}
		}
	})
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if moved == 0 {
		t.Error("no SnakeMoved events during replay")
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte{0xc1, 0x00}); err == nil {
		t.Error("Unmarshal() should fail on garbage")
	}
}
