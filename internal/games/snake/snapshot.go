package snake

import (
	"fmt"
	"hash/fnv"
	"slices"
	"time"

	"github.com/vovakirdan/drift-snake/internal/core"
)

// Snapshot captures everything a renderer needs to draw the board, and is
// also used for determinism testing and replay verification.
type Snapshot struct {
	Frames uint64
	Moves  uint64

	Snake     []core.Point // Head first
	Dir       Direction
	Food      core.Point
	HasFood   bool
	Obstacles []Obstacle
	PowerUps  []core.Point

	Score          int
	Run            RunState
	Cause          DeathCause
	PowerActive    bool
	PowerRemaining time.Duration
	BaseInterval   time.Duration
	Interval       time.Duration // Effective interval
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Frames:         s.Frames,
		Moves:          s.Moves,
		Snake:          slices.Clone(s.Snake),
		Dir:            s.Dir,
		Food:           s.Food,
		HasFood:        s.HasFood,
		Obstacles:      slices.Clone(s.Obstacles),
		PowerUps:       slices.Clone(s.PowerUps),
		Score:          s.Score,
		Run:            s.Run,
		Cause:          s.Cause,
		PowerActive:    s.PowerActive,
		PowerRemaining: s.PowerRemaining,
		BaseInterval:   s.BaseInterval,
		Interval:       s.EffectiveInterval(),
	}
}

// Head returns the head cell, or the zero point for an empty snake.
func (s Snapshot) Head() core.Point {
	if len(s.Snake) == 0 {
		return core.Point{}
	}
	return s.Snake[0]
}

// Digest hashes the snapshot. Two runs with the same seed, rules and
// inputs produce the same digest.
func (s Snapshot) Digest() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%+v", s)
	return h.Sum64()
}
