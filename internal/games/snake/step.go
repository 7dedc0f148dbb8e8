package snake

import (
	"slices"
	"time"

	"github.com/vovakirdan/drift-snake/internal/core"
)

// Frame is the clock sample handed to Step once per rendered frame.
type Frame struct {
	Now     time.Duration // Monotonic timestamp of this frame
	Elapsed time.Duration // Time since the previous frame
}

// Input is the intent sampled at a frame boundary.
type Input struct {
	Turn        Direction // DirNone keeps the buffered direction
	Restart     bool      // Honoured only after game over
	TogglePause bool
}

// InputFromFrame maps semantic actions to simulation input.
// When several directions arrive in one frame the most recent one wins.
func InputFromFrame(f core.InputFrame) Input {
	if f.Empty() {
		return Input{}
	}
	in := Input{
		Restart:     f.Has(core.ActionRestart),
		TogglePause: f.Has(core.ActionPause),
	}

	if d := directionOf(f.Last); d != DirNone && f.Has(f.Last) {
		in.Turn = d
		return in
	}

	switch {
	case f.Has(core.ActionUp):
		in.Turn = DirUp
	case f.Has(core.ActionDown):
		in.Turn = DirDown
	case f.Has(core.ActionLeft):
		in.Turn = DirLeft
	case f.Has(core.ActionRight):
		in.Turn = DirRight
	}
	return in
}

func directionOf(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	case core.ActionRight:
		return DirRight
	default:
		return DirNone
	}
}

// Step advances the simulation by one frame and returns what happened.
//
// The movement gate and the obstacle drift gate run on independent
// accumulators. After game over only a restart request is processed.
// A power-up collected during this frame does not lose the frame's dt:
// that time passed before the pickup, so the effect starts at full duration.
func Step(s *State, in Input, f Frame) []Event {
	s.Frames++
	s.Now = f.Now
	dt := max(f.Elapsed, 0)

	if s.Run == GameOver {
		if !in.Restart {
			return nil
		}
		s.Reset()
		return []Event{Restarted{}}
	}

	if in.TogglePause {
		if s.Run == Paused {
			s.Run = Running
		} else {
			s.Run = Paused
		}
	}
	if s.Run == Paused {
		return nil
	}

	if in.Turn != DirNone {
		s.Pending = in.Turn
	}

	var events []Event
	collected := false

	// Movement gate
	s.SinceMove += dt
	if s.SinceMove >= s.EffectiveInterval() {
		s.commitDirection()
		s.SinceMove = 0
		events, collected = s.move(events)
		if s.Run == GameOver {
			return events
		}
	}

	// Power-up countdown; a pickup made this frame starts its full duration
	if s.PowerActive && !collected {
		s.PowerRemaining -= dt
		if s.PowerRemaining <= 0 {
			s.PowerActive = false
			s.PowerRemaining = 0
			events = append(events, PowerUpExpired{})
		}
	}

	// Drift gate
	s.SinceDrift += dt
	for s.SinceDrift >= s.Rules.Obstacles.DriftPeriod {
		s.SinceDrift -= s.Rules.Obstacles.DriftPeriod
		events = append(events, Drift(s)...)
	}

	return events
}

// commitDirection applies the buffered direction unless it reverses the
// current one, in which case the request is dropped.
func (s *State) commitDirection() {
	if s.Pending != DirNone && s.Pending != s.Dir.Opposite() {
		s.Dir = s.Pending
	}
	s.Pending = s.Dir
}

// move executes one grid step. Checks run in a fixed order: self, obstacle,
// power-up, food. It reports whether a power-up was collected.
func (s *State) move(events []Event) ([]Event, bool) {
	dx, dy := s.Dir.Delta()
	next := s.Head().Add(dx, dy).Wrap(s.width(), s.height())

	// The tail still counts: it has not moved away yet
	if s.snakeAt(next) {
		return s.die(events, CauseSelf), false
	}
	if s.obstacleAt(next) >= 0 && !s.PowerActive {
		return s.die(events, CauseObstacle), false
	}

	collected := false
	if i := s.powerUpAt(next); i >= 0 {
		s.PowerUps = slices.Delete(s.PowerUps, i, i+1)
		s.PowerActive = true
		s.PowerRemaining = s.Rules.PowerUps.Duration
		s.Score += s.Rules.Scoring.PowerUp
		collected = true
		events = append(events, PowerUpCollected{Cell: next, Score: s.Score})
	}

	grow := s.HasFood && s.Food == next
	if grow {
		s.Score += s.Rules.Scoring.Food
		s.BaseInterval = max(s.Rules.Speed.MinInterval, s.BaseInterval-s.Rules.Speed.Step)
		s.HasFood = false
	}

	if !grow {
		s.Snake = s.Snake[:len(s.Snake)-1]
	}
	s.Snake = append(s.Snake, core.Point{})
	copy(s.Snake[1:], s.Snake)
	s.Snake[0] = next
	s.Moves++

	events = append(events, SnakeMoved{Body: slices.Clone(s.Snake), Score: s.Score})

	if !grow {
		return events, collected
	}

	// Food is relocated after the head lands so it cannot reuse that cell
	if !s.placeFood() {
		return s.die(events, CauseBoardFull), collected
	}
	events = append(events, FoodEaten{Food: s.Food, Score: s.Score})

	if s.rng.Float64() < s.Rules.PowerUps.FoodSpawnChance {
		if p, ok := s.trySpawnPowerUp(); ok {
			events = append(events, PowerUpSpawned{Cell: p})
		}
	}
	return events, collected
}

func (s *State) die(events []Event, cause DeathCause) []Event {
	s.Run = GameOver
	s.Cause = cause
	return append(events, GameEnded{Score: s.Score, Cause: cause})
}

// Drift runs one obstacle drift pass. Obstacles move in ascending ID order,
// each checked against the state left by the ones before it. A blocked
// destination leaves the obstacle in place.
func Drift(s *State) []Event {
	if s.Run != Running {
		return nil
	}

	var events []Event
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		d := Direction(s.rng.IntN(4) + 1)
		dx, dy := d.Delta()
		dest := o.Cell.Add(dx, dy).Wrap(s.width(), s.height())
		if dest == o.Cell || s.Occupied(dest) {
			continue
		}
		o.Cell = dest
		events = append(events, ObstacleMoved{ID: o.ID, Cell: dest})
	}
	return events
}
