package snake

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/drift-snake/internal/config"
	"github.com/vovakirdan/drift-snake/internal/core"
)

// Direction represents a unit step on the board.
type Direction int

const (
	DirNone Direction = iota // No direction requested
	DirRight
	DirDown
	DirLeft
	DirUp
)

// Delta returns the unit vector of the direction. Up decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Action returns the input action that requests this direction.
func (d Direction) Action() core.Action {
	switch d {
	case DirRight:
		return core.ActionRight
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	case DirUp:
		return core.ActionUp
	default:
		return core.ActionNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// RunState is the lifecycle of a run.
type RunState int

const (
	Running RunState = iota
	Paused
	GameOver
)

func (r RunState) String() string {
	switch r {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Obstacle is a drifting blocker. IDs are stable for the whole run so the
// presentation layer can key its drawables on them.
type Obstacle struct {
	ID   int
	Cell core.Point
}

// State holds everything the simulation knows. It is mutated only by Step,
// Drift and Reset; callers read it through Snapshot.
type State struct {
	Rules config.SnakeConfig

	Snake   []core.Point // Head at index 0
	Dir     Direction    // Direction applied on the last completed move
	Pending Direction    // Buffered request, committed on the next move

	Food      core.Point
	HasFood   bool
	Obstacles []Obstacle
	PowerUps  []core.Point

	PowerActive    bool
	PowerRemaining time.Duration

	Score        int
	BaseInterval time.Duration
	SinceMove    time.Duration
	SinceDrift   time.Duration

	Run   RunState
	Cause DeathCause

	Moves  uint64        // Completed moves since the last reset
	Frames uint64        // Frames stepped since creation
	Now    time.Duration // Timestamp of the last frame

	rng *rand.Rand
}

// NewState creates a running simulation with deterministic randomness.
// rules must pass config.Validate.
func NewState(rules config.SnakeConfig, seed int64) *State {
	s := &State{
		Rules: rules,
		rng:   rand.New(rand.NewPCG(uint64(seed), 0)),
	}
	s.Reset()
	return s
}

// Reset re-initialises the run and re-runs the initial placement:
// snake, food, obstacles, then one power-up attempt.
// The random stream continues, so restarts stay reproducible.
func (s *State) Reset() {
	s.Snake = s.Snake[:0]
	s.Obstacles = nil
	s.PowerUps = nil
	s.HasFood = false
	s.PowerActive = false
	s.PowerRemaining = 0
	s.Score = 0
	s.BaseInterval = s.Rules.Speed.BaseInterval
	s.SinceMove = 0
	s.SinceDrift = 0
	s.Run = Running
	s.Cause = CauseNone
	s.Moves = 0
	s.Dir = DirRight
	s.Pending = DirRight

	w, h := s.width(), s.height()
	startX, startY := w/2, h/2
	for i := range s.Rules.Snake.InitialLength {
		s.Snake = append(s.Snake, core.Point{X: startX - i, Y: startY}.Wrap(w, h))
	}

	s.placeFood()
	for range s.Rules.Obstacles.Count {
		s.placeObstacle()
	}
	s.trySpawnPowerUp()
}

// EffectiveInterval is the current movement gate threshold.
func (s *State) EffectiveInterval() time.Duration {
	if s.PowerActive {
		return time.Duration(float64(s.BaseInterval) * s.Rules.Speed.BoostFactor)
	}
	return s.BaseInterval
}

// Head returns the head cell.
func (s *State) Head() core.Point {
	return s.Snake[0]
}

func (s *State) width() int {
	return s.Rules.Board.Width
}

func (s *State) height() int {
	return s.Rules.Board.Height
}
