package snake

import "github.com/vovakirdan/drift-snake/internal/core"

// DeathCause tells why a run ended.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseSelf
	CauseObstacle
	CauseBoardFull // Food could not be relocated
)

func (c DeathCause) String() string {
	switch c {
	case CauseSelf:
		return "self"
	case CauseObstacle:
		return "obstacle"
	case CauseBoardFull:
		return "board_full"
	default:
		return "none"
	}
}

// Event is an outcome emitted by Step or Drift.
// Events are values; the simulation keeps no reference to them.
type Event interface {
	simEvent()
}

// SnakeMoved is emitted after every completed move.
type SnakeMoved struct {
	Body  []core.Point // Head first
	Score int
}

// FoodEaten carries the cell the food was relocated to.
type FoodEaten struct {
	Food  core.Point
	Score int
}

// PowerUpSpawned is emitted when a spawn attempt places a power-up.
type PowerUpSpawned struct {
	Cell core.Point
}

// PowerUpCollected is emitted when the head picks up a power-up.
type PowerUpCollected struct {
	Cell  core.Point
	Score int
}

// PowerUpExpired is emitted when the immunity timer runs out.
type PowerUpExpired struct{}

// ObstacleMoved is emitted when a drift changes an obstacle's cell.
type ObstacleMoved struct {
	ID   int
	Cell core.Point
}

// GameEnded is emitted once per run on the fatal move.
type GameEnded struct {
	Score int
	Cause DeathCause
}

// Restarted is emitted after an explicit restart.
type Restarted struct{}

func (SnakeMoved) simEvent()       {}
func (FoodEaten) simEvent()        {}
func (PowerUpSpawned) simEvent()   {}
func (PowerUpCollected) simEvent() {}
func (PowerUpExpired) simEvent()   {}
func (ObstacleMoved) simEvent()    {}
func (GameEnded) simEvent()        {}
func (Restarted) simEvent()        {}
