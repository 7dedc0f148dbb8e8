package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarises the run for the platform after each frame.
type GameState struct {
	Score       int  // Current score
	GameOver    bool // Whether the run has ended
	Paused      bool // Whether the run is paused
	PowerActive bool // Whether the power-up effect is running
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State  GameState
	Events int // Number of simulation events emitted this frame
}
