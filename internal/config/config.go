// Package config provides YAML-based rule loading and difficulty presets
// for the snake simulation.
package config

import "time"

// SnakeConfig contains all tunable rules of the simulation.
type SnakeConfig struct {
	Board     BoardConfig    `yaml:"board"`
	Snake     SnakeBody      `yaml:"snake"`
	Speed     SpeedConfig    `yaml:"speed"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	PowerUps  PowerUpConfig  `yaml:"powerups"`
	Scoring   ScoringConfig  `yaml:"scoring"`
}

// BoardConfig defines the toroidal grid size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeBody defines the snake placed at the start of every run.
type SnakeBody struct {
	InitialLength int `yaml:"initial_length"`
}

// SpeedConfig defines the movement gate.
type SpeedConfig struct {
	BaseInterval time.Duration `yaml:"base_interval"` // Starting time between moves
	MinInterval  time.Duration `yaml:"min_interval"`  // Floor for the base interval
	Step         time.Duration `yaml:"step"`          // Reduction per food eaten
	BoostFactor  float64       `yaml:"boost_factor"`  // Interval multiplier while powered up
}

// ObstacleConfig defines the drifting obstacles.
type ObstacleConfig struct {
	Count       int           `yaml:"count"`
	DriftPeriod time.Duration `yaml:"drift_period"`
}

// PowerUpConfig defines power-up spawning and the effect it grants.
type PowerUpConfig struct {
	SpawnChance     float64       `yaml:"spawn_chance"`      // Success chance of any spawn attempt
	FoodSpawnChance float64       `yaml:"food_spawn_chance"` // Chance that eating food triggers an attempt
	Duration        time.Duration `yaml:"duration"`          // Length of the immunity/boost effect
	MaxActive       int           `yaml:"max_active"`        // Power-ups allowed on the board at once
}

// ScoringConfig defines the fixed rewards.
type ScoringConfig struct {
	Food    int `yaml:"food"`
	PowerUp int `yaml:"powerup"`
}

// Cells returns the number of cells on the board.
func (c SnakeConfig) Cells() int {
	return c.Board.Width * c.Board.Height
}
