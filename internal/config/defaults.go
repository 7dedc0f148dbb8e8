package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in rules.
// It mirrors defaults/snake.yaml and is the fallback if the embed fails to parse.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:  25,
			Height: 19,
		},
		Snake: SnakeBody{
			InitialLength: 5,
		},
		Speed: SpeedConfig{
			BaseInterval: 150 * time.Millisecond,
			MinInterval:  80 * time.Millisecond,
			Step:         2 * time.Millisecond,
			BoostFactor:  0.6,
		},
		Obstacles: ObstacleConfig{
			Count:       6,
			DriftPeriod: 1200 * time.Millisecond,
		},
		PowerUps: PowerUpConfig{
			SpawnChance:     0.4,
			FoodSpawnChance: 0.4,
			Duration:        5 * time.Second,
			MaxActive:       1,
		},
		Scoring: ScoringConfig{
			Food:    10,
			PowerUp: 50,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
