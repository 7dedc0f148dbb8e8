package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplySnakePreset modifies the rules based on a difficulty preset.
// Normal and empty keep the loaded rules untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.BaseInterval = 200 * time.Millisecond
		cfg.Obstacles.Count = 3
		cfg.Obstacles.DriftPeriod = 2 * time.Second
	case DifficultyHard:
		cfg.Speed.BaseInterval = 110 * time.Millisecond
		cfg.Obstacles.Count = 10
		cfg.Obstacles.DriftPeriod = 800 * time.Millisecond
	}

	// Keep the floor consistent with a faster start
	if cfg.Speed.MinInterval > cfg.Speed.BaseInterval {
		cfg.Speed.MinInterval = cfg.Speed.BaseInterval
	}
}
