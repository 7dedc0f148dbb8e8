package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configName is the file name looked up in the user and local config dirs.
const configName = "snake.yaml"

// LoadSnake loads the simulation rules.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadSnake(customPath string) (SnakeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the default rules and validates the result.
func Parse(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// Encode renders the rules as YAML.
func Encode(cfg SnakeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// ErrSaturated is returned when the initial placement cannot fit on the board.
var ErrSaturated = errors.New("config: board too small for snake, obstacles, food and power-up")

// Validate checks that the rules describe a playable board.
// Rejection-sampled placement needs free cells, so the initial snake, all
// obstacles, the food and one power-up must leave at least one cell empty.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Board.Width < 3 || c.Board.Height < 3:
		return fmt.Errorf("config: board must be at least 3x3, got %dx%d", c.Board.Width, c.Board.Height)
	case c.Snake.InitialLength < 1:
		return fmt.Errorf("config: initial_length must be positive, got %d", c.Snake.InitialLength)
	case c.Snake.InitialLength > c.Board.Width:
		return fmt.Errorf("config: initial_length %d does not fit a row of %d cells", c.Snake.InitialLength, c.Board.Width)
	case c.Speed.BaseInterval <= 0 || c.Speed.MinInterval <= 0:
		return fmt.Errorf("config: speed intervals must be positive")
	case c.Speed.MinInterval > c.Speed.BaseInterval:
		return fmt.Errorf("config: min_interval %s exceeds base_interval %s", c.Speed.MinInterval, c.Speed.BaseInterval)
	case c.Speed.Step < 0:
		return fmt.Errorf("config: speed step must not be negative")
	case c.Speed.BoostFactor <= 0 || c.Speed.BoostFactor > 1:
		return fmt.Errorf("config: boost_factor must be in (0, 1], got %g", c.Speed.BoostFactor)
	case c.Obstacles.Count < 0:
		return fmt.Errorf("config: obstacle count must not be negative")
	case c.Obstacles.DriftPeriod <= 0:
		return fmt.Errorf("config: drift_period must be positive")
	case !isProbability(c.PowerUps.SpawnChance) || !isProbability(c.PowerUps.FoodSpawnChance):
		return fmt.Errorf("config: power-up chances must be within [0, 1]")
	case c.PowerUps.Duration <= 0:
		return fmt.Errorf("config: power-up duration must be positive")
	case c.PowerUps.MaxActive < 0:
		return fmt.Errorf("config: max_active must not be negative")
	case c.Scoring.Food < 0 || c.Scoring.PowerUp < 0:
		return fmt.Errorf("config: rewards must not be negative")
	}

	if c.Snake.InitialLength+c.Obstacles.Count+2 >= c.Cells() {
		return ErrSaturated
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
