package snake

import "github.com/vovakirdan/drift-snake/internal/core"

// Occupied reports whether any snake segment, obstacle, power-up or the food
// sits on p. Every placement routine goes through it.
func (s *State) Occupied(p core.Point) bool {
	if s.HasFood && s.Food == p {
		return true
	}
	return s.snakeAt(p) || s.obstacleAt(p) >= 0 || s.powerUpAt(p) >= 0
}

func (s *State) snakeAt(p core.Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// obstacleAt returns the index of the obstacle on p, or -1.
func (s *State) obstacleAt(p core.Point) int {
	for i, o := range s.Obstacles {
		if o.Cell == p {
			return i
		}
	}
	return -1
}

// powerUpAt returns the index of the power-up on p, or -1.
func (s *State) powerUpAt(p core.Point) int {
	for i, c := range s.PowerUps {
		if c == p {
			return i
		}
	}
	return -1
}

// freeCells counts cells not covered by Occupied.
func (s *State) freeCells() int {
	n := 0
	for y := range s.height() {
		for x := range s.width() {
			if !s.Occupied(core.Point{X: x, Y: y}) {
				n++
			}
		}
	}
	return n
}

// randomFreeCell draws uniformly random cells until one is free.
// It reports false instead of looping forever when the board is full.
func (s *State) randomFreeCell() (core.Point, bool) {
	if s.freeCells() == 0 {
		return core.Point{}, false
	}
	for {
		p := core.Point{X: s.rng.IntN(s.width()), Y: s.rng.IntN(s.height())}
		if !s.Occupied(p) {
			return p, true
		}
	}
}

// placeFood relocates the food to a free cell.
func (s *State) placeFood() bool {
	s.HasFood = false
	p, ok := s.randomFreeCell()
	if !ok {
		return false
	}
	s.Food = p
	s.HasFood = true
	return true
}

// placeObstacle adds one obstacle with the next free ID.
func (s *State) placeObstacle() bool {
	p, ok := s.randomFreeCell()
	if !ok {
		return false
	}
	s.Obstacles = append(s.Obstacles, Obstacle{ID: len(s.Obstacles), Cell: p})
	return true
}

// trySpawnPowerUp runs one spawn attempt. The cap is checked before the
// Bernoulli draw so a full board of power-ups does not consume randomness.
func (s *State) trySpawnPowerUp() (core.Point, bool) {
	if len(s.PowerUps) >= s.Rules.PowerUps.MaxActive {
		return core.Point{}, false
	}
	if s.rng.Float64() >= s.Rules.PowerUps.SpawnChance {
		return core.Point{}, false
	}
	p, ok := s.randomFreeCell()
	if !ok {
		return core.Point{}, false
	}
	s.PowerUps = append(s.PowerUps, p)
	return p, true
}
