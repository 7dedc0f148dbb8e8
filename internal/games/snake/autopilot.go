package snake

import "github.com/vovakirdan/drift-snake/internal/core"

// Steer picks a greedy direction towards the food that does not end the run
// on the next move. It prefers the current heading on ties and keeps it when
// every option is fatal. Steer reads the state and never consumes randomness.
func Steer(s *State) Direction {
	if len(s.Snake) == 0 {
		return DirNone
	}

	candidates := []Direction{s.Dir, DirRight, DirDown, DirLeft, DirUp}
	best, bestDist := DirNone, -1
	for _, d := range candidates {
		if d == s.Dir.Opposite() {
			continue
		}
		dx, dy := d.Delta()
		next := s.Head().Add(dx, dy).Wrap(s.width(), s.height())
		if s.lethal(next) {
			continue
		}
		dist := 0
		if s.HasFood {
			dist = torusDistance(next, s.Food, s.width(), s.height())
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}

	if best == DirNone {
		return s.Dir
	}
	return best
}

func (s *State) lethal(p core.Point) bool {
	if s.snakeAt(p) {
		return true
	}
	return s.obstacleAt(p) >= 0 && !s.PowerActive
}

// torusDistance is the Manhattan distance on a wrapping board.
func torusDistance(a, b core.Point, w, h int) int {
	dx := core.Abs(a.X - b.X)
	dy := core.Abs(a.Y - b.Y)
	return min(dx, w-dx) + min(dy, h-dy)
}
