package core

import "testing"

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		v, n     int
		expected int
	}{
		{"inside", 3, 10, 3},
		{"zero", 0, 10, 0},
		{"right edge", 10, 10, 0},
		{"past right edge", 12, 10, 2},
		{"left edge", -1, 10, 9},
		{"far left", -11, 10, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.v, tc.n); got != tc.expected {
				t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.v, tc.n, got, tc.expected)
			}
		})
	}
}

func TestPointWrap(t *testing.T) {
	p := Point{X: 25, Y: -1}.Wrap(25, 19)
	if p != (Point{X: 0, Y: 18}) {
		t.Errorf("Wrap() = %+v, expected {0 18}", p)
	}

	q := Point{X: 24, Y: 9}.Add(1, 0).Wrap(25, 19)
	if q != (Point{X: 0, Y: 9}) {
		t.Errorf("moving right off the edge gave %+v, expected {0 9}", q)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestAbs(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}
