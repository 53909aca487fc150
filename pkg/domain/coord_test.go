package domain

import "testing"

func TestCoordFlanks(t *testing.T) {
	c := Coord{X: 2, Y: -1}

	tests := []struct {
		dir  Direction
		want [2]Coord
	}{
		{North, [2]Coord{{1, 0}, {3, 0}}},
		{East, [2]Coord{{3, -2}, {3, 0}}},
		{South, [2]Coord{{3, -2}, {1, -2}}},
		{West, [2]Coord{{1, 0}, {1, -2}}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := c.Flanks(tt.dir); got != tt.want {
				t.Errorf("Flanks(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestCoordStep(t *testing.T) {
	c := Coord{X: 1, Y: 1}
	if got := c.Step(North, 2); got != (Coord{1, 3}) {
		t.Errorf("Step(North, 2) = %v", got)
	}
	if got := c.Step(West, 1); got != (Coord{0, 1}) {
		t.Errorf("Step(West, 1) = %v", got)
	}
	for _, d := range Directions {
		if got := c.Step(d, 1).Step(d.Opposite(), 1); got != c {
			t.Errorf("%v then %v should return to %v, got %v", d, d.Opposite(), c, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("up-ish"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestBoundContains(t *testing.T) {
	b := Bound{North: 1, East: 2, South: 0, West: 1}

	if !b.Contains(Coord{2, 1}) {
		t.Error("(2,1) should be inside")
	}
	if b.Contains(Coord{0, -1}) {
		t.Error("(0,-1) should be outside (south extent is 0)")
	}
	if b.Width() != 4 || b.Height() != 2 {
		t.Errorf("size = %dx%d, want 4x2", b.Width(), b.Height())
	}
}

func TestParseRemovalPolicy(t *testing.T) {
	if p, err := ParseRemovalPolicy(""); err != nil || p != PolicyGateway {
		t.Errorf("empty policy = %v, %v", p, err)
	}
	if p, err := ParseRemovalPolicy("direct"); err != nil || p != PolicyDirect {
		t.Errorf("direct policy = %v, %v", p, err)
	}
	if _, err := ParseRemovalPolicy("aggressive"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
