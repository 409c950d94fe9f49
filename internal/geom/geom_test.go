package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}

	tests := []struct {
		name   string
		p      Point
		expect bool
	}{
		{"inside", Pt(15, 30), true},
		{"top-left corner", Pt(10, 20), true},
		{"bottom-right corner", Pt(40, 60), true},
		{"left of rect", Pt(9, 30), false},
		{"above rect", Pt(15, 19), false},
		{"past right edge", Pt(40.5, 30), false},
		{"far outside", Pt(100, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.expect {
				t.Errorf("Rect%+v.Contains(%v) = %v, want %v", r, tt.p, got, tt.expect)
			}
		})
	}
}

func TestRectContainsZeroSize(t *testing.T) {
	r := Rect{X: 5, Y: 5}
	if !r.Contains(Pt(5, 5)) {
		t.Error("zero-size rect should contain its origin")
	}
	if r.Contains(Pt(5, 6)) {
		t.Error("zero-size rect should not contain other points")
	}
}

func TestRectHit(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name   string
		p      Point
		expect bool
	}{
		{"origin", Pt(0, 0), true},
		{"just inside right", Pt(9.99, 5), true},
		{"right edge exclusive", Pt(10, 5), false},
		{"bottom edge exclusive", Pt(5, 10), false},
		{"negative", Pt(-1, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Hit(tt.p); got != tt.expect {
				t.Errorf("Hit(%v) = %v, want %v", tt.p, got, tt.expect)
			}
		})
	}

	if (Rect{X: 0, Y: 0, Width: 0, Height: 10}).Hit(Pt(0, 0)) {
		t.Error("zero-width rect should never be hit")
	}
}

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Rect
	}{
		{"down-right", Pt(10, 10), Pt(30, 40), Rect{10, 10, 20, 30}},
		{"up-left", Pt(30, 40), Pt(10, 10), Rect{10, 10, 20, 30}},
		{"up-right", Pt(10, 40), Pt(30, 10), Rect{10, 10, 20, 30}},
		{"same point", Pt(5, 5), Pt(5, 5), Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectFromPoints(tt.a, tt.b); got != tt.want {
				t.Errorf("RectFromPoints(%v, %v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectTranslateAndMoveTo(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 5, Height: 6}

	moved := r.Translate(Pt(-3, 4))
	if moved != (Rect{7, 24, 5, 6}) {
		t.Errorf("Translate = %+v", moved)
	}

	placed := r.MoveTo(Pt(0, 0))
	if placed != (Rect{0, 0, 5, 6}) {
		t.Errorf("MoveTo = %+v", placed)
	}

	if r.Right() != 15 || r.Bottom() != 26 {
		t.Errorf("Right/Bottom = %v/%v, want 15/26", r.Right(), r.Bottom())
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, 1)

	if got := p.Sub(q); got != Pt(2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Add(q); got != Pt(4, 5) {
		t.Errorf("Add = %v", got)
	}
	if !(Point{}).IsZero() || p.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestNumericHelpers(t *testing.T) {
	if Abs(-2.5) != 2.5 || Abs(3) != 3 {
		t.Error("Abs mismatch")
	}
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp int mismatch")
	}
	if Clamp(0.5, 1.0, 2.0) != 1.0 {
		t.Error("Clamp float mismatch")
	}
}
