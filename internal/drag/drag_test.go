package drag

import "testing"

func TestRegionString(t *testing.T) {
	tests := []struct {
		region   Region
		expected string
	}{
		{Center, "center"},
		{LeftEdge, "left-edge"},
		{RightEdge, "right-edge"},
		{Region(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.region.String(); got != tt.expected {
				t.Errorf("Region.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRegionIsEdge(t *testing.T) {
	if !LeftEdge.IsEdge() || !RightEdge.IsEdge() {
		t.Error("edges should report IsEdge")
	}
	if Center.IsEdge() {
		t.Error("center should not report IsEdge")
	}
}

func TestEdgeSize(t *testing.T) {
	tests := []struct {
		width, want float64
	}{
		{40, 8},
		{24, 8},
		{12, 4},
		{3, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := EdgeSize(tt.width, DefaultEdgeCap); got != tt.want {
			t.Errorf("EdgeSize(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		offset, width float64
		want          Region
	}{
		{"left boundary", 0, 40, LeftEdge},
		{"inside left zone", 2, 40, LeftEdge},
		{"left zone limit", 8, 40, LeftEdge},
		{"just past left zone", 8.5, 40, Center},
		{"middle", 20, 40, Center},
		{"right zone limit", 32, 40, RightEdge},
		{"right boundary", 40, 40, RightEdge},
		{"narrow note middle", 6, 12, Center},
		{"narrow note right", 9, 12, RightEdge},
		{"zero width note", 0, 0, LeftEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.offset, tt.width); got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.offset, tt.width, got, tt.want)
			}
		})
	}
}

func TestClassifyEndpoints(t *testing.T) {
	for w := 1.0; w <= 200; w += 1.5 {
		if got := Classify(0, w); got != LeftEdge {
			t.Errorf("Classify(0, %v) = %s, want left-edge", w, got)
		}
		if got := Classify(w, w); got != RightEdge {
			t.Errorf("Classify(%v, %v) = %s, want right-edge", w, w, got)
		}
	}
}

func TestClassifyCenterBand(t *testing.T) {
	const c = DefaultEdgeCap
	for w := 2 * c; w <= 120; w += 4 {
		for o := c + 0.5; o < w-c; o += 0.5 {
			if got := Classify(o, w); got != Center {
				t.Fatalf("Classify(%v, %v) = %s, want center", o, w, got)
			}
		}
	}
}

func TestClassifyOverlapPrefersLeft(t *testing.T) {
	// Both zones claim the offset only for degenerate widths.
	if got := Classify(0, 0); got != LeftEdge {
		t.Errorf("Classify(0, 0) = %s, want left-edge", got)
	}
	if got := Classify(-2, -3); got != LeftEdge {
		t.Errorf("Classify(-2, -3) = %s, want left-edge", got)
	}
}

func TestClassifyWithCap(t *testing.T) {
	if got := ClassifyWithCap(10, 100, 12); got != LeftEdge {
		t.Errorf("ClassifyWithCap(10, 100, 12) = %s, want left-edge", got)
	}
	if got := ClassifyWithCap(10, 100, 8); got != Center {
		t.Errorf("ClassifyWithCap(10, 100, 8) = %s, want center", got)
	}
}
