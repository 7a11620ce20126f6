package layout

import "testing"

func TestComputeOriginScenarios(t *testing.T) {
	tests := []struct {
		name  string
		align Alignment
		pad   int
		wantX int
		wantY int
	}{
		{"center", Center, 0, 300, 230},
		{"center ignores padding", Center, 55, 300, 230},
		{"left", Left, 20, 20, 230},
		{"right", Right, 20, 580, 230},
	}

	for _, tt := range tests {
		req := Request{
			Text:         "hello",
			CanvasWidth:  800,
			CanvasHeight: 500,
			TextWidth:    200,
			TextHeight:   40,
			Alignment:    tt.align,
			Padding:      tt.pad,
		}
		x, y := ComputeOrigin(req)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%s: ComputeOrigin = (%d, %d), want (%d, %d)", tt.name, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestComputeOriginHorizontalProperties(t *testing.T) {
	for w := 0; w <= 120; w += 7 {
		for tw := 0; tw <= w; tw += 5 {
			for pad := 0; pad <= 30; pad += 6 {
				base := Request{CanvasWidth: w, CanvasHeight: 50, TextWidth: tw, TextHeight: 10, Padding: pad}

				base.Alignment = Left
				if x, _ := ComputeOrigin(base); x != pad {
					t.Fatalf("left x = %d, want %d (w=%d tw=%d)", x, pad, w, tw)
				}

				base.Alignment = Right
				if x, _ := ComputeOrigin(base); x != w-tw-pad {
					t.Fatalf("right x = %d, want %d (w=%d tw=%d pad=%d)", x, w-tw-pad, w, tw, pad)
				}

				base.Alignment = Center
				cx, _ := ComputeOrigin(base)
				mirror := w - tw - cx
				if d := mirror - cx; d < -1 || d > 1 {
					t.Fatalf("center x = %d not symmetric (mirror %d, w=%d tw=%d)", cx, mirror, w, tw)
				}
			}
		}
	}
}

func TestComputeOriginVerticalIndependentOfAlignment(t *testing.T) {
	req := Request{CanvasWidth: 640, CanvasHeight: 333, TextWidth: 97, TextHeight: 41, Padding: 12}
	var ys []int
	for _, a := range []Alignment{Left, Center, Right} {
		req.Alignment = a
		_, y := ComputeOrigin(req)
		ys = append(ys, y)
	}
	if ys[0] != ys[1] || ys[1] != ys[2] {
		t.Errorf("vertical origin differs across alignments: %v", ys)
	}
	if ys[0] != (333-41)/2 {
		t.Errorf("y = %d, want %d", ys[0], (333-41)/2)
	}
}

func TestComputeOriginIdempotent(t *testing.T) {
	req := Request{Text: "x", CanvasWidth: 801, CanvasHeight: 499, TextWidth: 33, TextHeight: 17, Alignment: Center, Padding: 4}
	x1, y1 := ComputeOrigin(req)
	x2, y2 := ComputeOrigin(req)
	if x1 != x2 || y1 != y2 {
		t.Errorf("ComputeOrigin not idempotent: (%d,%d) vs (%d,%d)", x1, y1, x2, y2)
	}
}

func TestComputeOriginEmptyText(t *testing.T) {
	req := Request{CanvasWidth: 400, CanvasHeight: 300, Padding: 20}
	for _, a := range []Alignment{Left, Center, Right} {
		req.Alignment = a
		x, y := ComputeOrigin(req)
		if x < 0 || x > req.CanvasWidth {
			t.Errorf("%v: x = %d outside [0, %d]", a, x, req.CanvasWidth)
		}
		if y != 150 {
			t.Errorf("%v: y = %d, want 150", a, y)
		}
	}
}

func TestComputeOriginOverflowNotClamped(t *testing.T) {
	x, _ := ComputeOrigin(Request{CanvasWidth: 100, CanvasHeight: 100, Padding: 80, Alignment: Right})
	if x != 20 {
		t.Errorf("right x = %d, want 20", x)
	}
	x, _ = ComputeOrigin(Request{CanvasWidth: 100, CanvasHeight: 100, TextWidth: 150, Padding: 10, Alignment: Right})
	if x != -60 {
		t.Errorf("right x = %d, want -60", x)
	}
	x, y := ComputeOrigin(Request{CanvasWidth: 100, CanvasHeight: 20, TextWidth: 300, TextHeight: 60, Alignment: Center})
	if x != -100 || y != -20 {
		t.Errorf("center overflow = (%d, %d), want (-100, -20)", x, y)
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
	}{
		{"Left", Left},
		{"center", Center},
		{" RIGHT ", Right},
	}
	for _, tt := range tests {
		got, err := ParseAlignment(tt.in)
		if err != nil {
			t.Errorf("ParseAlignment(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlignment(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, _ := ParseAlignment(got.String()); back != got {
			t.Errorf("String round trip for %v gave %v", got, back)
		}
	}

	if _, err := ParseAlignment("justify"); err == nil {
		t.Error("expected error for unknown alignment")
	}
}
