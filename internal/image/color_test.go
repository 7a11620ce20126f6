package imagepkg

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#DA7756", color.NRGBA{R: 0xDA, G: 0x77, B: 0x56, A: 255}},
		{"#FFFFFF", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}},
		{"#000000", color.NRGBA{R: 0, G: 0, B: 0, A: 255}},
		{"1a2b3c", color.NRGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
	}

	for _, tt := range tests {
		c, err := ParseHexColor(tt.input)
		if err != nil {
			t.Errorf("ParseHexColor(%q) error: %v", tt.input, err)
			continue
		}
		if c != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, c, tt.want)
		}
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, s := range []string{"#FFF", "#GGGGGG", "", "12345", "#1234567"} {
		if _, err := ParseHexColor(s); err == nil {
			t.Errorf("ParseHexColor(%q) expected error, got nil", s)
		}
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor(color.NRGBA{R: 0xDA, G: 0x77, B: 0x06, A: 10}); got != "#da7706" {
		t.Errorf("HexColor = %q, want #da7706", got)
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		in     color.NRGBA
		amount uint8
		want   color.NRGBA
	}{
		{color.NRGBA{255, 255, 255, 255}, 100, color.NRGBA{155, 155, 155, 255}},
		{color.NRGBA{200, 50, 99, 255}, 100, color.NRGBA{100, 0, 0, 255}},
		{color.NRGBA{10, 20, 30, 128}, 0, color.NRGBA{10, 20, 30, 128}},
		{color.NRGBA{0, 0, 0, 255}, 255, color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := Darken(tt.in, tt.amount); got != tt.want {
			t.Errorf("Darken(%v, %d) = %v, want %v", tt.in, tt.amount, got, tt.want)
		}
	}
}
