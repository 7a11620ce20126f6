// Package layout positions a measured block of text inside a canvas.
//
// Text is placed flush-left, centered or flush-right horizontally and is always
// centered vertically. No clamping is done: text wider than the canvas, or
// padding larger than half the canvas, yields an origin partly off-canvas.
package layout

import (
	"fmt"
	"strings"
)

// Alignment is the horizontal placement policy.
type Alignment int

const (
	Left Alignment = iota
	Center
	Right
)

func (a Alignment) String() string {
	switch a {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Center"
	}
}

// ParseAlignment converts "left", "center" or "right" (any case) to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "center", "centre":
		return Center, nil
	case "right":
		return Right, nil
	default:
		return Center, fmt.Errorf("invalid alignment %q: must be left, center, or right", s)
	}
}

// Request describes one text placement. TextWidth and TextHeight are the
// pixel bounding box of Text in the font it will be drawn with.
type Request struct {
	Text         string
	CanvasWidth  int
	CanvasHeight int
	TextWidth    int
	TextHeight   int
	Alignment    Alignment
	Padding      int
}

// ComputeOrigin returns the top-left corner at which the text box is drawn.
func ComputeOrigin(req Request) (x, y int) {
	switch req.Alignment {
	case Left:
		x = req.Padding
	case Right:
		x = req.CanvasWidth - req.TextWidth - req.Padding
	default:
		x = (req.CanvasWidth - req.TextWidth) / 2
	}
	y = (req.CanvasHeight - req.TextHeight) / 2
	return x, y
}
