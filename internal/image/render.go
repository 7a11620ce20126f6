package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/suprajagandikota3-max/designer-app/internal/layout"
)

const (
	// ShadowOffset is how far, in pixels right and down, the shadow is drawn.
	ShadowOffset = 2
	// ShadowDarken is subtracted from each text color channel for the shadow.
	ShadowDarken = 100
)

var (
	ErrEmptyText     = errors.New("text is empty")
	ErrInvalidCanvas = errors.New("invalid canvas size")
)

// Design holds everything needed for one render. It is built per request
// and never shared.
type Design struct {
	Text       string
	Background color.NRGBA
	Foreground color.NRGBA
	Width      int
	Height     int
	Alignment  layout.Alignment
	Padding    int
	Shadow     bool
	QR         bool
}

// Result is a finished render.
type Result struct {
	Image      *image.NRGBA
	PNG        []byte
	Origin     image.Point
	TextWidth  int
	TextHeight int
}

// Render draws d.Text onto a solid canvas using face and encodes the result as PNG.
func Render(d Design, face font.Face) (*Result, error) {
	if strings.TrimSpace(d.Text) == "" {
		return nil, ErrEmptyText
	}
	if d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, d.Width, d.Height)
	}
	if face == nil {
		return nil, errors.New("render: nil font face")
	}

	canvas := imaging.New(d.Width, d.Height, d.Background)

	// BoundString gives the pixel bounds of the glyphs relative to the dot.
	bounds, _ := font.BoundString(face, d.Text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x, y := layout.ComputeOrigin(layout.Request{
		Text:         d.Text,
		CanvasWidth:  d.Width,
		CanvasHeight: d.Height,
		TextWidth:    textW,
		TextHeight:   textH,
		Alignment:    d.Alignment,
		Padding:      d.Padding,
	})

	// The dot is on the baseline; shift it so the box's top-left lands on (x, y).
	dot := fixed.P(x-bounds.Min.X.Floor(), y-bounds.Min.Y.Floor())

	if d.Shadow {
		shadow := Darken(d.Foreground, ShadowDarken)
		drawText(canvas, face, d.Text, shadow, dot.Add(fixed.P(ShadowOffset, ShadowOffset)))
	}
	drawText(canvas, face, d.Text, d.Foreground, dot)

	if d.QR {
		stamped, err := stampQR(canvas, d.Text, d.Padding)
		if err != nil {
			return nil, fmt.Errorf("qr stamp: %w", err)
		}
		canvas = stamped
	}

	data, err := EncodePNG(canvas)
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:      canvas,
		PNG:        data,
		Origin:     image.Pt(x, y),
		TextWidth:  textW,
		TextHeight: textH,
	}, nil
}

func drawText(dst *image.NRGBA, face font.Face, text string, c color.NRGBA, dot fixed.Point26_6) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// stampQR pastes a QR code of text into the bottom-right corner, inset by margin.
func stampQR(canvas *image.NRGBA, text string, margin int) (*image.NRGBA, error) {
	b := canvas.Bounds()
	size := min(b.Dx(), b.Dy()) / 4
	qr, err := GenerateQRImage(text, size)
	if err != nil {
		return nil, err
	}
	qb := qr.Bounds()
	pos := image.Pt(b.Dx()-qb.Dx()-margin, b.Dy()-qb.Dy()-margin)
	return imaging.Paste(canvas, qr, pos), nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Preview scales img down to fit within maxWidth x maxHeight, keeping the
// aspect ratio. Smaller images are returned unchanged.
func Preview(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}
