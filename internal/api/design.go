package api

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"

	"github.com/suprajagandikota3-max/designer-app/internal/config"
	imagepkg "github.com/suprajagandikota3-max/designer-app/internal/image"
	"github.com/suprajagandikota3-max/designer-app/internal/layout"
	"github.com/suprajagandikota3-max/designer-app/internal/util"
)

// DownloadFilename is the file name offered for every design download.
const DownloadFilename = "my_advanced_design.png"

// outputFilename is written to the output directory after each render.
const outputFilename = "design.png"

// designForm is the user input for one design, from an HTML form or JSON.
type designForm struct {
	Text       string `form:"text" json:"text"`
	FontSize   int    `form:"font_size" json:"font_size"`
	Alignment  string `form:"alignment" json:"alignment"`
	Background string `form:"background" json:"background"`
	Foreground string `form:"foreground" json:"foreground"`
	Width      int    `form:"width" json:"width"`
	Height     int    `form:"height" json:"height"`
	Padding    int    `form:"padding" json:"padding"`
	Font       string `form:"font" json:"font"`
	Shadow     bool   `form:"shadow" json:"shadow"`
	QR         bool   `form:"qr" json:"qr"`
}

// defaultForm returns a form filled with the configured defaults. Binding
// only overwrites the fields present in the request.
func defaultForm(cv config.CanvasConfig) designForm {
	return designForm{
		FontSize:   cv.FontSize,
		Alignment:  cv.Alignment,
		Background: cv.Background,
		Foreground: cv.Foreground,
		Width:      cv.Width,
		Height:     cv.Height,
		Padding:    cv.Padding,
		Font:       cv.Font,
	}
}

// errEmptyText is shown when the text field is blank.
var errEmptyText = &validationError{msg: "Please enter some text first!"}

// validationError marks user input problems; handlers answer them with 400.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// isValidation reports whether err was caused by bad user input.
func isValidation(err error) bool {
	var ve *validationError
	return errors.As(err, &ve) || errors.Is(err, imagepkg.ErrEmptyText) || errors.Is(err, imagepkg.ErrInvalidCanvas)
}

// toDesign checks f against the canvas bounds and converts it.
func toDesign(f designForm, cv config.CanvasConfig) (imagepkg.Design, error) {
	if strings.TrimSpace(f.Text) == "" {
		return imagepkg.Design{}, errEmptyText
	}
	if !cv.WidthRange.Contains(f.Width) {
		return imagepkg.Design{}, invalid("width must be between %d and %d", cv.WidthRange.Min, cv.WidthRange.Max)
	}
	if !cv.HeightRange.Contains(f.Height) {
		return imagepkg.Design{}, invalid("height must be between %d and %d", cv.HeightRange.Min, cv.HeightRange.Max)
	}
	if !cv.FontSizeRange.Contains(f.FontSize) {
		return imagepkg.Design{}, invalid("font size must be between %d and %d", cv.FontSizeRange.Min, cv.FontSizeRange.Max)
	}
	if f.Padding < 0 || f.Padding > cv.MaxPadding {
		return imagepkg.Design{}, invalid("padding must be between 0 and %d", cv.MaxPadding)
	}
	align, err := layout.ParseAlignment(f.Alignment)
	if err != nil {
		return imagepkg.Design{}, invalid("%v", err)
	}
	bg, err := imagepkg.ParseHexColor(f.Background)
	if err != nil {
		return imagepkg.Design{}, invalid("background: %v", err)
	}
	fg, err := imagepkg.ParseHexColor(f.Foreground)
	if err != nil {
		return imagepkg.Design{}, invalid("text color: %v", err)
	}

	return imagepkg.Design{
		Text:       f.Text,
		Background: bg,
		Foreground: fg,
		Width:      f.Width,
		Height:     f.Height,
		Alignment:  align,
		Padding:    f.Padding,
		Shadow:     f.Shadow,
		QR:         f.QR,
	}, nil
}

// rendered is a finished design plus how its font was resolved.
type rendered struct {
	*imagepkg.Result
	FontFallback bool
}

// render validates f, resolves its font and draws it. It touches no session
// state; callers record the outcome.
func (h *Handlers) render(f designForm) (*rendered, error) {
	d, err := toDesign(f, h.canvas)
	if err != nil {
		return nil, err
	}

	face, fellBack := h.fonts.Face(f.Font, float64(f.FontSize))
	defer closeFace(face)

	res, err := imagepkg.Render(d, face)
	if err != nil {
		return nil, err
	}
	h.writeOutput(res.PNG)
	return &rendered{Result: res, FontFallback: fellBack}, nil
}

// writeOutput stores the latest design in the output directory, if configured.
func (h *Handlers) writeOutput(data []byte) {
	if h.outputDir == "" {
		return
	}
	path := filepath.Join(h.outputDir, outputFilename)
	if err := util.WriteFileAtomic(path, data, 0o644); err != nil {
		slog.Warn("failed to write design output", "path", path, "error", err)
	}
}

func closeFace(face font.Face) {
	if face != nil {
		_ = face.Close()
	}
}
