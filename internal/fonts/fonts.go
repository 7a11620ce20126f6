// Package fonts resolves font names to faces with an explicit fallback.
//
// Fonts are discovered under a directory with a doublestar pattern and named by
// their file name without extension ("fonts/Inter-Bold.ttf" is "Inter-Bold").
// Any failure to use a named font falls back to the built-in Go Regular font,
// and if that cannot be parsed either, to basicfont.Face7x13. Face never fails.
package fonts

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	sfnt "github.com/tdewolff/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultPattern matches the font files the loader understands.
const DefaultPattern = "**/*.{ttf,otf,woff2}"

var (
	builtinOnce sync.Once
	builtin     *opentype.Font
)

// builtinFont returns the parsed Go Regular font, or nil if it fails to parse.
func builtinFont() *opentype.Font {
	builtinOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			slog.Warn("built-in font unavailable, using basicfont", "error", err)
			return
		}
		builtin = f
	})
	return builtin
}

// Loader discovers and caches fonts found under a directory.
type Loader struct {
	dir     string
	pattern string

	mu      sync.Mutex
	scanned bool
	paths   map[string]string // name -> path relative to dir
	parsed  map[string]*opentype.Font
}

// NewLoader creates a Loader for fonts under dir matching pattern. An empty
// pattern uses [DefaultPattern]. An empty dir disables discovery.
func NewLoader(dir, pattern string) *Loader {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Loader{
		dir:     dir,
		pattern: pattern,
		paths:   map[string]string{},
		parsed:  map[string]*opentype.Font{},
	}
}

// Dir returns the directory the loader scans.
func (l *Loader) Dir() string { return l.dir }

// Names returns the discovered font names, sorted.
func (l *Loader) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scanLocked()

	names := make([]string, 0, len(l.paths))
	for name := range l.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops cached fonts; the directory is rescanned on next use.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scanned = false
	l.paths = map[string]string{}
	l.parsed = map[string]*opentype.Font{}
}

// Face returns a face for the named font at size points (72 DPI). fellBack
// reports that name was given but could not be used, so the built-in font
// was returned instead. The caller owns the face and should Close it.
func (l *Loader) Face(name string, size float64) (face font.Face, fellBack bool) {
	if name != "" {
		f, err := l.font(name)
		if err == nil {
			face, err = newFace(f, size)
		}
		if err == nil {
			return face, false
		}
		slog.Debug("font unavailable, using default", "font", name, "error", err)
		fellBack = true
	}
	return DefaultFace(size), fellBack
}

// DefaultFace returns the built-in font at size points.
func DefaultFace(size float64) font.Face {
	if f := builtinFont(); f != nil {
		if face, err := newFace(f, size); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %g", size)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// font returns the parsed font for name, loading it on first use.
func (l *Loader) font(name string) (*opentype.Font, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.parsed[name]; ok {
		return f, nil
	}
	l.scanLocked()
	rel, ok := l.paths[name]
	if !ok {
		return nil, fmt.Errorf("font %q not found in %q", name, l.dir)
	}

	data, err := fs.ReadFile(os.DirFS(l.dir), rel)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", rel, err)
	}
	data, err = maybeConvertWOFF2(rel, data)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", rel, err)
	}
	l.parsed[name] = f
	return f, nil
}

// scanLocked globs the font directory once. l.mu must be held.
func (l *Loader) scanLocked() {
	if l.scanned {
		return
	}
	l.scanned = true
	if l.dir == "" {
		return
	}

	matches, err := doublestar.Glob(os.DirFS(l.dir), l.pattern)
	if err != nil {
		slog.Debug("font discovery failed", "dir", l.dir, "pattern", l.pattern, "error", err)
		return
	}
	sort.Strings(matches)
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), path.Ext(m))
		if _, dup := l.paths[name]; dup {
			slog.Debug("duplicate font name, keeping first", "font", name, "path", m)
			continue
		}
		l.paths[name] = m
	}
	slog.Debug("fonts discovered", "dir", l.dir, "count", len(l.paths))
}

// maybeConvertWOFF2 converts WOFF2 font data to SFNT format if needed.
func maybeConvertWOFF2(name string, data []byte) ([]byte, error) {
	if !isWOFF2(name, data) {
		return data, nil
	}
	out, err := sfnt.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("convert woff2 to sfnt: %w", err)
	}
	return out, nil
}

// isWOFF2 checks whether a font file is WOFF2 by extension or magic bytes ("wOF2").
func isWOFF2(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}
