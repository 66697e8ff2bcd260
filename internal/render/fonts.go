package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// DefaultFontFamily is used for unknown family names.
const DefaultFontFamily = "Go Regular"

var fontFiles = map[string][]byte{
	"Go Regular": goregular.TTF,
	"Go Bold":    gobold.TTF,
	"Go Mono":    gomono.TTF,
}

// FontFamilies returns the names accepted as a text font family.
func FontFamilies() []string {
	return []string{"Go Regular", "Go Bold", "Go Mono"}
}

type faceKey struct {
	family string
	size   float64
}

// FontSet parses the embedded fonts on first use and caches one face per family
// and size. It is safe for concurrent use, but the faces it returns are not.
type FontSet struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFontSet returns an empty font cache.
func NewFontSet() *FontSet {
	return &FontSet{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Face returns the face for family at size points (72 DPI, so points equal pixels).
func (fs *FontSet) Face(family string, size float64) (font.Face, error) {
	if _, ok := fontFiles[family]; !ok {
		family = DefaultFontFamily
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size: %v", size)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := faceKey{family: family, size: size}
	if face, ok := fs.faces[key]; ok {
		return face, nil
	}

	f, ok := fs.fonts[family]
	if !ok {
		var err error
		f, err = opentype.Parse(fontFiles[family])
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", family, err)
		}
		fs.fonts[family] = f
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s face: %w", family, err)
	}
	fs.faces[key] = face
	return face, nil
}

// Close releases every cached face.
func (fs *FontSet) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for key, face := range fs.faces {
		face.Close()
		delete(fs.faces, key)
	}
	return nil
}

// TextLayout is the measured extent of a block of text.
type TextLayout struct {
	// Lines holds the text split on newlines.
	Lines []string
	// Width is the widest line in pixels.
	Width float64
	// LineHeight is the distance between baselines.
	LineHeight float64
	// Ascent is the distance from the top of a line to its baseline.
	Ascent float64
}

// Height returns the total height of all lines.
func (l TextLayout) Height() float64 { return l.LineHeight * float64(len(l.Lines)) }

// Layout measures content set in face.
func Layout(face font.Face, content string) TextLayout {
	metrics := face.Metrics()
	layout := TextLayout{
		Lines:      strings.Split(content, "\n"),
		LineHeight: fix2f(metrics.Height),
		Ascent:     fix2f(metrics.Ascent),
	}
	for _, line := range layout.Lines {
		layout.Width = math.Max(layout.Width, fix2f(font.MeasureString(face, line)))
	}
	return layout
}

// MeasureText returns the canvas rectangle covered by a text object of the given
// family and size anchored at (left, top), with its scale applied.
func (fs *FontSet) MeasureText(content, family string, size float64, left, top, scaleX, scaleY float64) (edimg.Rect, error) {
	face, err := fs.Face(family, size)
	if err != nil {
		return edimg.Rect{}, err
	}
	layout := Layout(face, content)
	return edimg.Rect{
		Left:   left,
		Top:    top,
		Width:  layout.Width * scaleX,
		Height: layout.Height() * scaleY,
	}, nil
}

func fix2f(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
