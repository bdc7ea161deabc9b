package trackswipe

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// TextAlign controls horizontal text alignment.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // left-aligned
	TextAlignCenter                  // centered on x
	TextAlignRight                   // right-aligned on x
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("trackswipe: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// Fonts is the set of faces the review screen draws with.
type Fonts struct {
	Title *TTFFont
	Label *TTFFont
	Body  *TTFFont
	Small *TTFFont
}

// LoadDefaultFonts loads the Go fonts at the screen's sizes.
func LoadDefaultFonts() (*Fonts, error) {
	var f Fonts
	var err error
	if f.Title, err = LoadTTFFont(gobold.TTF, 26); err != nil {
		return nil, err
	}
	if f.Label, err = LoadTTFFont(gobold.TTF, 22); err != nil {
		return nil, err
	}
	if f.Body, err = LoadTTFFont(goregular.TTF, 16); err != nil {
		return nil, err
	}
	if f.Small, err = LoadTTFFont(goregular.TTF, 13); err != nil {
		return nil, err
	}
	return &f, nil
}

// drawText draws s with its top edge at y. scale grows the text around its
// anchor point. A nil font falls back to the debug font.
func drawText(dst *ebiten.Image, f *TTFFont, s string, x, y float64, align TextAlign, c Color, scale float64) {
	if f == nil {
		w := float64(len(s) * 6)
		switch align {
		case TextAlignCenter:
			x -= w / 2
		case TextAlignRight:
			x -= w
		}
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.LineSpacing = f.lh
	switch align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	if scale > 0 && scale != 1 {
		op.GeoM.Translate(0, -f.lh/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(0, f.lh/2)
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(dst, s, f.face, op)
}

func (f *Fonts) title() *TTFFont {
	if f == nil {
		return nil
	}
	return f.Title
}

func (f *Fonts) label() *TTFFont {
	if f == nil {
		return nil
	}
	return f.Label
}

func (f *Fonts) body() *TTFFont {
	if f == nil {
		return nil
	}
	return f.Body
}

func (f *Fonts) small() *TTFFont {
	if f == nil {
		return nil
	}
	return f.Small
}
