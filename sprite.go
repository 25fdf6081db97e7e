package cursorfx

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"
)

// BinaryGlyphs are the digits the trail is made of.
var BinaryGlyphs = []string{"0", "1"}

// glowRadius is the spread of the soft halo drawn behind each glyph.
const glowRadius = 2

// SpriteSet is an immutable list of pre-rendered images shared by every
// particle of a session. Particles refer to sprites by index.
type SpriteSet struct {
	images []*ebiten.Image
}

// NewImageSprites wraps existing images, e.g. a set of tech icons.
// Nil images are skipped.
func NewImageSprites(images ...*ebiten.Image) *SpriteSet {
	s := &SpriteSet{images: make([]*ebiten.Image, 0, len(images))}
	for _, img := range images {
		if img != nil {
			s.images = append(s.images, img)
		}
	}
	return s
}

// NewGlyphSprites renders each glyph in Go Mono Bold at sizePx, tinted with
// c and backed by a faint halo of the same color.
func NewGlyphSprites(glyphs []string, c Color, sizePx float64) (*SpriteSet, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("glyph sprites: size %v must be positive", sizePx)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("glyph sprites: load font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: sizePx}

	s := &SpriteSet{images: make([]*ebiten.Image, 0, len(glyphs))}
	for _, g := range glyphs {
		if g == "" {
			continue
		}
		s.images = append(s.images, renderGlyph(g, face, c))
	}
	return s, nil
}

func renderGlyph(g string, face text.Face, c Color) *ebiten.Image {
	w, h := text.Measure(g, face, 0)
	pad := float64(glowRadius + 1)
	img := ebiten.NewImage(int(math.Ceil(w+2*pad)), int(math.Ceil(h+2*pad)))

	tint := c.NRGBA()
	for dy := -glowRadius; dy <= glowRadius; dy++ {
		for dx := -glowRadius; dx <= glowRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(pad+float64(dx), pad+float64(dy))
			op.ColorScale.ScaleWithColor(tint)
			op.ColorScale.ScaleAlpha(0.06)
			text.Draw(img, g, face, op)
		}
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(pad, pad)
	op.ColorScale.ScaleWithColor(tint)
	text.Draw(img, g, face, op)
	return img
}

// Len returns the number of sprites. Zero means the set is not loaded.
func (s *SpriteSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}

// Image returns sprite i, or nil when i is out of range.
func (s *SpriteSet) Image(i int) *ebiten.Image {
	if s == nil || i < 0 || i >= len(s.images) {
		return nil
	}
	return s.images[i]
}

// Dispose deallocates every image. Only the owner of the set should call it;
// sessions never do.
func (s *SpriteSet) Dispose() {
	if s == nil {
		return
	}
	for _, img := range s.images {
		img.Deallocate()
	}
	s.images = nil
}

// NRGBA converts c to a non-premultiplied 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}
