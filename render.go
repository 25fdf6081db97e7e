package cursorfx

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// DrawCommand is one sprite paint, computed from a particle for the current
// frame. X and Y are the sprite center in surface coordinates.
type DrawCommand struct {
	Sprite   int
	X, Y     float64
	Rotation float64
	Scale    float64
	Alpha    float32
}

// appendDrawCommands appends a command for every visible particle in store.
// layerAlpha multiplies every particle's opacity.
func appendDrawCommands(buf []DrawCommand, store *Store, layerAlpha float64) []DrawCommand {
	ps := store.Particles()
	for i := range ps {
		p := &ps[i]
		if !p.Visible() {
			continue
		}
		a := p.Opacity() * clamp01(layerAlpha)
		if a <= 0 {
			continue
		}
		buf = append(buf, DrawCommand{
			Sprite:   p.Sprite,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			Rotation: p.Rotation,
			Scale:    p.Scale,
			Alpha:    float32(a),
		})
	}
	return buf
}

// Renderer paints a Store onto a persistent offscreen surface and composites
// it onto the host screen at the bounds origin.
type Renderer struct {
	surface  *ebiten.Image
	sprites  *SpriteSet
	blend    BlendMode
	commands []DrawCommand
	w, h     int
}

// NewRenderer allocates a w x h surface. It returns nil when the size is not
// drawable; callers treat that as "no animation".
func NewRenderer(w, h int, sprites *SpriteSet, blend BlendMode) *Renderer {
	if w <= 0 || h <= 0 {
		return nil
	}
	return &Renderer{
		surface: ebiten.NewImage(w, h),
		sprites: sprites,
		blend:   blend,
		w:       w,
		h:       h,
	}
}

// Surface returns the offscreen image, or nil after Dispose.
func (r *Renderer) Surface() *ebiten.Image {
	return r.surface
}

// Size returns the surface size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.w, r.h
}

// Resize reallocates the surface when the size changes. A non-drawable size
// keeps the current surface.
func (r *Renderer) Resize(w, h int) {
	if r.surface == nil || w <= 0 || h <= 0 || (w == r.w && h == r.h) {
		return
	}
	r.surface.Deallocate()
	r.surface = ebiten.NewImage(w, h)
	r.w, r.h = w, h
}

// Paint clears the surface and draws every visible particle onto it.
// Returns the number of sprites drawn.
func (r *Renderer) Paint(store *Store, layerAlpha float64) int {
	if r.surface == nil {
		return 0
	}
	r.surface.Clear()
	r.commands = appendDrawCommands(r.commands[:0], store, layerAlpha)

	drawn := 0
	var op ebiten.DrawImageOptions
	for i := range r.commands {
		cmd := &r.commands[i]
		img := r.sprites.Image(cmd.Sprite)
		if img == nil {
			continue
		}
		b := img.Bounds()
		op.GeoM.Reset()
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Rotate(cmd.Rotation)
		op.GeoM.Scale(cmd.Scale, cmd.Scale)
		op.GeoM.Translate(cmd.X, cmd.Y)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(cmd.Alpha)
		op.Blend = r.blend.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		r.surface.DrawImage(img, &op)
		drawn++
	}
	return drawn
}

// Composite draws the surface onto dst with its top-left corner at origin.
func (r *Renderer) Composite(dst *ebiten.Image, origin Vec2) {
	if r.surface == nil || dst == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(origin.X, origin.Y)
	dst.DrawImage(r.surface, &op)
}

// Dispose deallocates the surface. Safe to call more than once.
func (r *Renderer) Dispose() {
	if r.surface != nil {
		r.surface.Deallocate()
		r.surface = nil
	}
	r.commands = nil
}
