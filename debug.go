package cursorfx

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayInterval is how often, in seconds, the debug overlay text refreshes.
const overlayInterval = 0.5

// debugState holds per-session debug output. Present only in debug mode.
type debugState struct {
	out        io.Writer
	overlay    *ebiten.Image
	sinceFlush float64
	drawn      int
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// counters are logged to stderr and an overlay with the live particle count
// and TPS is drawn in the top-left corner of the host element.
func (s *Session) SetDebugMode(enabled bool) {
	if !enabled {
		if s.debug != nil {
			s.debug.dispose()
		}
		s.debug = nil
		return
	}
	if s.debug == nil {
		s.debug = &debugState{out: os.Stderr}
	}
}

// record logs one frame of counters. Quiet frames are skipped.
func (d *debugState) record(s *Session, spawned, pruned, evicted int) {
	if spawned == 0 && pruned == 0 && evicted == 0 {
		return
	}
	_, _ = fmt.Fprintf(d.out,
		"[cursorfx] %s frame %d | live: %d/%d | spawned: %d | pruned: %d | evicted: %d\n",
		s.name, s.stats.Frames, s.store.Len(), s.store.Cap(), spawned, pruned, evicted)
}

// draw refreshes the overlay about every overlayInterval and draws it.
func (d *debugState) draw(screen *ebiten.Image, s *Session, drawn int) {
	if screen == nil {
		return
	}
	if d.overlay == nil {
		// 140x32 is enough for "live: 100 drawn: 100\nTPS: 60.0"
		d.overlay = ebiten.NewImage(140, 32)
		d.sinceFlush = overlayInterval
	}
	d.sinceFlush += 1.0 / float64(ebiten.TPS())
	d.drawn = drawn
	if d.sinceFlush >= overlayInterval {
		d.sinceFlush = 0
		d.overlay.Clear()
		d.overlay.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(d.overlay, fmt.Sprintf("live: %d drawn: %d\nTPS: %.1f",
			s.store.Len(), d.drawn, ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(s.bounds.X, s.bounds.Y)
	screen.DrawImage(d.overlay, &op)
}

func (d *debugState) dispose() {
	if d.overlay != nil {
		d.overlay.Deallocate()
		d.overlay = nil
	}
}
