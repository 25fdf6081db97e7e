package cursorfx

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultScreenshotDir is used when SessionConfig.ScreenshotDir is empty.
const defaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the particle layer. It is taken at
// the end of the next Draw and written as a PNG to the session's screenshot
// directory with a timestamped filename.
func (s *Session) Screenshot(label string) {
	if s.state == StateDestroyed {
		return
	}
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures the painted surface for every queued label.
func (s *Session) flushScreenshots() {
	if len(s.screenshotQueue) == 0 || s.renderer == nil || s.renderer.Surface() == nil {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.screenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[cursorfx] screenshot: mkdir %s: %v\n", s.screenshotDir, err)
		return
	}

	img := captureNRGBA(s.renderer.Surface())
	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.screenshotDir, fmt.Sprintf("%s_%s_%s.png", stamp, sanitizeLabel(s.name), sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[cursorfx] screenshot: %v\n", err)
		}
	}
}

// captureNRGBA reads src back and converts premultiplied RGBA to straight alpha.
func captureNRGBA(src *ebiten.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG saves img at path, reporting create and encode failures with the path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel turns a screenshot label into a file name fragment. Blank
// labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
