package ebitenhost

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/motion"
)

// flushScreenshots writes the painted frame once per queued label. Files are
// named by clock frame so a scripted run produces the same names every time.
func (g *game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	labels := g.screenshotQueue
	g.screenshotQueue = g.screenshotQueue[:0]
	log := motion.Logger()

	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		log.Error("screenshot directory unavailable", "dir", g.cfg.ScreenshotDir, "err", err)
		return
	}

	b := screen.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pix)
	img := straightAlpha(pix, b.Dx(), b.Dy())

	frame := g.orch.Clock().Frame()
	for _, label := range labels {
		path := screenshotPath(g.cfg.ScreenshotDir, frame, label)
		if err := writePNG(path, img); err != nil {
			log.Error("screenshot failed", "label", label, "err", err)
			continue
		}
		log.Info("screenshot written", "path", path, "frame", frame)
	}
}

// straightAlpha converts ebiten's premultiplied RGBA pixels to an NRGBA image.
func straightAlpha(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = uint8(min(int(img.Pix[i+c])*255/a, 255))
		}
	}
	return img
}

// screenshotPath names a capture after the frame it was taken on and its label.
func screenshotPath(dir string, frame uint64, label string) string {
	return filepath.Join(dir, fmt.Sprintf("frame%06d_%s.png", frame, sanitizeLabel(label)))
}

func writePNG(path string, img image.Image) error {
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

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. An empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
