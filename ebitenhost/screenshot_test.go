package ebitenhost

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "unlabeled"},
		{"  ", "unlabeled"},
		{"after-scroll", "after-scroll"},
		{"a b/c", "a_b_c"},
		{"mid-page", "mid-page"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotPath(t *testing.T) {
	got := screenshotPath("shots", 42, "mid page")
	want := filepath.Join("shots", "frame000042_mid_page.png")
	if got != want {
		t.Errorf("screenshotPath = %q, want %q", got, want)
	}
}

func TestStraightAlpha(t *testing.T) {
	pix := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-transparent, premultiplied
		0, 0, 0, 0, // transparent
	}
	img := straightAlpha(pix, 3, 1)
	want := []byte{
		255, 0, 0, 255,
		127, 63, 0, 128,
		0, 0, 0, 0,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
	if pix[0] != 255 || pix[4] != 64 {
		t.Error("source pixels must not be modified")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := straightAlpha([]byte{10, 20, 30, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}
