package screenshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromPixelsFlips(t *testing.T) {
	// two rows, bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromPixels() error = %v", err)
	}
	if top := img.RGBAAt(0, 0); top.B != 255 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.R != 255 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	if _, err := FromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := New(dir, "fukuwarai")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	name, err := s.SavePixels(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatalf("SavePixels() error = %v", err)
	}
	if want := filepath.Join(dir, "fukuwarai_2024-05-01_12-30-00.000.png"); name != want {
		t.Errorf("name = %q, want %q", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}
