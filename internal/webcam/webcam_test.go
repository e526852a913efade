package webcam

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/fukuwarai/internal/topology"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

func TestNormalize(t *testing.T) {
	got := Normalize([]math.Vec2{{X: 160, Y: 45}, {X: 320, Y: 180}}, 320, 180)
	want := []math.Vec2{{X: 0.5, Y: 0.25}, {X: 1, Y: 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if Normalize(nil, 320, 180) != nil {
		t.Error("Normalize(nil) should be nil")
	}
}

func TestCloneTexture(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Pix[0] = 7
	dst := CloneTexture(src)
	dst.Pix[0] = 9
	if src.Pix[0] != 7 {
		t.Error("CloneTexture shares pixels with the source")
	}
	if CloneTexture(nil) != nil {
		t.Error("CloneTexture(nil) should be nil")
	}
}

func TestSyntheticPointsStayInFrame(t *testing.T) {
	s := NewSynthetic(320, 180, 150)
	for i := 0; i < 200; i++ {
		s.Update(1.0 / 30)
		pts := s.NormalizedFeaturePoints()
		if len(pts) != topology.PointCount {
			t.Fatalf("tick %d: %d points, want %d", i, len(pts), topology.PointCount)
		}
		for j, p := range pts {
			if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
				t.Fatalf("tick %d: point %d = %v outside the frame", i, j, p)
			}
		}
	}
}

func TestSyntheticMoves(t *testing.T) {
	s := NewSynthetic(320, 180, 150)
	before := s.RawFeaturePoints()[7]
	s.Update(1)
	if s.RawFeaturePoints()[7] == before {
		t.Error("chin did not move after one second")
	}
}

func TestSyntheticTrackingLoss(t *testing.T) {
	s := NewSynthetic(320, 180, 150)
	if !s.Tracking() {
		t.Fatal("new source should be tracking")
	}
	s.SetTracking(false)
	if s.Tracking() {
		t.Error("Tracking() still true after SetTracking(false)")
	}
	if s.NormalizedFeaturePoints() != nil {
		t.Error("lost tracking should report nil points")
	}
	if len(s.RawFeaturePoints()) != topology.PointCount {
		t.Error("raw points should remain available")
	}
}

func TestSyntheticTexture(t *testing.T) {
	s := NewSynthetic(320, 180, 150)
	img := s.Texture()
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 180 {
		t.Fatalf("texture bounds = %v", img.Bounds())
	}
	nose := s.RawFeaturePoints()[62]
	if got := img.RGBAAt(int(nose.X), int(nose.Y)); got == backgroundColor {
		t.Error("face centre was not painted")
	}
	if got := img.RGBAAt(1, 1); got != backgroundColor {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestLoadPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	if err := os.WriteFile(path, []byte("[[1, 2], [3.5, 4]]"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pts, err := LoadPoints(path)
	if err != nil {
		t.Fatalf("LoadPoints() error = %v", err)
	}
	if len(pts) != 2 || pts[1] != (math.Vec2{X: 3.5, Y: 4}) {
		t.Errorf("LoadPoints() = %v", pts)
	}

	if err := os.WriteFile(path, []byte("[[1]]"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPoints(path); err == nil {
		t.Error("expected error for a point with one coordinate")
	}
}

func TestStillSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	s := NewStill(img, []math.Vec2{{X: 50, Y: 25}}, 150)
	if got := s.NormalizedFeaturePoints()[0]; got != (math.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("normalized = %v, want (0.5, 0.5)", got)
	}
	if s.PoseMatrix()[0] != 150 {
		t.Errorf("pose scale = %v, want 150", s.PoseMatrix()[0])
	}
}
