package camera

import (
	"testing"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

func TestDefaultPosition(t *testing.T) {
	c := NewOrbitCamera()
	got := c.Position()
	if got.X != 0 || got.Y != 0 || got.Z != 260 {
		t.Errorf("Position() = %v, want (0, 0, 260)", got)
	}
	origin := c.ViewMatrix().TransformPoint(math.Vec3{})
	if origin.Z != -260 {
		t.Errorf("origin in view space = %v, want z = -260", origin)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.Pitch != -c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -c.MaxPitch)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  float32
	}{
		{name: "in", delta: 100, want: 60},
		{name: "out", delta: -100, want: 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.HandleZoom(tt.delta)
			if c.Distance != tt.want {
				t.Errorf("Distance = %v, want %v", c.Distance, tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(50, 50)
	c.HandleZoom(1)
	c.Reset()
	if c.Pitch != 0 || c.Yaw != 0 || c.Distance != 260 {
		t.Errorf("after Reset: pitch %v yaw %v distance %v", c.Pitch, c.Yaw, c.Distance)
	}
}
