package topology

import (
	"errors"
	"testing"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

func TestMapsFitPointModel(t *testing.T) {
	maps := map[string]VerticeMap{
		"full":  Full(),
		"eyes":  Eyes(),
		"mouth": Mouth(),
	}
	for name, m := range maps {
		t.Run(name, func(t *testing.T) {
			if len(m) == 0 {
				t.Fatal("empty map")
			}
			if err := m.Validate(PointCount); err != nil {
				t.Errorf("Validate(%d) = %v", PointCount, err)
			}
			if m.MaxIndex() >= PointCount {
				t.Errorf("MaxIndex() = %d, want < %d", m.MaxIndex(), PointCount)
			}
		})
	}
}

func TestFullContainsSubMaps(t *testing.T) {
	full := Full()
	if len(full) <= len(Eyes())+len(Mouth()) {
		t.Errorf("full map has %d triangles, expected more than eyes+mouth", len(full))
	}
}

func TestNoDegenerateTriangles(t *testing.T) {
	ref := Reference()
	full := Full()
	for i := range full {
		a, b, c := full.Corners(i, ref)
		area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
		if area == 0 {
			t.Errorf("triangle %d %v is degenerate on the reference face", i, full[i])
		}
	}
}

func TestValidateShortPoints(t *testing.T) {
	m := VerticeMap{{0, 1, 2}, {2, 3, 9}}
	err := m.Validate(5)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Validate(5) = %v, want ErrIndexOutOfRange", err)
	}
	if err := m.Validate(10); err != nil {
		t.Errorf("Validate(10) = %v, want nil", err)
	}
}

func TestMaxIndexEmpty(t *testing.T) {
	if got := (VerticeMap{}).MaxIndex(); got != -1 {
		t.Errorf("MaxIndex() = %d, want -1", got)
	}
}

func TestReferenceIsCopy(t *testing.T) {
	a := Reference()
	a[0] = math.Vec2{X: 99, Y: 99}
	if Reference()[0] == a[0] {
		t.Error("Reference() returned shared storage")
	}
}
