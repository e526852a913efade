package animation

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/fukuwarai/internal/topology"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// Demo builds a procedural ten-second animation used when no data file is
// configured: the captured face eases in, talks and nods, two alternates
// flank it and four children orbit it.
func Demo() *Data {
	const (
		frames    = 300
		introEnd  = 60
		altIn     = 90
		altOut    = 210
		childIn   = 150
		childOut  = 270
		altCount  = 2
		kidsCount = 4
	)

	d := &Data{
		User:         Track{InFrame: 0, OutFrame: frames - 1},
		Extra:        Track{InFrame: 0, OutFrame: frames - 1},
		UserAlt:      TrackGroup{InFrame: altIn, OutFrame: altOut},
		UserChildren: TrackGroup{InFrame: childIn, OutFrame: childOut},
		MorphTargets: demoMorphTargets(),
	}

	user := &d.User.Property
	extra := &d.Extra.Property
	for f := 0; f < frames; f++ {
		t := float32(f) / 30

		nod := math.QuatFromAxisAngle(math.Vec3{X: 1}, 0.15*math32.Sin(t*2))
		turn := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.25*math32.Sin(t*0.7))
		appendVec3(&user.Position, math.Vec3{X: 10 * math32.Sin(t*0.5), Y: 5 * math32.Sin(t)})
		appendVec3(&user.Scale, math.Vec3{X: 1, Y: 1, Z: 1})
		appendQuat(&user.Quaternion, turn.Mul(nod))
		user.Morph = append(user.Morph, []float32{
			0.5 + 0.5*math32.Sin(t*6),
			math32.Max(0, math32.Sin(t*1.3)),
		})

		interp := float32(1)
		if f < introEnd {
			interp = float32(f) / introEnd
		}
		extra.Interpolation = append(extra.Interpolation, interp)
		extra.ScaleZ = append(extra.ScaleZ, 1+0.5*math32.Max(0, math32.Sin(t)))
	}

	for i := 0; i < altCount; i++ {
		side := float32(i*2 - 1)
		var p Property
		for f := 0; f <= altOut-altIn; f++ {
			t := float32(f) / 30
			p.Enabled = append(p.Enabled, Flag(f >= i*15))
			appendVec3(&p.Position, math.Vec3{X: side * 180, Y: 10 * math32.Sin(t*2+side)})
			appendVec3(&p.Scale, math.Vec3{X: 0.8, Y: 0.8, Z: 0.8})
			appendQuat(&p.Quaternion, math.QuatFromAxisAngle(math.Vec3{Y: 1}, -side*0.4))
		}
		d.UserAlt.Property = append(d.UserAlt.Property, p)
	}

	for i := 0; i < kidsCount; i++ {
		phase := float32(i) * math32.Pi / 2
		var p Property
		for f := 0; f <= childOut-childIn; f++ {
			t := float32(f) / 30
			a := phase + t*1.5
			p.Enabled = append(p.Enabled, Flag(f >= i*10))
			appendVec3(&p.Position, math.Vec3{X: 220 * math32.Cos(a), Y: 120 * math32.Sin(a), Z: 40})
			appendVec3(&p.Scale, math.Vec3{X: 0.3, Y: 0.3, Z: 0.3})
			appendQuat(&p.Quaternion, math.QuatFromAxisAngle(math.Vec3{Z: 1}, a))
		}
		d.UserChildren.Property = append(d.UserChildren.Property, p)
	}

	return d
}

// demoMorphTargets returns two targets over the tracker point model: mouth
// open and brows raised.
func demoMorphTargets() [][]float32 {
	mouth := make([]float32, topology.PointCount*3)
	for _, idx := range topology.InnerLowerLip {
		mouth[idx*3+1] = -0.05
	}
	brows := make([]float32, topology.PointCount*3)
	for idx := 15; idx <= 22; idx++ {
		brows[idx*3+1] = 0.03
	}
	return [][]float32{mouth, brows}
}

func appendVec3(dst *[]float32, v math.Vec3) {
	*dst = append(*dst, v.X, v.Y, v.Z)
}

func appendQuat(dst *[]float32, q math.Quat) {
	*dst = append(*dst, q.X, q.Y, q.Z, q.W)
}
