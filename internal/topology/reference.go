package topology

import "github.com/Faultbox/fukuwarai/pkg/math"

// reference is a neutral frontal face in unit face-box coordinates
// (x right, y down).
var reference = [PointCount]math.Vec2{
	// jaw
	{0.050, 0.350}, {0.061, 0.484}, {0.095, 0.610}, {0.148, 0.724}, {0.219, 0.819},
	{0.305, 0.891}, {0.400, 0.935}, {0.500, 0.950}, {0.600, 0.935}, {0.695, 0.891},
	{0.781, 0.819}, {0.852, 0.724}, {0.905, 0.610}, {0.939, 0.484}, {0.950, 0.350},
	// brows
	{0.860, 0.270}, {0.780, 0.220}, {0.690, 0.220}, {0.600, 0.250},
	{0.140, 0.270}, {0.220, 0.220}, {0.310, 0.220}, {0.400, 0.250},
	// image-left eye
	{0.180, 0.360}, {0.270, 0.320}, {0.370, 0.360}, {0.270, 0.390}, {0.270, 0.355},
	// image-right eye
	{0.820, 0.360}, {0.730, 0.320}, {0.630, 0.360}, {0.730, 0.390}, {0.730, 0.355},
	// nose
	{0.500, 0.360}, {0.440, 0.500}, {0.420, 0.580}, {0.450, 0.620}, {0.500, 0.630},
	{0.550, 0.620}, {0.580, 0.580}, {0.560, 0.500}, {0.500, 0.450}, {0.460, 0.600},
	{0.540, 0.600},
	// outer lips
	{0.360, 0.760}, {0.400, 0.720}, {0.450, 0.700}, {0.500, 0.710}, {0.550, 0.700},
	{0.600, 0.720}, {0.640, 0.760}, {0.600, 0.810}, {0.550, 0.840}, {0.500, 0.850},
	{0.450, 0.840}, {0.400, 0.810},
	// inner lips
	{0.440, 0.750}, {0.500, 0.750}, {0.560, 0.750}, {0.560, 0.780}, {0.500, 0.790},
	{0.440, 0.780},
	// nose centre
	{0.500, 0.550},
	// eyelid midpoints
	{0.220, 0.335}, {0.320, 0.335}, {0.320, 0.380}, {0.220, 0.380},
	{0.780, 0.335}, {0.680, 0.335}, {0.680, 0.380}, {0.780, 0.380},
}

// Reference returns the neutral face layout in unit face-box coordinates.
func Reference() []math.Vec2 {
	out := make([]math.Vec2, PointCount)
	copy(out, reference[:])
	return out
}

// InnerLowerLip lists the points that drop when the mouth opens.
var InnerLowerLip = []int{59, 60, 61, 51, 52, 53, 54, 55}
