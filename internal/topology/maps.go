package topology

// Point indices follow the 71-point tracker model:
//
//	0-14   jaw line, image-left to image-right through the chin (7)
//	15-18  brow over the image-right eye, outer to inner
//	19-22  brow over the image-left eye, outer to inner
//	23-27  image-left eye: outer, top, inner, bottom, pupil
//	28-32  image-right eye: outer, top, inner, bottom, pupil
//	33-43  nose: bridge, sides, tip, nostrils
//	44-55  outer lips, clockwise from the image-left corner
//	56-61  inner lips, upper then lower
//	62     nose centre
//	63-70  eyelid midpoints

var eyes = VerticeMap{
	// image-left eye ring around the pupil
	{23, 63, 27}, {63, 24, 27}, {24, 64, 27}, {64, 25, 27},
	{25, 65, 27}, {65, 26, 27}, {26, 66, 27}, {66, 23, 27},
	// image-right eye ring
	{28, 67, 32}, {67, 29, 32}, {29, 68, 32}, {68, 30, 32},
	{30, 69, 32}, {69, 31, 32}, {31, 70, 32}, {70, 28, 32},
	// brow to upper lid, left
	{19, 20, 23}, {20, 63, 23}, {20, 21, 63}, {21, 24, 63},
	{21, 64, 24}, {21, 22, 64}, {22, 25, 64},
	// brow to upper lid, right
	{15, 16, 28}, {16, 67, 28}, {16, 17, 67}, {17, 29, 67},
	{17, 68, 29}, {17, 18, 68}, {18, 30, 68},
}

var nose = VerticeMap{
	{22, 18, 33}, {22, 33, 25}, {18, 30, 33}, {25, 33, 41},
	{30, 41, 33}, {25, 41, 34}, {30, 40, 41}, {34, 41, 62},
	{40, 62, 41}, {34, 62, 35}, {40, 39, 62}, {35, 62, 42},
	{39, 43, 62}, {42, 62, 37}, {43, 37, 62}, {35, 42, 36},
	{39, 38, 43}, {36, 42, 37}, {38, 37, 43},
}

var cheekRight = VerticeMap{
	{14, 15, 28}, {14, 28, 13}, {13, 28, 70}, {13, 70, 31},
	{13, 31, 12}, {12, 31, 69}, {69, 30, 40}, {69, 40, 39},
	{12, 69, 39}, {12, 39, 11}, {11, 39, 38}, {11, 38, 50},
	{38, 49, 50}, {38, 48, 49}, {38, 37, 48}, {11, 50, 10},
	{10, 50, 51}, {10, 51, 9}, {9, 51, 52}, {9, 52, 8},
	{8, 52, 53}, {8, 53, 7},
}

var cheekLeft = VerticeMap{
	{0, 19, 23}, {0, 23, 1}, {1, 23, 66}, {1, 66, 26},
	{1, 26, 2}, {2, 26, 65}, {65, 25, 34}, {65, 34, 35},
	{2, 65, 35}, {2, 35, 3}, {3, 35, 36}, {3, 36, 44},
	{36, 45, 44}, {36, 46, 45}, {36, 37, 46}, {3, 44, 4},
	{4, 44, 55}, {4, 55, 5}, {5, 55, 54}, {5, 54, 6},
	{6, 54, 53}, {6, 53, 7},
}

var upperLipCenter = VerticeMap{
	{37, 46, 47}, {37, 47, 48},
}

var mouth = VerticeMap{
	// upper lip
	{44, 45, 56}, {45, 46, 56}, {46, 57, 56}, {46, 47, 57},
	{47, 48, 57}, {48, 58, 57}, {48, 49, 58}, {49, 50, 58},
	// lower lip
	{50, 51, 59}, {51, 52, 59}, {52, 60, 59}, {52, 53, 60},
	{53, 54, 60}, {54, 61, 60}, {54, 55, 61}, {55, 44, 61},
	// opening
	{44, 56, 61}, {56, 57, 60}, {56, 60, 61}, {57, 58, 59},
	{57, 59, 60}, {58, 50, 59},
}
