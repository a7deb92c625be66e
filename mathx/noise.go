package mathx

import "math"

// perlinPermutation is Ken Perlin's reference permutation table, duplicated
// to avoid index-wrapping branches during lookup.
var perlinPermutation = buildPerlinPermutation()

func buildPerlinPermutation() [512]int {
	base := [256]int{
		151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
		140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
		247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
		57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
		74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
		60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
		65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
		200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
		52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
		207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
		119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
		129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
		218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
		81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
		184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
		222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
	}
	var p [512]int
	for i := 0; i < 512; i++ {
		p[i] = base[i&255]
	}
	return p
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	r := 0.0
	if h&1 == 0 {
		r += u
	} else {
		r -= u
	}
	if h&2 == 0 {
		r += v
	} else {
		r -= v
	}
	return r
}

// Perlin3 evaluates tileable 3-axis Perlin noise at (x, y, z) with the given
// repeat period along each axis (0 disables tiling on that axis). The
// result is in [-1, 1].
func Perlin3(x, y, z float64, repeat int) float64 {
	wrap := func(v int) int {
		if repeat <= 0 {
			return v & 255
		}
		return v % repeat & 255
	}
	xi, yi, zi := int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))
	xf, yf, zf := x-math.Floor(x), y-math.Floor(y), z-math.Floor(z)

	u, v, w := fade(xf), fade(yf), fade(zf)

	x0, x1 := wrap(xi), wrap(xi+1)
	y0, y1 := wrap(yi), wrap(yi+1)
	z0, z1 := wrap(zi), wrap(zi+1)

	p := perlinPermutation[:]
	aaa := p[p[p[x0]+y0]+z0]
	aba := p[p[p[x0]+y1]+z0]
	aab := p[p[p[x0]+y0]+z1]
	abb := p[p[p[x0]+y1]+z1]
	baa := p[p[p[x1]+y0]+z0]
	bba := p[p[p[x1]+y1]+z0]
	bab := p[p[p[x1]+y0]+z1]
	bbb := p[p[p[x1]+y1]+z1]

	x1f, y1f, z1f := xf-1, yf-1, zf-1

	lerp := func(t, a, b float64) float64 { return a + t*(b-a) }

	x1v := lerp(u, grad(aaa, xf, yf, zf), grad(baa, x1f, yf, zf))
	x2v := lerp(u, grad(aba, xf, y1f, zf), grad(bba, x1f, y1f, zf))
	y1v := lerp(v, x1v, x2v)

	x1v2 := lerp(u, grad(aab, xf, yf, z1f), grad(bab, x1f, yf, z1f))
	x2v2 := lerp(u, grad(abb, xf, y1f, z1f), grad(bbb, x1f, y1f, z1f))
	y2v := lerp(v, x1v2, x2v2)

	return lerp(w, y1v, y2v)
}

// Perlin3Unit is Perlin3 remapped to [0, 1].
func Perlin3Unit(x, y, z float64, repeat int) float64 {
	return (Perlin3(x, y, z, repeat) + 1) * 0.5
}
