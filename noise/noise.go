// Package noise provides gradient noise for procedural content.
package noise

import "math"

// perm is a fixed permutation of 0..255. The noise field tiles every 256
// units along each axis.
var perm = [256]uint8{
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

// hash maps a lattice point to a stable pseudo-random byte.
func hash(x, y, z int) int {
	h := perm[x&255]
	h = perm[(int(h)+y)&255]
	h = perm[(int(h)+z)&255]
	return int(h)
}

// grad returns the dot product of (x, y, z) with one of the twelve cube edge
// gradients selected by h.
func grad(h int, x, y, z float64) float64 {
	switch h % 12 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x + z
	case 5:
		return -x + z
	case 6:
		return x - z
	case 7:
		return -x - z
	case 8:
		return y + z
	case 9:
		return -y + z
	case 10:
		return y - z
	default:
		return -y - z
	}
}

// fade is the quintic ease curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// Perlin3D samples improved Perlin noise at (x, y, z). The result lies in
// [0, 1], is 0.5 at every integer lattice point and is the same for equal
// inputs.
func Perlin3D(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	cx, cy, cz := int(fx), int(fy), int(fz)
	u, v, w := x-fx, y-fy, z-fz

	var g [8]float64
	for i := range g {
		ox, oy, oz := i>>2&1, i>>1&1, i&1
		g[i] = grad(hash(cx+ox, cy+oy, cz+oz),
			u-float64(ox), v-float64(oy), w-float64(oz))
	}

	tx, ty, tz := fade(u), fade(v), fade(w)
	x00 := lerp(tx, g[0], g[4])
	x10 := lerp(tx, g[2], g[6])
	x01 := lerp(tx, g[1], g[5])
	x11 := lerp(tx, g[3], g[7])
	y0 := lerp(ty, x00, x10)
	y1 := lerp(ty, x01, x11)

	n := (lerp(tz, y0, y1) + 1) / 2
	return min(max(n, 0), 1)
}
