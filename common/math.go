package common

import (
	"cmp"
	"math"
)

// / Returns the absolute value.
// / @param[in]		a	The value.
// / @return The absolute value of the specified value.
func Abs[T IT](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// / Clamps the value to the specified range.
// / @param[in]		value			The value to clamp.
// / @param[in]		minInclusive	The minimum permitted return value.
// / @param[in]		maxInclusive	The maximum permitted return value.
// / @return The value, clamped to the specified range.
func Clamp[T cmp.Ordered](value, minInclusive, maxInclusive T) T {
	if value < minInclusive {
		return minInclusive
	}
	if value > maxInclusive {
		return maxInclusive
	}
	return value
}

// / Rounds half up and truncates to int. Negative results clamp to zero.
// / @param[in]		v	The value to round.
func RoundSize(v float64) int {
	n := math.Floor(v + 0.5)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// / Derives the z value of point p projected onto the xy plane of triangle abc.
// / @param[in]		p	The query point.
// / @param[in]		a	Vertex A of the triangle.
// / @param[in]		b	Vertex B of the triangle.
// / @param[in]		c	Vertex C of the triangle.
// / @return The height and true if p lies inside the triangle footprint.
func ClosestHeightPointTriangle(p, a, b, c Vec3) (h float32, ok bool) {
	const eps = 1e-6
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)

	// Compute scaled barycentric coordinates
	denom := v0[0]*v1[1] - v0[1]*v1[0]
	if math.Abs(float64(denom)) < eps {
		return h, false
	}
	u := v1[1]*v2[0] - v1[0]*v2[1]
	v := v0[0]*v2[1] - v0[1]*v2[0]

	if denom < 0 {
		denom = -denom
		u = -u
		v = -v
	}

	// If point lies inside the triangle, return interpolated z.
	if u >= 0 && v >= 0 && (u+v) <= denom {
		h = a[2] + (v0[2]*u+v1[2]*v)/denom
		return h, true
	}
	return h, false
}

// / Checks if two axis aligned rectangles on the xy plane overlap.
func OverlapRect(amin, amax, bmin, bmax Vec2) bool {
	if amin[0] > bmax[0] || amax[0] < bmin[0] {
		return false
	}
	if amin[1] > bmax[1] || amax[1] < bmin[1] {
		return false
	}
	return true
}
