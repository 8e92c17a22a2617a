// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cms

// InterpolationMethod selects the polyhedral subdivision used to
// reconstruct a continuous transform from a regular-grid CLUT.
type InterpolationMethod int

const (
	Tetrahedral InterpolationMethod = iota
	Pyramid
	Prism
	Linear
)

// cube3D is a regular G*G*G lattice of 4-wide output vectors. The stride
// is always padded to 4, even for 3-channel output tables, keeping lattice
// fetches SIMD-width aligned.
type cube3D struct {
	data []float32 // len == grid*grid*grid*4
	grid int
}

func (c cube3D) fetch(x, y, z int) [4]float32 {
	off := (x*c.grid*c.grid + y*c.grid + z) * 4
	var v [4]float32
	copy(v[:], c.data[off:off+4])
	return v
}

func vsub(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func vmla(base [4]float32, w float32, delta [4]float32) [4]float32 {
	return [4]float32{
		mla(base[0], w, delta[0]),
		mla(base[1], w, delta[1]),
		mla(base[2], w, delta[2]),
		mla(base[3], w, delta[3]),
	}
}

// gridCoords computes the lower/upper lattice corners and fractional
// offset for an 8-bit coordinate c against a grid of the given size,
// following the "rounding ceil" contract: x = floor(c*S/255),
// x_n = ceil(c*S/255), both computed with integer-only rounding-ceil
// division so that the upper corner clamps to the lower corner in the
// last grid cell instead of running off the lattice.
func gridCoords(c, gridSize int) (lo, hi int, frac float32) {
	s := gridSize - 1
	num := c * s
	lo = num / 255
	hi = ceilDiv(num, 255)
	scale := float32(s) / 255.0
	frac = float32(c)*scale - float32(lo)
	return lo, hi, frac
}

// interpolate3D dispatches to one of the four polyhedral interpolants and
// returns the full 4-wide output vector (callers slice to outWidth).
func interpolate3D(method InterpolationMethod, c cube3D, cr, cg, cb int) [4]float32 {
	switch method {
	case Tetrahedral:
		return tetrahedral3D(c, cr, cg, cb)
	case Pyramid:
		return pyramidal3D(c, cr, cg, cb)
	case Prism:
		return prismatic3D(c, cr, cg, cb)
	default:
		return trilinear3D(c, cr, cg, cb)
	}
}

// tetrahedral3D implements the 6-case tetrahedral subdivision: the
// ordering of (rx, ry, rz) selects one of the six tetrahedra a unit cube
// splits into, and the output is c0 plus the three edge deltas of that
// tetrahedron weighted by the fractions.
func tetrahedral3D(c cube3D, cr, cg, cb int) [4]float32 {
	x, xn, rx := gridCoords(cr, c.grid)
	y, yn, ry := gridCoords(cg, c.grid)
	z, zn, rz := gridCoords(cb, c.grid)

	c0 := c.fetch(x, y, z)

	var c1, c2, c3 [4]float32
	switch {
	case rx >= ry && ry >= rz:
		c1 = vsub(c.fetch(xn, y, z), c0)
		c2 = vsub(c.fetch(xn, yn, z), c.fetch(xn, y, z))
		c3 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, yn, z))
	case rx >= ry && rx >= rz:
		// rx >= rz && rz >= ry
		c1 = vsub(c.fetch(xn, y, z), c0)
		c2 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, y, zn))
		c3 = vsub(c.fetch(xn, y, zn), c.fetch(xn, y, z))
	case rx >= ry:
		// rz > rx && rx >= ry
		c1 = vsub(c.fetch(xn, y, zn), c.fetch(x, y, zn))
		c2 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, y, zn))
		c3 = vsub(c.fetch(x, y, zn), c0)
	case rx >= rz:
		// ry > rx && rx >= rz
		c1 = vsub(c.fetch(xn, yn, z), c.fetch(x, yn, z))
		c2 = vsub(c.fetch(x, yn, z), c0)
		c3 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, yn, z))
	case ry >= rz:
		// ry >= rz && rz > rx
		c1 = vsub(c.fetch(xn, yn, zn), c.fetch(x, yn, zn))
		c2 = vsub(c.fetch(x, yn, z), c0)
		c3 = vsub(c.fetch(x, yn, zn), c.fetch(x, yn, z))
	default:
		// rz > ry && ry > rx
		c1 = vsub(c.fetch(xn, yn, zn), c.fetch(x, yn, zn))
		c2 = vsub(c.fetch(x, yn, zn), c.fetch(x, y, zn))
		c3 = vsub(c.fetch(x, y, zn), c0)
	}

	s0 := vmla(c0, rx, c1)
	s1 := vmla(s0, ry, c2)
	return vmla(s1, rz, c3)
}

// pyramidal3D implements the 3-case pyramidal subdivision.
func pyramidal3D(c cube3D, cr, cg, cb int) [4]float32 {
	x, xn, dr := gridCoords(cr, c.grid)
	y, yn, dg := gridCoords(cg, c.grid)
	z, zn, db := gridCoords(cb, c.grid)

	c0 := c.fetch(x, y, z)

	var c1, c2, c3, c4 [4]float32
	var w3 float32

	switch {
	case dr > db && dg > db:
		w3 = dr * dg
		x0 := c.fetch(xn, yn, zn)
		x1 := c.fetch(xn, yn, z)
		x2 := c.fetch(xn, y, z)
		x3 := c.fetch(x, yn, z)
		c1 = vsub(x0, x1)
		c2 = vsub(x2, c0)
		c3 = vsub(x3, c0)
		c4 = vadd(vsub(c0, x3), vsub(x1, x2))
	case db > dr && dg > dr:
		w3 = dg * db
		x0 := c.fetch(x, y, zn)
		x1 := c.fetch(xn, yn, zn)
		x2 := c.fetch(x, yn, zn)
		x3 := c.fetch(x, yn, z)
		c1 = vsub(x0, c0)
		c2 = vsub(x1, x2)
		c3 = vsub(x3, c0)
		c4 = vadd(vsub(c0, x3), vsub(x2, x0))
	default:
		w3 = db * dr
		x0 := c.fetch(x, y, zn)
		x1 := c.fetch(xn, y, z)
		x2 := c.fetch(xn, y, zn)
		x3 := c.fetch(xn, yn, zn)
		c1 = vsub(x0, c0)
		c2 = vsub(x1, c0)
		c3 = vsub(x3, x2)
		c4 = vadd(vsub(c0, x1), vsub(x2, x0))
	}

	s0 := vmla(c0, db, c1)
	s1 := vmla(s0, dr, c2)
	s2 := vmla(s1, dg, c3)
	return vmla(s2, w3, c4)
}

// prismatic3D implements the 2-case prismatic subdivision.
func prismatic3D(c cube3D, cr, cg, cb int) [4]float32 {
	x, xn, dr := gridCoords(cr, c.grid)
	y, yn, dg := gridCoords(cg, c.grid)
	z, zn, db := gridCoords(cb, c.grid)

	c0 := c.fetch(x, y, z)
	w3 := dg * db
	w4 := dr * dg

	var c1, c2, c3, c4, c5 [4]float32
	if db > dr {
		x0 := c.fetch(x, y, zn)
		x1 := c.fetch(xn, y, zn)
		x2 := c.fetch(x, yn, z)
		x3 := c.fetch(x, yn, zn)
		x4 := c.fetch(xn, yn, zn)
		c1 = vsub(x0, c0)
		c2 = vsub(x1, x0)
		c3 = vsub(x2, c0)
		c4 = vadd(vsub(c0, x2), vsub(x3, x0))
		c5 = vadd(vsub(x0, x3), vsub(x4, x1))
	} else {
		x0 := c.fetch(xn, y, z)
		x1 := c.fetch(xn, y, zn)
		x2 := c.fetch(x, yn, z)
		x3 := c.fetch(xn, yn, z)
		x4 := c.fetch(xn, yn, zn)
		c1 = vsub(x1, x0)
		c2 = vsub(x0, c0)
		c3 = vsub(x2, c0)
		c4 = vadd(vsub(x0, x3), vsub(x4, x1))
		c5 = vadd(vsub(c0, x2), vsub(x3, x0))
	}

	s0 := vmla(c0, db, c1)
	s1 := vmla(s0, dr, c2)
	s2 := vmla(s1, dg, c3)
	s3 := vmla(s2, w3, c4)
	return vmla(s3, w4, c5)
}

// trilinear3D is the standard 8-corner interpolant: no branching on
// coordinate ordering.
func trilinear3D(c cube3D, cr, cg, cb int) [4]float32 {
	x, xn, rx := gridCoords(cr, c.grid)
	y, yn, ry := gridCoords(cg, c.grid)
	z, zn, rz := gridCoords(cb, c.grid)

	c000 := c.fetch(x, y, z)
	c001 := c.fetch(x, y, zn)
	c010 := c.fetch(x, yn, z)
	c011 := c.fetch(x, yn, zn)
	c100 := c.fetch(xn, y, z)
	c101 := c.fetch(xn, y, zn)
	c110 := c.fetch(xn, yn, z)
	c111 := c.fetch(xn, yn, zn)

	var out [4]float32
	for i := 0; i < 4; i++ {
		c00 := lerp(c000[i], c100[i], rx)
		c01 := lerp(c001[i], c101[i], rx)
		c10 := lerp(c010[i], c110[i], rx)
		c11 := lerp(c011[i], c111[i], rx)
		c0 := lerp(c00, c10, ry)
		c1 := lerp(c01, c11, ry)
		out[i] = lerp(c0, c1, rz)
	}
	return out
}

func vadd(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}
