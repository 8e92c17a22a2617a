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

// interpolate4D runs the double-table variant of method on two adjacent
// 3D slices (table0 at the lower w-grid-corner, table1 at the upper one)
// and blends the two results with the fractional w-coordinate t.
//
// This is used by the 4-input CLUT path: the 4th input dimension ("K" for
// CMYK) selects which pair of 3-cubes to interpolate within.
func interpolate4D(method InterpolationMethod, table0, table1 cube3D, cr, cg, cb int, t float32) [4]float32 {
	var p0, p1 [4]float32
	switch method {
	case Tetrahedral:
		p0, p1 = tetrahedral3DPair(table0, table1, cr, cg, cb)
	case Pyramid:
		p0, p1 = pyramidal3DPair(table0, table1, cr, cg, cb)
	case Prism:
		p0, p1 = prismatic3DPair(table0, table1, cr, cg, cb)
	default:
		p0 = trilinear3D(table0, cr, cg, cb)
		p1 = trilinear3D(table1, cr, cg, cb)
	}
	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = lerp(p0[i], p1[i], t)
	}
	return out
}

// tetrahedral3DPair runs the tetrahedral case selection once (it only
// depends on the r,g,b fractions, identical for both tables) and evaluates
// both cubes' corner deltas for the chosen tetrahedron.
func tetrahedral3DPair(t0, t1 cube3D, cr, cg, cb int) (p0, p1 [4]float32) {
	x, xn, rx := gridCoords(cr, t0.grid)
	y, yn, ry := gridCoords(cg, t0.grid)
	z, zn, rz := gridCoords(cb, t0.grid)

	eval := func(c cube3D) [4]float32 {
		c0 := c.fetch(x, y, z)
		var c1, c2, c3 [4]float32
		switch {
		case rx >= ry && ry >= rz:
			c1 = vsub(c.fetch(xn, y, z), c0)
			c2 = vsub(c.fetch(xn, yn, z), c.fetch(xn, y, z))
			c3 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, yn, z))
		case rx >= ry && rx >= rz:
			c1 = vsub(c.fetch(xn, y, z), c0)
			c2 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, y, zn))
			c3 = vsub(c.fetch(xn, y, zn), c.fetch(xn, y, z))
		case rx >= ry:
			c1 = vsub(c.fetch(xn, y, zn), c.fetch(x, y, zn))
			c2 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, y, zn))
			c3 = vsub(c.fetch(x, y, zn), c0)
		case rx >= rz:
			c1 = vsub(c.fetch(xn, yn, z), c.fetch(x, yn, z))
			c2 = vsub(c.fetch(x, yn, z), c0)
			c3 = vsub(c.fetch(xn, yn, zn), c.fetch(xn, yn, z))
		case ry >= rz:
			c1 = vsub(c.fetch(xn, yn, zn), c.fetch(x, yn, zn))
			c2 = vsub(c.fetch(x, yn, z), c0)
			c3 = vsub(c.fetch(x, yn, zn), c.fetch(x, yn, z))
		default:
			c1 = vsub(c.fetch(xn, yn, zn), c.fetch(x, yn, zn))
			c2 = vsub(c.fetch(x, yn, zn), c.fetch(x, y, zn))
			c3 = vsub(c.fetch(x, y, zn), c0)
		}
		s0 := vmla(c0, rx, c1)
		s1 := vmla(s0, ry, c2)
		return vmla(s1, rz, c3)
	}
	return eval(t0), eval(t1)
}

func pyramidal3DPair(t0, t1 cube3D, cr, cg, cb int) (p0, p1 [4]float32) {
	x, xn, dr := gridCoords(cr, t0.grid)
	y, yn, dg := gridCoords(cg, t0.grid)
	z, zn, db := gridCoords(cb, t0.grid)

	eval := func(c cube3D) [4]float32 {
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
	return eval(t0), eval(t1)
}

// prismatic3DPair is the double-table prismatic interpolant used by the
// 4-in/3-out CMYK path. Each side fetches every corner, c0 included, from
// its own table; a blend between two adjacent CLUT slices is only correct
// when neither side reads a corner from the other slice.
func prismatic3DPair(t0, t1 cube3D, cr, cg, cb int) (p0, p1 [4]float32) {
	x, xn, dr := gridCoords(cr, t0.grid)
	y, yn, dg := gridCoords(cg, t0.grid)
	z, zn, db := gridCoords(cb, t0.grid)

	w3 := dg * db
	w4 := dr * dg

	eval := func(c cube3D) [4]float32 {
		c0 := c.fetch(x, y, z)
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
	return eval(t0), eval(t1)
}
