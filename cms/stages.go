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

// matrix3 is a row-major 3x3 matrix.
type matrix3 [9]float32

// apply computes M*(r,g,b).
func (m matrix3) apply(r, g, b float32) (float32, float32, float32) {
	or := mla(mla(m[0]*r, m[1], g), m[2], b)
	og := mla(mla(m[3]*r, m[4], g), m[5], b)
	ob := mla(mla(m[6]*r, m[7], g), m[8], b)
	return or, og, ob
}

func identityMatrix3() matrix3 {
	return matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// matrixStage applies M to every pixel's (r,g,b) triple in strip, which is
// organized as stride-wide pixels (stride 3 or 4; alpha, if present at
// index 3, passes through untouched).
func matrixStage(strip []float32, stride int, m matrix3) {
	for i := 0; i+2 < len(strip) && i+stride <= len(strip); i += stride {
		r, g, b := strip[i], strip[i+1], strip[i+2]
		strip[i], strip[i+1], strip[i+2] = m.apply(r, g, b)
	}
}

// matrixClipScaleStage applies M, then scales the result by s, clamps to
// [0, s], and rounds to the nearest integer value (still stored as
// float32). This fuses the scaling needed before a gamma table lookup.
func matrixClipScaleStage(strip []float32, stride int, m matrix3, s float32) {
	for i := 0; i+2 < len(strip) && i+stride <= len(strip); i += stride {
		r, g, b := strip[i], strip[i+1], strip[i+2]
		nr, ng, nb := m.apply(r, g, b)
		strip[i] = roundHalfAwayFromZero(clampF(nr*s, 0, s))
		strip[i+1] = roundHalfAwayFromZero(clampF(ng*s, 0, s))
		strip[i+2] = roundHalfAwayFromZero(clampF(nb*s, 0, s))
	}
}

// gamutClipScaleStage finds m = max(|r|,|g|,|b|) per pixel and, if m>1,
// uniformly scales the triple by 1/m before scaling to [0,s] and rounding.
// It must run immediately after a plain matrixStage (not matrixClipScaleStage)
// and only for rendering intents that permit chroma clipping.
func gamutClipScaleStage(strip []float32, stride int, s float32) {
	for i := 0; i+2 < len(strip) && i+stride <= len(strip); i += stride {
		r, g, b := strip[i], strip[i+1], strip[i+2]
		m := absf(r)
		if v := absf(g); v > m {
			m = v
		}
		if v := absf(b); v > m {
			m = v
		}
		if m > 1 {
			inv := 1 / m
			r *= inv
			g *= inv
			b *= inv
		}
		strip[i] = roundHalfAwayFromZero(clampF(r*s, 0, s))
		strip[i+1] = roundHalfAwayFromZero(clampF(g*s, 0, s))
		strip[i+2] = roundHalfAwayFromZero(clampF(b*s, 0, s))
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
