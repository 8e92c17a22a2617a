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

// rgbMatrixTransform is the fast path (C6) for matrix/TRC RGB profiles on
// both ends: linearize through per-channel tables, apply one combined 3x3
// matrix (source RGB->XYZ, Bradford-adapted to the destination white point,
// destination XYZ->RGB), then re-encode through the destination gamma
// table. No CLUT is involved.
type rgbMatrixTransform struct {
	srcLayout, dstLayout Layout
	bitDepth             int

	srcLinear [3][]float32 // indexed by source code 0..srcMax
	matrix    matrix3
	dstGamma  [3][]uint16 // indexed by gammaLUT-scaled linear value

	allowChromaClip bool
}

// newRGBMatrixTransform builds the combined linearize/matrix/gamma pipeline
// from the per-channel linear tables, the already-composed source-to-
// destination matrix (see combineRGBMatrices), and the destination gamma
// tables.
func newRGBMatrixTransform(srcLayout, dstLayout Layout, bitDepth int, srcLinear [3][]float32, m matrix3, dstGamma [3][]uint16, allowChromaClip bool) *rgbMatrixTransform {
	return &rgbMatrixTransform{
		srcLayout:       srcLayout,
		dstLayout:       dstLayout,
		bitDepth:        bitDepth,
		srcLinear:       srcLinear,
		matrix:          m,
		dstGamma:        dstGamma,
		allowChromaClip: allowChromaClip,
	}
}

func (t *rgbMatrixTransform) Transform(dst, src []byte) error {
	n, err := checkLanes(src, t.srcLayout, dst, t.dstLayout)
	if err != nil {
		return err
	}

	const stride = 4 // r, g, b, alpha-slot (unused by the matrix stages)
	var strip [scratchStripSize]float32
	stripPixels := scratchStripSize / stride
	dstMax := maxCode(t.bitDepth)
	gammaScale := float32(gammaLUT - 1)

	for base := 0; base < n; base += stripPixels {
		count := stripPixels
		if base+count > n {
			count = n - base
		}

		for k := 0; k < count; k++ {
			i := base + k
			cr := readChannel(src, t.srcLayout, i, t.srcLayout.RIndex())
			cg := readChannel(src, t.srcLayout, i, t.srcLayout.GIndex())
			cb := readChannel(src, t.srcLayout, i, t.srcLayout.BIndex())
			strip[k*stride+0] = t.srcLinear[0][cr]
			strip[k*stride+1] = t.srcLinear[1][cg]
			strip[k*stride+2] = t.srcLinear[2][cb]
		}

		view := strip[:count*stride]
		if t.allowChromaClip {
			matrixStage(view, stride, t.matrix)
			gamutClipScaleStage(view, stride, gammaScale)
		} else {
			matrixClipScaleStage(view, stride, t.matrix, gammaScale)
		}

		for k := 0; k < count; k++ {
			i := base + k
			gr := int(view[k*stride+0])
			gg := int(view[k*stride+1])
			gb := int(view[k*stride+2])
			writeChannel(dst, t.dstLayout, i, t.dstLayout.RIndex(), int(t.dstGamma[0][gr]))
			writeChannel(dst, t.dstLayout, i, t.dstLayout.GIndex(), int(t.dstGamma[1][gg]))
			writeChannel(dst, t.dstLayout, i, t.dstLayout.BIndex(), int(t.dstGamma[2][gb]))
			if t.dstLayout.HasAlpha() {
				writeChannel(dst, t.dstLayout, i, t.dstLayout.AIndex(), t.recoverAlpha(src, i, dstMax))
			}
		}
	}
	return nil
}

// recoverAlpha reads source pixel i's alpha channel, if any, and rescales
// it to the destination's code range; pixels with no source alpha get the
// destination's maximum (fully opaque). At equal bit depths the alpha code
// passes through unchanged.
func recoverAlpha(srcLayout Layout, src []byte, i, srcMax, dstMax int) int {
	if !srcLayout.HasAlpha() {
		return dstMax
	}
	a := readChannel(src, srcLayout, i, srcLayout.AIndex())
	if srcMax == dstMax {
		return a
	}
	v := roundHalfAwayFromZero(float32(a) * float32(dstMax) / float32(srcMax))
	return int(clampF(v, 0, float32(dstMax)))
}

func (t *rgbMatrixTransform) recoverAlpha(src []byte, i, dstMax int) int {
	return recoverAlpha(t.srcLayout, src, i, maxCode(t.bitDepth), dstMax)
}

// combineRGBMatrices composes the source RGB->PCS matrix, a Bradford
// chromatic adaptation from the source to the destination white point, and
// the destination PCS->RGB matrix into the single matrix the transform
// applies per pixel.
func combineRGBMatrices(srcToPCS [9]float64, srcWhite [3]float64, dstToPCS [9]float64, dstWhite [3]float64, adapt [9]float64) (matrix3, error) {
	dstFromPCS, err := invert3x64(dstToPCS)
	if err != nil {
		return matrix3{}, newError(InvalidIcc, "destination RGB matrix is not invertible")
	}
	combined := mul3x64(mul3x64(dstFromPCS, adapt), srcToPCS)
	return matrixFromFloat64(combined), nil
}

func matrixFromFloat64(m [9]float64) matrix3 {
	var out matrix3
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// invert3x64 inverts a row-major 3x3 matrix via the adjugate/cofactor
// formula, operating on the fixed-size arrays this package uses rather
// than the slices icc's decoders prefer.
func invert3x64(m [9]float64) ([9]float64, error) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return [9]float64{}, errSingularMatrix
	}
	invDet := 1 / det

	return [9]float64{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}, nil
}

func mul3x64(a, b [9]float64) [9]float64 {
	var out [9]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}

var errSingularMatrix = newError(InvalidIcc, "matrix is not invertible")
