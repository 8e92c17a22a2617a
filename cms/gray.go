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

// grayTransform is the single-channel fast path (C7): linearize through the
// source gray curve, apply a luminance scale (e.g. white point ratio when
// the connection crosses a Bradford adaptation), then re-encode through the
// destination gray curve. Either side may be a gray layout or an RGB
// layout; an RGB side reads/writes the same linear value on all three
// channels since gray has no chroma to carry.
type grayTransform struct {
	srcLayout, dstLayout Layout
	bitDepth             int

	srcLinear []float32 // indexed by source code 0..srcMax
	scale     float32   // luminance scale applied between the linear values
	dstGamma  []uint16  // indexed by gammaLUT-scaled linear value
}

func newGrayTransform(srcLayout, dstLayout Layout, bitDepth int, srcLinear []float32, scale float32, dstGamma []uint16) *grayTransform {
	return &grayTransform{
		srcLayout: srcLayout,
		dstLayout: dstLayout,
		bitDepth:  bitDepth,
		srcLinear: srcLinear,
		scale:     scale,
		dstGamma:  dstGamma,
	}
}

func (t *grayTransform) Transform(dst, src []byte) error {
	n, err := checkLanes(src, t.srcLayout, dst, t.dstLayout)
	if err != nil {
		return err
	}

	srcIdx := 0
	if !t.srcLayout.IsGray() {
		srcIdx = t.srcLayout.RIndex() // any of R/G/B: gray has no chroma
	}
	dstMax := maxCode(t.bitDepth)
	gammaScale := float32(gammaLUT - 1)
	gammaMax := len(t.dstGamma) - 1

	for i := 0; i < n; i++ {
		code := readChannel(src, t.srcLayout, i, srcIdx)
		linear := t.srcLinear[code] * t.scale
		g := int(roundHalfAwayFromZero(clampF(linear*gammaScale, 0, float32(gammaMax))))
		out := t.dstGamma[g]

		if t.dstLayout.IsGray() {
			writeChannel(dst, t.dstLayout, i, 0, int(out))
		} else {
			writeChannel(dst, t.dstLayout, i, t.dstLayout.RIndex(), int(out))
			writeChannel(dst, t.dstLayout, i, t.dstLayout.GIndex(), int(out))
			writeChannel(dst, t.dstLayout, i, t.dstLayout.BIndex(), int(out))
		}
		if t.dstLayout.HasAlpha() {
			writeChannel(dst, t.dstLayout, i, t.dstLayout.AIndex(), dstMax)
		}
	}
	return nil
}
