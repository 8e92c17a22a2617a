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

// Q4.12 fixed-point format: 4 integer bits, 12 fractional bits, stored in
// an int32. qOne is 1.0 in this format.
const (
	qFracBits = 12
	qOne      = 1 << qFracBits
	qRound    = (1 << (qFracBits - 1)) - 1 // 2^11 - 1, per the construction formula
	qMaxAbs   = 1 << 15                    // headroom check: values must stay well inside int32
)

// fixedPointTransform is the Q4.12 integer variant of rgbMatrixTransform,
// emitted by MakeTransform when TransformOptions.PreferFixedPoint is set
// and every stage is representable in the format. The matrix is stored in
// Q4.12; the linear input tables are pre-scaled to the gamma table's index
// range, so the per-pixel pipeline is the single fused rescale-and-round
// idx = (M*v + 2^11-1) >> 12, the integer counterpart of the float path's
// matrixClipScaleStage. Splitting that into a matrix normalization and a
// separate index rescale would round twice, and the first rounding's error
// gets magnified by gammaLUT/qOne in the second.
type fixedPointTransform struct {
	srcLayout, dstLayout Layout
	bitDepth             int

	srcLinearQ [3][]int32 // linear value pre-scaled to [0, gammaLUT-1]
	matrixQ    [9]int32   // Q4.12, row-major
	dstGamma   [3][]uint16
}

// newFixedPointTransform attempts to build the fixed-point variant. ok is
// false (with a nil error) when the matrix cannot be represented in Q4.12
// with safety margin, or when gamut clipping is requested (the clip-scale
// stage's max-component search has no fixed-point formulation in this
// module); callers should fall back to the floating-point path in either
// case.
func newFixedPointTransform(layout Layout, bitDepth int, srcLinear [3][]float32, m matrix3, dstGamma [3][]uint16, allowChromaClip bool) (*fixedPointTransform, bool, error) {
	if allowChromaClip {
		return nil, false, nil
	}

	var matrixQ [9]int32
	for i, v := range m {
		q, ok := quantizeQ4_12(v)
		if !ok {
			return nil, false, nil
		}
		matrixQ[i] = q
	}

	// Linear values are clamped to [0,1] at table-build time, so the
	// pre-scaled entries always fit; no representability check needed.
	gammaMax := float32(gammaLUT - 1)
	var srcLinearQ [3][]int32
	for ch, table := range srcLinear {
		q := make([]int32, len(table))
		for i, v := range table {
			q[i] = int32(roundHalfAwayFromZero(v * gammaMax))
		}
		srcLinearQ[ch] = q
	}

	return &fixedPointTransform{
		srcLayout:  layout,
		dstLayout:  layout,
		bitDepth:   bitDepth,
		srcLinearQ: srcLinearQ,
		matrixQ:    matrixQ,
		dstGamma:   dstGamma,
	}, true, nil
}

// quantizeQ4_12 converts a float32 to its nearest Q4.12 int32 representation,
// reporting ok=false if the magnitude would leave too little headroom for
// the matrix-multiply accumulator in Transform.
func quantizeQ4_12(v float32) (int32, bool) {
	scaled := roundHalfAwayFromZero(v * qOne)
	if scaled > qMaxAbs || scaled < -qMaxAbs {
		return 0, false
	}
	return int32(scaled), true
}

func (t *fixedPointTransform) Transform(dst, src []byte) error {
	n, err := checkLanes(src, t.srcLayout, dst, t.dstLayout)
	if err != nil {
		return err
	}

	dstMax := maxCode(t.bitDepth)
	gammaMax := int64(gammaLUT - 1)

	for i := 0; i < n; i++ {
		cr := readChannel(src, t.srcLayout, i, t.srcLayout.RIndex())
		cg := readChannel(src, t.srcLayout, i, t.srcLayout.GIndex())
		cb := readChannel(src, t.srcLayout, i, t.srcLayout.BIndex())

		vr := int64(t.srcLinearQ[0][cr])
		vg := int64(t.srcLinearQ[1][cg])
		vb := int64(t.srcLinearQ[2][cb])

		outR := fixedMatrixRow(t.matrixQ[0], t.matrixQ[1], t.matrixQ[2], vr, vg, vb, gammaMax)
		outG := fixedMatrixRow(t.matrixQ[3], t.matrixQ[4], t.matrixQ[5], vr, vg, vb, gammaMax)
		outB := fixedMatrixRow(t.matrixQ[6], t.matrixQ[7], t.matrixQ[8], vr, vg, vb, gammaMax)

		writeChannel(dst, t.dstLayout, i, t.dstLayout.RIndex(), int(t.dstGamma[0][outR]))
		writeChannel(dst, t.dstLayout, i, t.dstLayout.GIndex(), int(t.dstGamma[1][outG]))
		writeChannel(dst, t.dstLayout, i, t.dstLayout.BIndex(), int(t.dstGamma[2][outB]))
		if t.dstLayout.HasAlpha() {
			writeChannel(dst, t.dstLayout, i, t.dstLayout.AIndex(), recoverAlpha(t.srcLayout, src, i, dstMax, dstMax))
		}
	}
	return nil
}

// fixedMatrixRow computes one row of (M*v + 2^11-1) >> 12, clamped to
// [0, gammaMax]. v carries the linear values pre-scaled to the gamma index
// range, so the one 12-bit shift both cancels the matrix's Q4.12 factor
// and yields the table index directly; there is exactly one rounding.
func fixedMatrixRow(m0, m1, m2 int32, vr, vg, vb, gammaMax int64) int64 {
	idx := (int64(m0)*vr + int64(m1)*vg + int64(m2)*vb + qRound) >> qFracBits
	if idx < 0 {
		return 0
	}
	if idx > gammaMax {
		return gammaMax
	}
	return idx
}
