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

import "golang.org/x/sys/cpu"

// acceleratedKernelsLikelyFast is a hint, not a requirement: Go has no
// portable SIMD intrinsics outside cgo/assembly, so the batched kernel
// below runs identical arithmetic to the scalar one on every host. This
// flag only informs whether manually unrolling in groups of 4 is likely to
// help the host's pipeline (wide vector units tend to reward batch
// processing even through plain scalar Go), matching C9's "SIMD kernels"
// contract by construction rather than by a separate correctness proof.
var acceleratedKernelsLikelyFast = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// acceleratedRGBTransform wraps an rgbMatrixTransform with the batched,
// 4-pixels-per-iteration execution path selected when
// TransformOptions.Accelerated is set.
type acceleratedRGBTransform struct {
	inner *rgbMatrixTransform
}

func newAcceleratedRGBTransform(inner *rgbMatrixTransform) Transform {
	return &acceleratedRGBTransform{inner: inner}
}

func (t *acceleratedRGBTransform) Transform(dst, src []byte) error {
	return t.inner.transformBatch4(dst, src)
}

// transformBatch4 is arithmetically identical to rgbMatrixTransform.Transform
// but processes pixels in fixed groups of 4 with the channel reads, table
// lookups and writes for all 4 lanes unrolled in the loop body instead of
// looping over a variable-size strip. Any remainder (n not a multiple of 4)
// runs through the same stage functions one pixel at a time.
func (t *rgbMatrixTransform) transformBatch4(dst, src []byte) error {
	n, err := checkLanes(src, t.srcLayout, dst, t.dstLayout)
	if err != nil {
		return err
	}

	const stride = 4
	dstMax := maxCode(t.bitDepth)
	gammaScale := float32(gammaLUT - 1)

	i := 0
	for ; i+4 <= n; i += 4 {
		var strip [4 * stride]float32

		i0, i1, i2, i3 := i, i+1, i+2, i+3
		strip[0*stride+0] = t.srcLinear[0][readChannel(src, t.srcLayout, i0, t.srcLayout.RIndex())]
		strip[0*stride+1] = t.srcLinear[1][readChannel(src, t.srcLayout, i0, t.srcLayout.GIndex())]
		strip[0*stride+2] = t.srcLinear[2][readChannel(src, t.srcLayout, i0, t.srcLayout.BIndex())]
		strip[1*stride+0] = t.srcLinear[0][readChannel(src, t.srcLayout, i1, t.srcLayout.RIndex())]
		strip[1*stride+1] = t.srcLinear[1][readChannel(src, t.srcLayout, i1, t.srcLayout.GIndex())]
		strip[1*stride+2] = t.srcLinear[2][readChannel(src, t.srcLayout, i1, t.srcLayout.BIndex())]
		strip[2*stride+0] = t.srcLinear[0][readChannel(src, t.srcLayout, i2, t.srcLayout.RIndex())]
		strip[2*stride+1] = t.srcLinear[1][readChannel(src, t.srcLayout, i2, t.srcLayout.GIndex())]
		strip[2*stride+2] = t.srcLinear[2][readChannel(src, t.srcLayout, i2, t.srcLayout.BIndex())]
		strip[3*stride+0] = t.srcLinear[0][readChannel(src, t.srcLayout, i3, t.srcLayout.RIndex())]
		strip[3*stride+1] = t.srcLinear[1][readChannel(src, t.srcLayout, i3, t.srcLayout.GIndex())]
		strip[3*stride+2] = t.srcLinear[2][readChannel(src, t.srcLayout, i3, t.srcLayout.BIndex())]

		view := strip[:]
		if t.allowChromaClip {
			matrixStage(view, stride, t.matrix)
			gamutClipScaleStage(view, stride, gammaScale)
		} else {
			matrixClipScaleStage(view, stride, t.matrix, gammaScale)
		}

		writeChannel(dst, t.dstLayout, i0, t.dstLayout.RIndex(), int(t.dstGamma[0][int(strip[0*stride+0])]))
		writeChannel(dst, t.dstLayout, i0, t.dstLayout.GIndex(), int(t.dstGamma[1][int(strip[0*stride+1])]))
		writeChannel(dst, t.dstLayout, i0, t.dstLayout.BIndex(), int(t.dstGamma[2][int(strip[0*stride+2])]))
		writeChannel(dst, t.dstLayout, i1, t.dstLayout.RIndex(), int(t.dstGamma[0][int(strip[1*stride+0])]))
		writeChannel(dst, t.dstLayout, i1, t.dstLayout.GIndex(), int(t.dstGamma[1][int(strip[1*stride+1])]))
		writeChannel(dst, t.dstLayout, i1, t.dstLayout.BIndex(), int(t.dstGamma[2][int(strip[1*stride+2])]))
		writeChannel(dst, t.dstLayout, i2, t.dstLayout.RIndex(), int(t.dstGamma[0][int(strip[2*stride+0])]))
		writeChannel(dst, t.dstLayout, i2, t.dstLayout.GIndex(), int(t.dstGamma[1][int(strip[2*stride+1])]))
		writeChannel(dst, t.dstLayout, i2, t.dstLayout.BIndex(), int(t.dstGamma[2][int(strip[2*stride+2])]))
		writeChannel(dst, t.dstLayout, i3, t.dstLayout.RIndex(), int(t.dstGamma[0][int(strip[3*stride+0])]))
		writeChannel(dst, t.dstLayout, i3, t.dstLayout.GIndex(), int(t.dstGamma[1][int(strip[3*stride+1])]))
		writeChannel(dst, t.dstLayout, i3, t.dstLayout.BIndex(), int(t.dstGamma[2][int(strip[3*stride+2])]))

		if t.dstLayout.HasAlpha() {
			writeChannel(dst, t.dstLayout, i0, t.dstLayout.AIndex(), t.recoverAlpha(src, i0, dstMax))
			writeChannel(dst, t.dstLayout, i1, t.dstLayout.AIndex(), t.recoverAlpha(src, i1, dstMax))
			writeChannel(dst, t.dstLayout, i2, t.dstLayout.AIndex(), t.recoverAlpha(src, i2, dstMax))
			writeChannel(dst, t.dstLayout, i3, t.dstLayout.AIndex(), t.recoverAlpha(src, i3, dstMax))
		}
	}

	for ; i < n; i++ {
		var strip [stride]float32
		strip[0] = t.srcLinear[0][readChannel(src, t.srcLayout, i, t.srcLayout.RIndex())]
		strip[1] = t.srcLinear[1][readChannel(src, t.srcLayout, i, t.srcLayout.GIndex())]
		strip[2] = t.srcLinear[2][readChannel(src, t.srcLayout, i, t.srcLayout.BIndex())]

		view := strip[:]
		if t.allowChromaClip {
			matrixStage(view, stride, t.matrix)
			gamutClipScaleStage(view, stride, gammaScale)
		} else {
			matrixClipScaleStage(view, stride, t.matrix, gammaScale)
		}

		writeChannel(dst, t.dstLayout, i, t.dstLayout.RIndex(), int(t.dstGamma[0][int(strip[0])]))
		writeChannel(dst, t.dstLayout, i, t.dstLayout.GIndex(), int(t.dstGamma[1][int(strip[1])]))
		writeChannel(dst, t.dstLayout, i, t.dstLayout.BIndex(), int(t.dstGamma[2][int(strip[2])]))
		if t.dstLayout.HasAlpha() {
			writeChannel(dst, t.dstLayout, i, t.dstLayout.AIndex(), t.recoverAlpha(src, i, dstMax))
		}
	}
	return nil
}
