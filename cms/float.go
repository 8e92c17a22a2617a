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

import "seehuhn.de/go/gocms/icc"

// TransformFloat is the float32 counterpart of [Transform]: channel values
// are carried as float32 in [0, 1] instead of integer codes. Values
// returned by [MakeTransformFloat] are immutable and safe for concurrent
// use on disjoint buffers.
type TransformFloat interface {
	Transform(dst, src []float32) error
}

// MakeTransformFloat is the float entry point matching [MakeTransform]'s
// integer ones. Only the matrix/TRC RGB->RGB path is offered for float
// buffers; layout selects the channel order (RGB or RGBA, gray layouts are
// rejected) and its storage width is ignored, since float lanes have no
// 8/16-bit packing. Internally the pipeline runs through 16-bit-resolution
// tables, the finest this package builds.
func MakeTransformFloat(src, dst *icc.Profile, layout Layout, opts TransformOptions) (TransformFloat, error) {
	if layout.IsGray() {
		return nil, newError(InvalidLayout, "gray layout requested for an RGB->RGB transform")
	}
	if src.ColorSpace != icc.RGBSpace || dst.ColorSpace != icc.RGBSpace ||
		src.PCS != icc.PCSXYZSpace || dst.PCS != icc.PCSXYZSpace {
		return nil, newError(UnsupportedProfileConnection, "")
	}

	intOpts := opts
	intOpts.BitDepth = 16
	intOpts.PreferFixedPoint = false
	intOpts.Accelerated = false

	intLayout := RGB16
	if layout.HasAlpha() {
		intLayout = RGBA16
	}
	inner, err := MakeTransform(src, dst, intLayout, intOpts)
	if err != nil {
		return nil, err
	}
	return &floatRGBTransform{inner: inner.(*rgbMatrixTransform)}, nil
}

// floatRGBTransform adapts the integer rgbMatrixTransform pipeline to
// float32 lanes: inputs are clamped to [0, 1] and quantized onto the
// 16-bit linearization table, outputs are the 16-bit gamma codes scaled
// back to [0, 1].
type floatRGBTransform struct {
	inner *rgbMatrixTransform
}

func (t *floatRGBTransform) Transform(dst, src []float32) error {
	channels := t.inner.srcLayout.Channels()
	if len(src)%channels != 0 || len(dst)%channels != 0 {
		return newError(LaneMultipleOfChannels, "")
	}
	if len(src) != len(dst) {
		return newError(LaneSizeMismatch, "")
	}
	n := len(src) / channels

	in := t.inner
	codeMax := float32(maxCode(in.bitDepth))
	gammaScale := float32(gammaLUT - 1)
	hasAlpha := in.srcLayout.HasAlpha()

	const stride = 4
	var strip [scratchStripSize]float32
	stripPixels := scratchStripSize / stride

	for base := 0; base < n; base += stripPixels {
		count := stripPixels
		if base+count > n {
			count = n - base
		}

		for k := 0; k < count; k++ {
			off := (base + k) * channels
			strip[k*stride+0] = in.srcLinear[0][quantizeFloatCode(src[off+0], codeMax)]
			strip[k*stride+1] = in.srcLinear[1][quantizeFloatCode(src[off+1], codeMax)]
			strip[k*stride+2] = in.srcLinear[2][quantizeFloatCode(src[off+2], codeMax)]
		}

		view := strip[:count*stride]
		if in.allowChromaClip {
			matrixStage(view, stride, in.matrix)
			gamutClipScaleStage(view, stride, gammaScale)
		} else {
			matrixClipScaleStage(view, stride, in.matrix, gammaScale)
		}

		for k := 0; k < count; k++ {
			off := (base + k) * channels
			dst[off+0] = float32(in.dstGamma[0][int(strip[k*stride+0])]) / codeMax
			dst[off+1] = float32(in.dstGamma[1][int(strip[k*stride+1])]) / codeMax
			dst[off+2] = float32(in.dstGamma[2][int(strip[k*stride+2])]) / codeMax
			if hasAlpha {
				dst[off+3] = clamp01(src[off+3])
			}
		}
	}
	return nil
}

// quantizeFloatCode maps a float32 channel value in [0, 1] onto the integer
// code range a 16-bit linearization table is indexed by.
func quantizeFloatCode(v, codeMax float32) int {
	return int(roundHalfAwayFromZero(clamp01(v) * codeMax))
}
