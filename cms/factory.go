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

// MakeTransform inspects src and dst and builds the one of {RGB-matrix,
// Gray, CMYK-CLUT} pipeline their color spaces and PCS support, following
// this decision order:
//
//  1. Both RGB, both PCS XYZ, layout not Gray: the matrix/TRC fast path.
//  2. src Gray, dst Gray or RGB, both PCS XYZ: the gray path.
//  3. src CMYK, dst RGB, dst PCS XYZ (src PCS XYZ or Lab), layout RGB/RGBA:
//     the 4-in/3-out CLUT path. A Lab-PCS source has its CLUT's Lab samples
//     converted to XYZ once at construction time; see clut.go.
//
// Anything else fails with UnsupportedProfileConnection.
func MakeTransform(src, dst *icc.Profile, layout Layout, opts TransformOptions) (Transform, error) {
	if err := checkBitDepth(opts.BitDepth, layout); err != nil {
		return nil, err
	}

	switch {
	case src.ColorSpace == icc.RGBSpace && dst.ColorSpace == icc.RGBSpace &&
		src.PCS == icc.PCSXYZSpace && dst.PCS == icc.PCSXYZSpace:
		if layout.IsGray() {
			return nil, newError(InvalidLayout, "gray layout requested for an RGB->RGB transform")
		}
		return makeRGBMatrixTransform(src, dst, layout, opts)

	case src.ColorSpace == icc.GraySpace &&
		(dst.ColorSpace == icc.RGBSpace || dst.ColorSpace == icc.GraySpace) &&
		src.PCS == icc.PCSXYZSpace && dst.PCS == icc.PCSXYZSpace:
		if !layout.IsGray() && dst.ColorSpace == icc.GraySpace {
			return nil, newError(InvalidLayout, "non-gray layout requested for a Gray->Gray transform")
		}
		return makeGrayTransform(src, dst, layout, opts)

	case src.ColorSpace == icc.CMYKSpace && dst.ColorSpace == icc.RGBSpace &&
		(src.PCS == icc.PCSXYZSpace || src.PCS == icc.PCSLabSpace) && dst.PCS == icc.PCSXYZSpace:
		if layout.IsGray() {
			return nil, newError(InvalidLayout, "gray layout requested for a CMYK->RGB transform")
		}
		return makeCMYKToRGBTransform(src, layout, opts)

	default:
		return nil, newError(UnsupportedProfileConnection, "")
	}
}

// MakeTransformRGBToCMYK builds the symmetric 3-in/4-out CLUT path (RGB
// device -> CMYK device), supplementing MakeTransform's CMYK->RGB direction
// with the reverse one, since the CLUT machinery in clut.go is inherently
// bidirectional.
func MakeTransformRGBToCMYK(src *icc.Profile, dst *icc.Profile, layout Layout, opts TransformOptions) (Transform, error) {
	if err := checkBitDepth(opts.BitDepth, layout); err != nil {
		return nil, err
	}
	if src.ColorSpace != icc.RGBSpace || dst.ColorSpace != icc.CMYKSpace {
		return nil, newError(UnsupportedProfileConnection, "")
	}
	if src.PCS != icc.PCSXYZSpace || dst.PCS != icc.PCSXYZSpace {
		return nil, newError(UnsupportedProfileConnection, "")
	}
	if layout.IsGray() {
		return nil, newError(InvalidLayout, "gray layout requested for an RGB->CMYK transform")
	}

	lut, err := dst.ConnectionLut(icc.PCSToDevice, toICCIntent(opts.RenderingIntent))
	if err != nil {
		return nil, wrapError(InvalidIcc, "reading destination CMYK connection LUT", err)
	}
	if lut.InputChannels() != 3 || lut.OutputChannels() != 4 {
		return nil, newError(UnsupportedProfileConnection, "destination profile has no 3-in/4-out CLUT")
	}

	return newCLUTTransform(lut, layout, opts.InterpolationMethod, opts.BitDepth, false, dst.WhitePoint())
}

func checkBitDepth(bitDepth int, layout Layout) error {
	if layout.Is16Bit() {
		switch bitDepth {
		case 10, 12, 16:
			return nil
		}
		return newError(InvalidLayout, "16-bit-storage layout requires bit depth 10, 12 or 16")
	}
	if bitDepth != 8 {
		return newError(InvalidLayout, "8-bit-storage layout requires bit depth 8")
	}
	return nil
}

// toICCIntent converts a cms.RenderingIntent to the identically-numbered
// icc.RenderingIntent.
func toICCIntent(ri RenderingIntent) icc.RenderingIntent {
	return icc.RenderingIntent(ri)
}

func makeRGBMatrixTransform(src, dst *icc.Profile, layout Layout, opts TransformOptions) (Transform, error) {
	srcMatrix, srcR, srcG, srcB, err := src.RGBMatrixColumns()
	if err != nil {
		return nil, wrapError(InvalidIcc, "reading source RGB matrix/TRC", err)
	}
	dstMatrix, dstR, dstG, dstB, err := dst.RGBMatrixColumns()
	if err != nil {
		return nil, wrapError(InvalidIcc, "reading destination RGB matrix/TRC", err)
	}

	adapt := icc.BradfordAdaptation(src.WhitePoint(), dst.WhitePoint())
	combined, err := combineRGBMatrices(srcMatrix, src.WhitePoint(), dstMatrix, dst.WhitePoint(), adapt)
	if err != nil {
		return nil, err
	}

	linearCap := linearCapFor(opts.BitDepth)
	var srcLinear [3][]float32
	for i, c := range [3]*icc.Curve{srcR, srcG, srcB} {
		table, err := buildLinearTable(c, linearCap)
		if err != nil {
			return nil, err
		}
		srcLinear[i] = table
	}

	var dstGamma [3][]uint16
	for i, c := range [3]*icc.Curve{dstR, dstG, dstB} {
		table, err := buildGammaTable(c, gammaLUT, opts.BitDepth)
		if err != nil {
			return nil, err
		}
		dstGamma[i] = table
	}

	allowChromaClip := opts.AllowChromaClipping && opts.RenderingIntent.allowsGamutClip()

	if opts.PreferFixedPoint {
		fx, ok, err := newFixedPointTransform(layout, opts.BitDepth, srcLinear, combined, dstGamma, allowChromaClip)
		if err != nil {
			return nil, err
		}
		if ok {
			return fx, nil
		}
	}

	rgbTransform := newRGBMatrixTransform(layout, layout, opts.BitDepth, srcLinear, combined, dstGamma, allowChromaClip)
	if opts.Accelerated && acceleratedKernelsLikelyFast {
		return newAcceleratedRGBTransform(rgbTransform), nil
	}
	return rgbTransform, nil
}

func makeGrayTransform(src, dst *icc.Profile, layout Layout, opts TransformOptions) (Transform, error) {
	srcCurve, err := src.GrayCurve()
	if err != nil {
		return nil, wrapError(InvalidIcc, "reading source gray TRC", err)
	}

	var dstCurve *icc.Curve
	if dst.ColorSpace == icc.GraySpace {
		dstCurve, err = dst.GrayCurve()
		if err != nil {
			return nil, wrapError(InvalidIcc, "reading destination gray TRC", err)
		}
	} else {
		// dst is RGB: gray has no chroma, so every channel of a neutral
		// gray pixel gets the same code. The green TRC is used as the
		// representative curve, matching the channel human vision weights
		// most heavily for achromatic luminance.
		_, _, dstCurve, _, err = dst.RGBMatrixColumns()
		if err != nil {
			return nil, wrapError(InvalidIcc, "reading destination RGB matrix/TRC", err)
		}
	}

	srcLinear, err := buildLinearTable(srcCurve, linearCapFor(opts.BitDepth))
	if err != nil {
		return nil, err
	}
	dstGamma, err := buildGammaTable(dstCurve, gammaLUT, opts.BitDepth)
	if err != nil {
		return nil, err
	}

	// The gray source side is always a bare single-channel buffer; layout
	// describes the destination. Gray->GrayAlpha and Gray->RGB(A) therefore
	// widen per pixel, with alpha written as fully opaque.
	srcLayout := Gray8
	if layout.Is16Bit() {
		srcLayout = Gray16
	}
	return newGrayTransform(srcLayout, layout, opts.BitDepth, srcLinear, 1.0, dstGamma), nil
}

func makeCMYKToRGBTransform(src *icc.Profile, layout Layout, opts TransformOptions) (Transform, error) {
	lut, err := src.ConnectionLut(icc.DeviceToPCS, toICCIntent(opts.RenderingIntent))
	if err != nil {
		return nil, wrapError(InvalidIcc, "reading source CMYK connection LUT", err)
	}
	if lut.InputChannels() != 4 || lut.OutputChannels() != 3 {
		return nil, newError(UnsupportedProfileConnection, "source profile has no 4-in/3-out CLUT")
	}
	pcsLab := src.PCS == icc.PCSLabSpace
	return newCLUTTransform(lut, layout, opts.InterpolationMethod, opts.BitDepth, pcsLab, src.WhitePoint())
}
