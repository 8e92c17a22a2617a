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

// clutTransform is the CLUT-based path (C5): either a 3-in/N-out transform
// (RGB-like input, driven through a single cube) or a 4-in/3-out one
// (CMYK-like input, driven through a pair of adjacent cubes sliced out of
// the fourth input dimension). Which shape applies is fixed by inChannels.
type clutTransform struct {
	method      InterpolationMethod
	grid        int
	rgbLayout   Layout
	rawChannels int // channel count of the packed, alpha-less side (e.g. 4 for CMYK)
	bitDepth    int // shared code bit depth of both sides: 8, 10, 12 or 16

	inChannels, outChannels int

	cube   cube3D   // valid when inChannels == 3
	slices []cube3D // valid when inChannels == 4, len == grid, sliced along input 4
}

// newCLUTTransform builds a clutTransform from an icc.Lut's raw sample
// grid. When lut has 3 input channels, rgbLayout describes the input side
// and the packed side (width outChannels) is the output. When lut has 4
// input channels, rgbLayout describes the output side (width 3 is assumed)
// and the packed side is the input.
//
// pcsLab and white only matter for the 4-in/3-out direction: when pcsLab is
// set, the CLUT's 3-channel output is ICC's normalised-[0,1] Lab encoding
// rather than PCS XYZ, and is converted to (white-relative, normalised)
// XYZ once here at construction time via [icc.LabToXYZ], so the per-pixel
// interpolation path (transformCMYKLike) never has to touch Lab math.
func newCLUTTransform(lut icc.Lut, rgbLayout Layout, method InterpolationMethod, bitDepth int, pcsLab bool, white [3]float64) (*clutTransform, error) {
	grid, raw, inCh, outCh, ok := lut.RawGrid()
	if !ok {
		return nil, newError(InvalidIcc, "profile connection has no usable CLUT grid")
	}
	if inCh != 3 && inCh != 4 {
		return nil, newError(InvalidIcc, "unsupported CLUT input dimension")
	}
	if outCh != 3 && outCh != 4 {
		return nil, newError(InvalidIcc, "unsupported CLUT output dimension")
	}

	t := &clutTransform{
		method:      method,
		grid:        grid,
		rgbLayout:   rgbLayout,
		bitDepth:    bitDepth,
		inChannels:  inCh,
		outChannels: outCh,
	}
	if inCh == 3 {
		t.rawChannels = outCh
		t.cube = buildCube3D(raw, grid, outCh)
	} else {
		t.rawChannels = 4
		if pcsLab && outCh == 3 {
			raw = convertLabGridToXYZ(raw, outCh, white)
		}
		t.slices = build4DSlices(raw, grid, outCh)
	}
	return t, nil
}

// convertLabGridToXYZ rewrites a CLUT's ICC normalised-[0,1] Lab samples
// (the wire encoding LUT tags use) into normalised XYZ, dividing by white
// so neutral greys land near [0,1] the same way a PCS-XYZ grid already
// does. Applied once per grid, not per pixel.
func convertLabGridToXYZ(raw []float64, outCh int, white [3]float64) []float64 {
	points := len(raw) / outCh
	out := make([]float64, len(raw))
	for i := 0; i < points; i++ {
		l, a, b := raw[i*outCh+0], raw[i*outCh+1], raw[i*outCh+2]
		x, y, z := icc.LabToXYZ([]float64{l * 100, a*255 - 128, b*255 - 128}, white)
		out[i*outCh+0] = x / white[0]
		out[i*outCh+1] = y / white[1]
		out[i*outCh+2] = z / white[2]
		for ch := 3; ch < outCh; ch++ {
			out[i*outCh+ch] = raw[i*outCh+ch]
		}
	}
	return out
}

// buildCube3D packs a flat, unpadded G^3*outCh sample array into a
// stride-4 cube3D (see cube3D.fetch).
func buildCube3D(raw []float64, grid, outCh int) cube3D {
	n := grid * grid * grid
	data := make([]float32, n*4)
	for idx := 0; idx < n; idx++ {
		for ch := 0; ch < outCh; ch++ {
			data[idx*4+ch] = float32(raw[idx*outCh+ch])
		}
	}
	return cube3D{data: data, grid: grid}
}

// build4DSlices splits a flat G^4*outCh sample array, stored with the
// fourth input dimension ("K") fastest-varying, into grid independent
// stride-4 cube3D values, one per K value.
func build4DSlices(raw []float64, grid, outCh int) []cube3D {
	n := grid * grid * grid
	slices := make([]cube3D, grid)
	for w := 0; w < grid; w++ {
		data := make([]float32, n*4)
		idx := 0
		for c := 0; c < grid; c++ {
			for m := 0; m < grid; m++ {
				for y := 0; y < grid; y++ {
					rawIdx := (((c*grid+m)*grid+y)*grid + w) * outCh
					for ch := 0; ch < outCh; ch++ {
						data[idx*4+ch] = float32(raw[rawIdx+ch])
					}
					idx++
				}
			}
		}
		slices[w] = cube3D{data: data, grid: grid}
	}
	return slices
}

func rawBytesPerPixel(channels, bitDepth int) int {
	bpc := 1
	if bitDepth > 8 {
		bpc = 2
	}
	return channels * bpc
}

func readRawChannel(buf []byte, bitDepth, channels, i, idx int) int {
	bpp := rawBytesPerPixel(channels, bitDepth)
	if bitDepth > 8 {
		off := i*bpp + idx*2
		return int(buf[off])<<8 | int(buf[off+1])
	}
	return int(buf[i*bpp+idx])
}

func writeRawChannel(buf []byte, bitDepth, channels, i, idx, value int) {
	bpp := rawBytesPerPixel(channels, bitDepth)
	if bitDepth > 8 {
		off := i*bpp + idx*2
		buf[off] = byte(value >> 8)
		buf[off+1] = byte(value)
		return
	}
	buf[i*bpp+idx] = byte(value)
}

// compressTo255 maps an integer code in [0, maxCode] onto the [0, 255]
// index space the interpolators operate in.
func compressTo255(code, maxCode int) int {
	if maxCode == 255 {
		return code
	}
	v := roundHalfAwayFromZero(float32(code) * 255 / float32(maxCode))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func (t *clutTransform) Transform(dst, src []byte) error {
	if t.inChannels == 3 {
		return t.transformRGBLike(dst, src)
	}
	return t.transformCMYKLike(dst, src)
}

// transformRGBLike handles the 3-in/N-out direction: src is packed under
// rgbLayout, dst is a raw rawChannels-wide buffer (e.g. RGB → CMYK).
func (t *clutTransform) transformRGBLike(dst, src []byte) error {
	n, err := pixelCount(src, t.rgbLayout)
	if err != nil {
		return err
	}
	dstBpp := rawBytesPerPixel(t.rawChannels, t.bitDepth)
	if dstBpp == 0 || len(dst)%dstBpp != 0 {
		return newError(LaneMultipleOfChannels, "")
	}
	if len(dst)/dstBpp != n {
		return newError(LaneSizeMismatch, "")
	}

	codeMax := maxCode(t.bitDepth)
	scale := float32(codeMax)

	for i := 0; i < n; i++ {
		cr := compressTo255(readChannel(src, t.rgbLayout, i, t.rgbLayout.RIndex()), codeMax)
		cg := compressTo255(readChannel(src, t.rgbLayout, i, t.rgbLayout.GIndex()), codeMax)
		cb := compressTo255(readChannel(src, t.rgbLayout, i, t.rgbLayout.BIndex()), codeMax)

		out := interpolate3D(t.method, t.cube, cr, cg, cb)
		for ch := 0; ch < t.outChannels; ch++ {
			v := roundHalfAwayFromZero(clampF(out[ch]*scale, 0, scale))
			writeRawChannel(dst, t.bitDepth, t.rawChannels, i, ch, int(v))
		}
	}
	return nil
}

// transformCMYKLike handles the 4-in/3-out direction: src is a raw
// rawChannels-wide buffer (CMYK), dst is packed under rgbLayout.
func (t *clutTransform) transformCMYKLike(dst, src []byte) error {
	srcBpp := rawBytesPerPixel(t.rawChannels, t.bitDepth)
	if srcBpp == 0 || len(src)%srcBpp != 0 {
		return newError(LaneMultipleOfChannels, "")
	}
	n := len(src) / srcBpp
	m, err := pixelCount(dst, t.rgbLayout)
	if err != nil {
		return err
	}
	if m != n {
		return newError(LaneSizeMismatch, "")
	}

	codeMax := maxCode(t.bitDepth)
	scale := float32(codeMax)

	for i := 0; i < n; i++ {
		cc := compressTo255(readRawChannel(src, t.bitDepth, t.rawChannels, i, 0), codeMax)
		cm := compressTo255(readRawChannel(src, t.bitDepth, t.rawChannels, i, 1), codeMax)
		cy := compressTo255(readRawChannel(src, t.bitDepth, t.rawChannels, i, 2), codeMax)
		ck := compressTo255(readRawChannel(src, t.bitDepth, t.rawChannels, i, 3), codeMax)

		w, wn, frac := gridCoords(ck, t.grid)
		out := interpolate4D(t.method, t.slices[w], t.slices[wn], cc, cm, cy, frac)

		writeChannel(dst, t.rgbLayout, i, t.rgbLayout.RIndex(), int(roundHalfAwayFromZero(clampF(out[0]*scale, 0, scale))))
		writeChannel(dst, t.rgbLayout, i, t.rgbLayout.GIndex(), int(roundHalfAwayFromZero(clampF(out[1]*scale, 0, scale))))
		writeChannel(dst, t.rgbLayout, i, t.rgbLayout.BIndex(), int(roundHalfAwayFromZero(clampF(out[2]*scale, 0, scale))))
		if t.rgbLayout.HasAlpha() {
			writeChannel(dst, t.rgbLayout, i, t.rgbLayout.AIndex(), codeMax)
		}
	}
	return nil
}
