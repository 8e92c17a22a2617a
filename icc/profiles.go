// seehuhn.de/go/icc - read and write ICC profiles
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

package icc

import "errors"

// Built-in synthetic profiles: this module embeds no real-world ICC
// binaries, so transform tests and examples build profiles directly
// through these constructors instead of [Decode]ing an asset file.

// NewSRGBProfile returns a synthetic matrix/TRC RGB profile using the sRGB
// primaries (Bradford-adapted to the D50 PCS) and the standard sRGB tone
// curve (ICC parametric curve type 3).
func NewSRGBProfile() *Profile {
	p := &Profile{
		Version:    Version4_3_0,
		Class:      DisplayDeviceProfile,
		ColorSpace: RGBSpace,
		PCS:        PCSXYZSpace,
		TagData:    map[TagType][]byte{},
	}

	// sRGB primaries in PCS XYZ (D50), Bradford-adapted from the IEC
	// 61966-2-1 D65 matrix.
	p.TagData[RedMatrixColumn] = encodeXYZTag(0.4361, 0.2225, 0.0139)
	p.TagData[GreenMatrixColumn] = encodeXYZTag(0.3851, 0.7169, 0.0971)
	p.TagData[BlueMatrixColumn] = encodeXYZTag(0.1431, 0.0606, 0.7141)
	p.TagData[MediaWhitePoint] = encodeXYZTag(d50WhitePoint[0], d50WhitePoint[1], d50WhitePoint[2])

	trc := srgbCurve()
	data := trc.Encode()
	p.TagData[RedTRC] = data
	p.TagData[GreenTRC] = data
	p.TagData[BlueTRC] = data

	return p
}

// srgbCurve returns the standard sRGB parametric TRC (ICC function type 3):
// y = ((x+0.055)/1.055)^2.4 for x >= 0.04045, else y = x/12.92.
func srgbCurve() *Curve {
	return &Curve{
		FuncType: 3,
		Params:   []float64{2.4, 1.0 / 1.055, 0.055 / 1.055, 1.0 / 12.92, 0.04045},
	}
}

// NewBT2020Profile returns a synthetic matrix/TRC RGB profile using the
// ITU-R BT.2020 primaries and D65 white point, Bradford-adapted to the D50
// PCS, with a gamma-2.4 TRC approximating BT.2020's own piecewise curve.
// BT.2020's exact curve has a short linear segment below 0.0181 that this
// profile does not reproduce.
func NewBT2020Profile() *Profile {
	const d65x, d65y = 0.3127, 0.3290
	d65White := chromaticityToXYZ(d65x, d65y)
	adapt := BradfordAdaptation(d65White, d50WhitePoint)

	rXYZ := mulMatrixVec3(adapt, chromaticityToXYZ(0.708, 0.292))
	gXYZ := mulMatrixVec3(adapt, chromaticityToXYZ(0.170, 0.797))
	bXYZ := mulMatrixVec3(adapt, chromaticityToXYZ(0.131, 0.046))

	p := &Profile{
		Version:    Version4_3_0,
		Class:      DisplayDeviceProfile,
		ColorSpace: RGBSpace,
		PCS:        PCSXYZSpace,
		TagData:    map[TagType][]byte{},
	}
	p.TagData[RedMatrixColumn] = encodeXYZTag(rXYZ[0], rXYZ[1], rXYZ[2])
	p.TagData[GreenMatrixColumn] = encodeXYZTag(gXYZ[0], gXYZ[1], gXYZ[2])
	p.TagData[BlueMatrixColumn] = encodeXYZTag(bXYZ[0], bXYZ[1], bXYZ[2])
	p.TagData[MediaWhitePoint] = encodeXYZTag(d50WhitePoint[0], d50WhitePoint[1], d50WhitePoint[2])

	trc := &Curve{Gamma: 2.4}
	data := trc.Encode()
	p.TagData[RedTRC] = data
	p.TagData[GreenTRC] = data
	p.TagData[BlueTRC] = data

	return p
}

// chromaticityToXYZ converts a CIE xy chromaticity (Y=1) to XYZ.
func chromaticityToXYZ(x, y float64) [3]float64 {
	return [3]float64{x / y, 1, (1 - x - y) / y}
}

// NewGrayProfile returns a synthetic gray-device profile with a simple
// gamma TRC.
func NewGrayProfile(gamma float64) *Profile {
	p := &Profile{
		Version:    Version4_3_0,
		Class:      DisplayDeviceProfile,
		ColorSpace: GraySpace,
		PCS:        PCSXYZSpace,
		TagData:    map[TagType][]byte{},
	}
	trc := &Curve{Gamma: gamma}
	p.TagData[GrayTRC] = trc.Encode()
	p.TagData[MediaWhitePoint] = encodeXYZTag(d50WhitePoint[0], d50WhitePoint[1], d50WhitePoint[2])
	return p
}

// NewCMYKProfile returns a synthetic CMYK output profile carrying both a
// 4-in/3-out AToB0 CLUT (device CMYK -> RGB-like connection, approximating
// simple subtractive mixing) and a 3-in/4-out BToA0 CLUT (the reverse, a
// naive full-GCR ink separation), each on a regular grid of the given edge
// length. It exercises the 4-channel CLUT path without needing a real
// press profile on disk.
func NewCMYKProfile(grid int) (*Profile, error) {
	if grid < 2 || grid > 255 {
		return nil, errors.New("icc: grid size out of range")
	}

	a2b, err := newLut8(grid, 4, 3, cmykToRGBGrid(grid))
	if err != nil {
		return nil, err
	}
	a2bData, err := a2b.Encode()
	if err != nil {
		return nil, err
	}

	b2a, err := newLut8(grid, 3, 4, rgbToCMYKGrid(grid))
	if err != nil {
		return nil, err
	}
	b2aData, err := b2a.Encode()
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Version:    Version4_3_0,
		Class:      OutputDeviceProfile,
		ColorSpace: CMYKSpace,
		PCS:        PCSXYZSpace,
		TagData:    map[TagType][]byte{},
	}
	p.TagData[AToB0] = a2bData
	p.TagData[BToA0] = b2aData
	p.TagData[MediaWhitePoint] = encodeXYZTag(d50WhitePoint[0], d50WhitePoint[1], d50WhitePoint[2])
	return p, nil
}

// NewCMYKLabProfile returns a synthetic CMYK output profile like
// [NewCMYKProfile], except its AToB0 CLUT connects through PCS Lab instead
// of PCS XYZ, matching the ICC requirement that Lab-PCS profiles be
// LUT-based (matrix/TRC profiles are always PCS XYZ). Only the
// CMYK-to-PCS direction is built: converting a Lab grid to XYZ happens
// once at table-build time, which the reverse direction's per-pixel
// lookup coordinates do not allow.
func NewCMYKLabProfile(grid int) (*Profile, error) {
	if grid < 2 || grid > 255 {
		return nil, errors.New("icc: grid size out of range")
	}

	a2b, err := newLut8(grid, 4, 3, cmykToLabGrid(grid))
	if err != nil {
		return nil, err
	}
	a2bData, err := a2b.Encode()
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Version:    Version4_3_0,
		Class:      OutputDeviceProfile,
		ColorSpace: CMYKSpace,
		PCS:        PCSLabSpace,
		TagData:    map[TagType][]byte{},
	}
	p.TagData[AToB0] = a2bData
	p.TagData[MediaWhitePoint] = encodeXYZTag(d50WhitePoint[0], d50WhitePoint[1], d50WhitePoint[2])
	return p, nil
}

// cmykToLabGrid fills a grid^4*3 sample array with normalised-Lab CLUT
// samples: lightness runs from 100 (no ink) to 0 (full ink), independent of
// C/M/Y, with a=b=0 throughout (a neutral grey ramp keyed on K alone).
func cmykToLabGrid(grid int) []float64 {
	s := float64(grid - 1)
	out := make([]float64, grid*grid*grid*grid*3)
	idx := 0
	for ci := 0; ci < grid; ci++ {
		for mi := 0; mi < grid; mi++ {
			for yi := 0; yi < grid; yi++ {
				for ki := 0; ki < grid; ki++ {
					k := float64(ki) / s
					lab := normaliseLab([]float64{100 * (1 - k), 0, 0})
					out[idx*3+0] = lab[0]
					out[idx*3+1] = lab[1]
					out[idx*3+2] = lab[2]
					idx++
				}
			}
		}
	}
	return out
}

// cmykToRGBGrid fills a grid^4*3 sample array with a naive subtractive
// CMYK -> RGB approximation: R=(1-C)(1-K), G=(1-M)(1-K), B=(1-Y)(1-K).
func cmykToRGBGrid(grid int) []float64 {
	s := float64(grid - 1)
	out := make([]float64, grid*grid*grid*grid*3)
	idx := 0
	for ci := 0; ci < grid; ci++ {
		c := float64(ci) / s
		for mi := 0; mi < grid; mi++ {
			m := float64(mi) / s
			for yi := 0; yi < grid; yi++ {
				y := float64(yi) / s
				for ki := 0; ki < grid; ki++ {
					k := float64(ki) / s
					ink := 1 - k
					out[idx*3+0] = (1 - c) * ink
					out[idx*3+1] = (1 - m) * ink
					out[idx*3+2] = (1 - y) * ink
					idx++
				}
			}
		}
	}
	return out
}

// rgbToCMYKGrid fills a grid^3*4 sample array with a naive full-GCR ink
// separation: K is the achromatic complement, C/M/Y carry the remaining
// chroma after removing K.
func rgbToCMYKGrid(grid int) []float64 {
	s := float64(grid - 1)
	out := make([]float64, grid*grid*grid*4)
	idx := 0
	for ri := 0; ri < grid; ri++ {
		r := float64(ri) / s
		for gi := 0; gi < grid; gi++ {
			g := float64(gi) / s
			for bi := 0; bi < grid; bi++ {
				b := float64(bi) / s
				k := 1 - max3(r, g, b)
				var c, m, y float64
				if k < 1 {
					c = (1 - r - k) / (1 - k)
					m = (1 - g - k) / (1 - k)
					y = (1 - b - k) / (1 - k)
				}
				out[idx*4+0] = clamp(c, 0, 1)
				out[idx*4+1] = clamp(m, 0, 1)
				out[idx*4+2] = clamp(y, 0, 1)
				out[idx*4+3] = clamp(k, 0, 1)
				idx++
			}
		}
	}
	return out
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// newLut8 builds a raw Lut8 (no matrix, identity input/output curves) from
// a flattened gridPoints^inputChannels*outputChannels sample array.
func newLut8(gridPoints, inputChannels, outputChannels int, clut []float64) (*Lut8, error) {
	if gridPoints < 2 || gridPoints > 255 {
		return nil, errors.New("icc: invalid grid size")
	}
	if inputChannels < 1 || inputChannels > 15 || outputChannels < 1 || outputChannels > 15 {
		return nil, errors.New("icc: invalid channel count")
	}
	want := 1
	for i := 0; i < inputChannels; i++ {
		want *= gridPoints
	}
	want *= outputChannels
	if len(clut) != want {
		return nil, errors.New("icc: clut size mismatch")
	}
	return &Lut8{
		inputChannels:  inputChannels,
		outputChannels: outputChannels,
		gridPoints:     gridPoints,
		clut:           clut,
	}, nil
}

// encodeXYZTag encodes an XYZType tag (the format [parseXYZ] reads).
func encodeXYZTag(x, y, z float64) []byte {
	data := make([]byte, 20)
	copy(data[0:4], "XYZ ")
	putS15Fixed16(data, 8, x)
	putS15Fixed16(data, 12, y)
	putS15Fixed16(data, 16, z)
	return data
}
