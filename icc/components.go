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

// Direction specifies the direction of a colour transformation.
type Direction int

const (
	// DeviceToPCS converts from device colour space to Profile Connection Space.
	DeviceToPCS Direction = iota
	// PCSToDevice converts from Profile Connection Space to device colour space.
	PCSToDevice
)

// parseXYZ decodes an XYZType tag body (the format [encodeXYZTag] writes)
// into its three S15Fixed16 components.
func parseXYZ(data []byte) ([3]float64, error) {
	if len(data) < 20 {
		return [3]float64{}, errInvalidTagData
	}
	if string(data[0:4]) != "XYZ " {
		return [3]float64{}, errUnexpectedType
	}

	x := getS15Fixed16(data, 8)
	y := getS15Fixed16(data, 12)
	z := getS15Fixed16(data, 16)

	return [3]float64{x, y, z}, nil
}

// RGBMatrixColumns returns the device-RGB-to-XYZ matrix (row-major, PCS
// XYZ = M*RGB) built from the profile's rXYZ/gXYZ/bXYZ tags, together with
// the three channel TRCs. It returns an error if the profile is not a
// matrix/TRC profile (see [Profile.IsMatrixTRC]).
func (p *Profile) RGBMatrixColumns() (matrix [9]float64, r, g, b *Curve, err error) {
	if !p.IsMatrixTRC() {
		return matrix, nil, nil, nil, errors.New("icc: profile has no rXYZ/gXYZ/bXYZ + TRC tags")
	}

	rXYZ, err := parseXYZ(p.TagData[RedMatrixColumn])
	if err != nil {
		return matrix, nil, nil, nil, err
	}
	gXYZ, err := parseXYZ(p.TagData[GreenMatrixColumn])
	if err != nil {
		return matrix, nil, nil, nil, err
	}
	bXYZ, err := parseXYZ(p.TagData[BlueMatrixColumn])
	if err != nil {
		return matrix, nil, nil, nil, err
	}

	matrix = [9]float64{
		rXYZ[0], gXYZ[0], bXYZ[0],
		rXYZ[1], gXYZ[1], bXYZ[1],
		rXYZ[2], gXYZ[2], bXYZ[2],
	}

	r, err = DecodeCurve(p.TagData[RedTRC])
	if err != nil {
		return matrix, nil, nil, nil, err
	}
	g, err = DecodeCurve(p.TagData[GreenTRC])
	if err != nil {
		return matrix, nil, nil, nil, err
	}
	b, err = DecodeCurve(p.TagData[BlueTRC])
	if err != nil {
		return matrix, nil, nil, nil, err
	}

	return matrix, r, g, b, nil
}

// IsMatrixTRC reports whether the profile carries the rXYZ/gXYZ/bXYZ +
// rTRC/gTRC/bTRC tag set needed for [Profile.RGBMatrixColumns].
func (p *Profile) IsMatrixTRC() bool {
	_, hasRXYZ := p.TagData[RedMatrixColumn]
	_, hasGXYZ := p.TagData[GreenMatrixColumn]
	_, hasBXYZ := p.TagData[BlueMatrixColumn]
	_, hasRTRC := p.TagData[RedTRC]
	_, hasGTRC := p.TagData[GreenTRC]
	_, hasBTRC := p.TagData[BlueTRC]
	return hasRXYZ && hasGXYZ && hasBXYZ && hasRTRC && hasGTRC && hasBTRC
}

// GrayCurve returns the profile's gray TRC, for gray-device profiles.
func (p *Profile) GrayCurve() (*Curve, error) {
	data, ok := p.TagData[GrayTRC]
	if !ok {
		return nil, errors.New("icc: profile has no kTRC tag")
	}
	return DecodeCurve(data)
}

// HasGrayTRC reports whether the profile carries a kTRC tag.
func (p *Profile) HasGrayTRC() bool {
	_, ok := p.TagData[GrayTRC]
	return ok
}

// WhitePoint returns the profile's media white point in PCS XYZ, falling
// back to the D50 illuminant if no wtpt tag is present.
func (p *Profile) WhitePoint() [3]float64 {
	data, ok := p.TagData[MediaWhitePoint]
	if !ok {
		return d50WhitePoint
	}
	xyz, err := parseXYZ(data)
	if err != nil {
		return d50WhitePoint
	}
	return xyz
}

// ConnectionLut selects and decodes the A2B/B2A LUT tag matching dir and
// intent, falling back to the *0 (perceptual) tag when the requested
// intent is not present. For profiles with PCS [PCSLabSpace], the LUT's
// output (DeviceToPCS) or input (PCSToDevice) channels carry Lab encoded
// in the normalised [0,1] range LUT tags use; see [LabToXYZ]/[XYZToLab]
// for converting that to and from CIEXYZ.
func (p *Profile) ConnectionLut(dir Direction, intent RenderingIntent) (Lut, error) {
	var tagType TagType
	if dir == DeviceToPCS {
		switch intent {
		case Perceptual:
			tagType = AToB0
		case RelativeColorimetric, AbsoluteColorimetric:
			tagType = AToB1
		case Saturation:
			tagType = AToB2
		}
		if _, ok := p.TagData[tagType]; !ok {
			tagType = AToB0
		}
	} else {
		switch intent {
		case Perceptual:
			tagType = BToA0
		case RelativeColorimetric, AbsoluteColorimetric:
			tagType = BToA1
		case Saturation:
			tagType = BToA2
		}
		if _, ok := p.TagData[tagType]; !ok {
			tagType = BToA0
		}
	}

	data, ok := p.TagData[tagType]
	if !ok {
		return nil, errors.New("icc: missing LUT tag")
	}
	return DecodeLut(data)
}
