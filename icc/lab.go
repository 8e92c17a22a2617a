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

import "math"

// LabToXYZ converts a CIELAB colour to CIEXYZ under the given reference
// white point. L is in [0, 100], a and b in [-128, 127] (ICC's unencoded
// Lab ranges). Callers that hold a LUT's normalised [0,1] Lab encoding
// must first denormalise it (see the PCS discussion in [Profile.ConnectionLut]).
func LabToXYZ(lab []float64, white [3]float64) (X, Y, Z float64) {
	if len(lab) < 3 {
		return 0, 0, 0
	}

	L, a, b := lab[0], lab[1], lab[2]

	fy := (L + 16) / 116
	fx := a/500 + fy
	fz := fy - b/200

	// inverse f function threshold: 6/29
	threshold := 6.0 / 29.0
	// scale factor: 108/841 = 3 * (6/29)^2
	scale := 108.0 / 841.0
	offset := 16.0 / 116.0

	var xr, yr, zr float64
	if fy > threshold {
		yr = fy * fy * fy
	} else {
		yr = (fy - offset) * scale
	}
	if fx > threshold {
		xr = fx * fx * fx
	} else {
		xr = (fx - offset) * scale
	}
	if fz > threshold {
		zr = fz * fz * fz
	} else {
		zr = (fz - offset) * scale
	}

	return xr * white[0], yr * white[1], zr * white[2]
}

// XYZToLab converts a CIEXYZ colour to CIELAB under the given reference
// white point, substituting the D50 illuminant for any zero white point
// component.
func XYZToLab(X, Y, Z float64, white [3]float64) (L, a, b float64) {
	wx, wy, wz := white[0], white[1], white[2]
	if wx == 0 {
		wx = d50WhitePoint[0]
	}
	if wy == 0 {
		wy = d50WhitePoint[1]
	}
	if wz == 0 {
		wz = d50WhitePoint[2]
	}

	xr := X / wx
	yr := Y / wy
	zr := Z / wz

	// f function threshold (6/29)^3
	threshold := 216.0 / 24389.0
	// scale factor for linear part: 841/108 = (29/6)^2 / 3
	scale := 841.0 / 108.0
	offset := 16.0 / 116.0

	var fx, fy, fz float64
	if xr > threshold {
		fx = cubeRoot(xr)
	} else {
		fx = xr*scale + offset
	}
	if yr > threshold {
		fy = cubeRoot(yr)
	} else {
		fy = yr*scale + offset
	}
	if zr > threshold {
		fz = cubeRoot(zr)
	} else {
		fz = zr*scale + offset
	}

	L = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)

	return L, a, b
}

// cubeRoot is the CIE f function's cube root for the above-threshold
// branch. math.Cbrt handles the full domain directly, where math.Pow with
// a 1/3 exponent would lose the last bits of precision.
func cubeRoot(x float64) float64 {
	return math.Cbrt(x)
}

// normaliseLab converts Lab values to the normalised [0,1] encoding LUT
// tags store them in.
// Input: L in [0, 100], a and b in [-128, 127].
func normaliseLab(lab []float64) []float64 {
	if len(lab) < 3 {
		return lab
	}
	return []float64{
		lab[0] / 100.0,           // L: [0, 100] -> [0, 1]
		(lab[1] + 128.0) / 255.0, // a: [-128, 127] -> [0, 1]
		(lab[2] + 128.0) / 255.0, // b: [-128, 127] -> [0, 1]
	}
}

// denormaliseLab converts a LUT's normalised [0,1] Lab encoding back to
// unencoded Lab values.
func denormaliseLab(lab []float64) []float64 {
	if len(lab) < 3 {
		return lab
	}
	return []float64{
		lab[0] * 100.0,       // L: [0, 1] -> [0, 100]
		lab[1]*255.0 - 128.0, // a: [0, 1] -> [-128, 127]
		lab[2]*255.0 - 128.0, // b: [0, 1] -> [-128, 127]
	}
}
