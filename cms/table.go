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

import (
	"math"

	"seehuhn.de/go/gocms/icc"
)

// buildLinearTable samples curve at n evenly spaced input codes 0..n-1 and
// returns the linearized [0,1] value of each, using [icc.Curve.Evaluate].
// Built once per transform at construction time; never called from the
// per-pixel hot path.
func buildLinearTable(curve *icc.Curve, n int) ([]float32, error) {
	if curve == nil || n <= 0 {
		return nil, newError(InvalidTrc, "curve has no samples")
	}
	table := make([]float32, n)
	denom := float64(n - 1)
	if denom == 0 {
		denom = 1
	}
	for i := 0; i < n; i++ {
		x := float64(i) / denom
		y := curve.Evaluate(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, newError(InvalidTrc, "curve produced a non-finite value")
		}
		table[i] = clamp01(float32(y))
	}
	return table, nil
}

// buildGammaTable inverts curve into a gammaLUT-entry table: index j in
// [0, gammaLUT-1] represents linear value j/(gammaLUT-1); the stored entry
// is round(curve^-1(j/(gammaLUT-1)) * (2^bitDepth - 1)) clamped to the
// output range.
func buildGammaTable(curve *icc.Curve, gammaLUT, bitDepth int) ([]uint16, error) {
	if curve == nil || gammaLUT <= 0 {
		return nil, newError(InvalidTrc, "curve has no samples")
	}
	maxVal := (1 << bitDepth) - 1
	table := make([]uint16, gammaLUT)
	denom := float64(gammaLUT - 1)
	if denom == 0 {
		denom = 1
	}
	for j := 0; j < gammaLUT; j++ {
		linear := float64(j) / denom
		code := curve.Invert(linear)
		if math.IsNaN(code) || math.IsInf(code, 0) {
			return nil, newError(InvalidTrc, "curve could not be inverted")
		}
		table[j] = saturateToUint16(float32(code*float64(maxVal)), maxVal)
	}
	return table, nil
}

// Standard table sizes used throughout the package.
const (
	linearCap8 = 256
	gammaLUT   = 65536
)

// linearCapFor returns the linearization table size for a bit depth: one
// entry per representable input code, so a code indexes the table directly.
func linearCapFor(bitDepth int) int {
	return 1 << bitDepth
}
