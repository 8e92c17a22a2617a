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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvert3x64RoundTrip(t *testing.T) {
	m := [9]float64{
		2, 0, 0,
		0, 3, 0,
		0, 0, 4,
	}
	inv, err := invert3x64(m)
	require.NoError(t, err)

	identity := mul3x64(m, inv)
	want := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range identity {
		require.InDelta(t, want[i], identity[i], 1e-9)
	}
}

func TestInvert3x64Singular(t *testing.T) {
	m := [9]float64{
		1, 2, 3,
		2, 4, 6,
		1, 1, 1,
	}
	_, err := invert3x64(m)
	require.Error(t, err)
}

func TestCombineRGBMatricesIdentityWhenSameProfile(t *testing.T) {
	srcToPCS := [9]float64{
		0.4361, 0.3851, 0.1431,
		0.2225, 0.7169, 0.0606,
		0.0139, 0.0971, 0.7141,
	}
	white := [3]float64{0.9642, 1.0, 0.8249}
	adapt := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

	m, err := combineRGBMatrices(srcToPCS, white, srcToPCS, white, adapt)
	require.NoError(t, err)

	// M_dst^-1 * I * M_src == I when src == dst
	for i, v := range m {
		want := float32(0)
		if i%4 == 0 {
			want = 1
		}
		require.InDelta(t, float64(want), float64(v), 1e-3)
	}
}

func TestRGBMatrixTransformPassesAlphaThrough(t *testing.T) {
	linear := make([]float32, linearCap8)
	for i := range linear {
		linear[i] = float32(i) / float32(linearCap8-1)
	}
	gamma := make([]uint16, gammaLUT)
	for i := range gamma {
		gamma[i] = uint16(float64(i) * 255 / float64(gammaLUT-1))
	}

	tr := newRGBMatrixTransform(RGBA8, RGBA8, 8,
		[3][]float32{linear, linear, linear},
		identityMatrix3(),
		[3][]uint16{gamma, gamma, gamma},
		false,
	)

	src := []byte{10, 20, 30, 77}
	dst := make([]byte, 4)
	require.NoError(t, tr.Transform(dst, src))
	require.Equal(t, byte(77), dst[3]) // alpha passes through unchanged at equal bit depth
}
