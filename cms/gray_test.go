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

	"seehuhn.de/go/gocms/icc"
)

func TestGrayToGrayIdentity(t *testing.T) {
	p := icc.NewGrayProfile(2.2)
	tr, err := MakeTransform(p, p, Gray8, defaultOptions())
	require.NoError(t, err)

	src := []byte{0, 64, 128, 255}
	dst := make([]byte, len(src))
	require.NoError(t, tr.Transform(dst, src))

	for i, v := range src {
		require.InDelta(t, int(v), int(dst[i]), 1)
	}
}

func TestGrayToGrayAlphaAppendsMaxAlpha(t *testing.T) {
	p := icc.NewGrayProfile(2.2)
	tr, err := MakeTransform(p, p, GrayAlpha8, defaultOptions())
	// p is a Gray profile, so a non-gray layout would be rejected by
	// MakeTransform's decision tree for src==dst==Gray; GrayAlpha8 is
	// itself a gray layout (IsGray() is true), so this must succeed.
	require.NoError(t, err)

	src := []byte{10, 20}
	dst := make([]byte, 4)
	require.NoError(t, tr.Transform(dst, src))
	require.Equal(t, byte(255), dst[1])
	require.Equal(t, byte(255), dst[3])
}

func TestGrayTransformBroadcastsToRGBA(t *testing.T) {
	linear := make([]float32, linearCap8)
	for i := range linear {
		linear[i] = float32(i) / float32(linearCap8-1)
	}
	gamma := make([]uint16, gammaLUT)
	for i := range gamma {
		gamma[i] = uint16(float64(i) * 255 / float64(gammaLUT-1))
	}

	tr := newGrayTransform(Gray8, RGBA8, 8, linear, 1.0, gamma)

	src := []byte{200}
	dst := make([]byte, 4)
	require.NoError(t, tr.Transform(dst, src))
	require.Equal(t, dst[0], dst[1])
	require.Equal(t, dst[1], dst[2])
	require.Equal(t, byte(255), dst[3])
}
