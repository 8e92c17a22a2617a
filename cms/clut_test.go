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

func TestCLUTTransformAllInterpolationMethods(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(7)
	require.NoError(t, err)
	rgb := icc.NewSRGBProfile()

	for _, method := range []InterpolationMethod{Tetrahedral, Pyramid, Prism, Linear} {
		opts := defaultOptions()
		opts.InterpolationMethod = method
		tr, err := MakeTransform(cmyk, rgb, RGB8, opts)
		require.NoError(t, err)

		src := []byte{0, 0, 0, 0} // no ink -> should stay light
		dst := make([]byte, 3)
		require.NoError(t, tr.Transform(dst, src))
		for _, v := range dst {
			require.GreaterOrEqual(t, int(v), 240)
		}
	}
}

// TestCLUTInterpolationMethodsAgreeOnMidTones checks the four interpolants
// stay within a few codes of one another away from grid corners, where their
// polyhedral subdivisions genuinely differ.
func TestCLUTInterpolationMethodsAgreeOnMidTones(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(17)
	require.NoError(t, err)
	rgb := icc.NewSRGBProfile()

	src := []byte{128, 128, 128, 128}
	var outputs [][]byte
	for _, method := range []InterpolationMethod{Tetrahedral, Pyramid, Prism, Linear} {
		opts := defaultOptions()
		opts.InterpolationMethod = method
		tr, err := MakeTransform(cmyk, rgb, RGB8, opts)
		require.NoError(t, err)

		dst := make([]byte, 3)
		require.NoError(t, tr.Transform(dst, src))
		outputs = append(outputs, dst)
	}

	for _, out := range outputs[1:] {
		for ch := range out {
			require.InDelta(t, int(outputs[0][ch]), int(out[ch]), 3)
		}
	}
}

// TestCLUTKExtremesSelectOuterCubes checks that K=0 and K=255 read exactly
// the first and last K-slice with no cross-blending: the synthetic CMYK
// profile's grid depends on K multiplicatively, so any bleed from the
// adjacent slice would shift the output.
func TestCLUTKExtremesSelectOuterCubes(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(5)
	require.NoError(t, err)
	rgb := icc.NewSRGBProfile()

	tr, err := MakeTransform(cmyk, rgb, RGB8, defaultOptions())
	require.NoError(t, err)

	// K=255: full black regardless of C/M/Y.
	dst := make([]byte, 3)
	require.NoError(t, tr.Transform(dst, []byte{40, 90, 200, 255}))
	for _, v := range dst {
		require.Equal(t, byte(0), v)
	}

	// K=0, no C/M/Y: paper white.
	require.NoError(t, tr.Transform(dst, []byte{0, 0, 0, 0}))
	for _, v := range dst {
		require.GreaterOrEqual(t, int(v), 240)
	}
}

func TestCLUTTransformLaneMismatch(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(5)
	require.NoError(t, err)
	rgb := icc.NewSRGBProfile()

	tr, err := MakeTransform(cmyk, rgb, RGB8, defaultOptions())
	require.NoError(t, err)

	src := make([]byte, 8) // 2 CMYK pixels
	dst := make([]byte, 3) // 1 RGB pixel
	err = tr.Transform(dst, src)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, LaneSizeMismatch, kind)
}

func TestCLUTTransformLaneNotMultipleOfChannels(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(5)
	require.NoError(t, err)
	rgb := icc.NewSRGBProfile()

	tr, err := MakeTransform(cmyk, rgb, RGB8, defaultOptions())
	require.NoError(t, err)

	src := make([]byte, 5) // not a multiple of 4
	dst := make([]byte, 3)
	err = tr.Transform(dst, src)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, LaneMultipleOfChannels, kind)
}
