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

func TestMakeTransformFloatIdentitySRGB(t *testing.T) {
	p := icc.NewSRGBProfile()
	tr, err := MakeTransformFloat(p, p, RGBA8, defaultOptions())
	require.NoError(t, err)

	src := []float32{0.5, 0.25, 0.78, 0.9, 0, 0, 0, 1, 1, 1, 1, 0.5}
	dst := make([]float32, len(src))
	require.NoError(t, tr.Transform(dst, src))

	for i, v := range src {
		require.InDelta(t, float64(v), float64(dst[i]), 0.002)
		require.GreaterOrEqual(t, dst[i], float32(0))
		require.LessOrEqual(t, dst[i], float32(1))
	}
}

func TestMakeTransformFloatClampsOutOfRangeInput(t *testing.T) {
	p := icc.NewSRGBProfile()
	tr, err := MakeTransformFloat(p, p, RGB8, defaultOptions())
	require.NoError(t, err)

	src := []float32{1.5, -0.2, 0.5}
	dst := make([]float32, len(src))
	require.NoError(t, tr.Transform(dst, src))

	require.InDelta(t, 1.0, float64(dst[0]), 0.002)
	require.InDelta(t, 0.0, float64(dst[1]), 0.002)
}

func TestMakeTransformFloatLaneErrors(t *testing.T) {
	p := icc.NewSRGBProfile()
	tr, err := MakeTransformFloat(p, p, RGB8, defaultOptions())
	require.NoError(t, err)

	err = tr.Transform(make([]float32, 3), make([]float32, 6))
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, LaneSizeMismatch, kind)

	err = tr.Transform(make([]float32, 4), make([]float32, 4))
	require.Error(t, err)
	kind, ok = KindOf(err)
	require.True(t, ok)
	require.Equal(t, LaneMultipleOfChannels, kind)
}

func TestMakeTransformFloatRejectsGrayLayout(t *testing.T) {
	p := icc.NewSRGBProfile()
	_, err := MakeTransformFloat(p, p, Gray8, defaultOptions())
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, InvalidLayout, kind)
}
