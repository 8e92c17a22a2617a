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

func defaultOptions() TransformOptions {
	return TransformOptions{
		BitDepth:            8,
		RenderingIntent:     Perceptual,
		AllowChromaClipping: true,
		InterpolationMethod: Tetrahedral,
	}
}

func TestMakeTransformIdentitySRGB(t *testing.T) {
	p := icc.NewSRGBProfile()
	tr, err := MakeTransform(p, p, RGB8, defaultOptions())
	require.NoError(t, err)

	src := []byte{255, 255, 255, 0, 0, 0, 128, 64, 32}
	dst := make([]byte, len(src))
	require.NoError(t, tr.Transform(dst, src))

	require.InDelta(t, 255, int(dst[0]), 1)
	require.InDelta(t, 255, int(dst[1]), 1)
	require.InDelta(t, 255, int(dst[2]), 1)
	require.InDelta(t, 0, int(dst[3]), 1)
	require.InDelta(t, 0, int(dst[4]), 1)
	require.InDelta(t, 0, int(dst[5]), 1)
}

func TestMakeTransformRejectsGrayLayoutForRGB(t *testing.T) {
	p := icc.NewSRGBProfile()
	_, err := MakeTransform(p, p, Gray8, defaultOptions())
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, InvalidLayout, kind)
}

func TestMakeTransformGrayToRGB(t *testing.T) {
	gray := icc.NewGrayProfile(2.2)
	rgb := icc.NewSRGBProfile()

	tr, err := MakeTransform(gray, rgb, RGB8, defaultOptions())
	require.NoError(t, err)

	src := []byte{0, 128, 255}
	dst := make([]byte, 9)
	require.NoError(t, tr.Transform(dst, src))

	// each gray input broadcasts equally to R, G, B
	for i := 0; i < 3; i++ {
		require.Equal(t, dst[i*3], dst[i*3+1])
		require.Equal(t, dst[i*3+1], dst[i*3+2])
	}
	require.Equal(t, byte(0), dst[0])
	require.InDelta(t, 255, int(dst[6]), 1)
}

func TestMakeTransformGrayToGrayRejectsRGBLayout(t *testing.T) {
	gray := icc.NewGrayProfile(2.2)
	_, err := MakeTransform(gray, gray, RGB8, defaultOptions())
	require.Error(t, err)
}

func TestMakeTransformCMYKToRGB(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(5)
	require.NoError(t, err)
	rgb := icc.NewSRGBProfile()

	tr, err := MakeTransform(cmyk, rgb, RGB8, defaultOptions())
	require.NoError(t, err)

	src := []byte{255, 255, 255, 255} // full ink coverage
	dst := make([]byte, 3)
	require.NoError(t, tr.Transform(dst, src))

	for _, v := range dst {
		require.LessOrEqual(t, int(v), 10)
	}
}

func TestMakeTransformCMYKLabToRGB(t *testing.T) {
	cmyk, err := icc.NewCMYKLabProfile(5)
	require.NoError(t, err)
	require.Equal(t, icc.PCSLabSpace, cmyk.PCS)
	rgb := icc.NewSRGBProfile()

	tr, err := MakeTransform(cmyk, rgb, RGB8, defaultOptions())
	require.NoError(t, err)

	full := []byte{255, 255, 255, 255} // full ink coverage
	dstDark := make([]byte, 3)
	require.NoError(t, tr.Transform(dstDark, full))
	for _, v := range dstDark {
		require.LessOrEqual(t, int(v), 10)
	}

	none := []byte{0, 0, 0, 0} // no ink
	dstLight := make([]byte, 3)
	require.NoError(t, tr.Transform(dstLight, none))
	for _, v := range dstLight {
		require.GreaterOrEqual(t, int(v), 245)
	}
}

func TestMakeTransformRGBToCMYK(t *testing.T) {
	rgb := icc.NewSRGBProfile()
	cmyk, err := icc.NewCMYKProfile(5)
	require.NoError(t, err)

	tr, err := MakeTransformRGBToCMYK(rgb, cmyk, RGB8, defaultOptions())
	require.NoError(t, err)

	src := []byte{0, 0, 0} // black
	dst := make([]byte, 4)
	require.NoError(t, tr.Transform(dst, src))
	require.GreaterOrEqual(t, int(dst[3]), 200) // heavy K
}

func TestMakeTransformUnsupportedConnection(t *testing.T) {
	cmyk, err := icc.NewCMYKProfile(5)
	require.NoError(t, err)

	_, err = MakeTransform(cmyk, cmyk, RGB8, defaultOptions())
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, UnsupportedProfileConnection, kind)
}

func TestMakeTransformRejectsMismatchedBitDepth(t *testing.T) {
	p := icc.NewSRGBProfile()
	opts := defaultOptions()
	opts.BitDepth = 16
	_, err := MakeTransform(p, p, RGB8, opts)
	require.Error(t, err)
}

func TestMakeTransformIdentitySRGB16(t *testing.T) {
	p := icc.NewSRGBProfile()
	opts := defaultOptions()
	opts.BitDepth = 16

	tr, err := MakeTransform(p, p, RGB16, opts)
	require.NoError(t, err)

	src := []byte{
		0x80, 0x00, 0x40, 0x00, 0xc8, 0x00, // (32768, 16384, 51200)
		0xff, 0xff, 0x00, 0x00, 0xff, 0xff,
	}
	dst := make([]byte, len(src))
	require.NoError(t, tr.Transform(dst, src))

	for i := 0; i < len(src); i += 2 {
		want := int(src[i])<<8 | int(src[i+1])
		got := int(dst[i])<<8 | int(dst[i+1])
		require.InDelta(t, want, got, 257) // 1 LSB at 8-bit source precision
	}
}

func TestMakeTransformEmptyBuffers(t *testing.T) {
	p := icc.NewSRGBProfile()
	tr, err := MakeTransform(p, p, RGB8, defaultOptions())
	require.NoError(t, err)

	require.NoError(t, tr.Transform(nil, nil))

	err = tr.Transform(make([]byte, 3), nil)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, LaneSizeMismatch, kind)
}

func TestMakeTransformBT2020RedIntoSRGB(t *testing.T) {
	src := icc.NewBT2020Profile()
	dst := icc.NewSRGBProfile()

	tr, err := MakeTransform(src, dst, RGB8, defaultOptions())
	require.NoError(t, err)

	in := []byte{255, 0, 0}
	out := make([]byte, 3)
	require.NoError(t, tr.Transform(out, in))

	// BT.2020 red lies outside the sRGB gamut: red saturates at the
	// maximum code while the other channels stay near zero.
	require.Equal(t, byte(255), out[0])
	require.LessOrEqual(t, int(out[1]), 40)
	require.LessOrEqual(t, int(out[2]), 40)
}

func TestMakeTransformBT2020ToSRGB(t *testing.T) {
	src := icc.NewBT2020Profile()
	dst := icc.NewSRGBProfile()

	tr, err := MakeTransform(src, dst, RGBA8, defaultOptions())
	require.NoError(t, err)

	in := []byte{200, 100, 50, 255}
	out := make([]byte, 4)
	require.NoError(t, tr.Transform(out, in))
	require.Equal(t, byte(255), out[3])
}
