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

func TestQuantizeQ4_12RoundTrip(t *testing.T) {
	q, ok := quantizeQ4_12(1.0)
	require.True(t, ok)
	require.Equal(t, int32(qOne), q)

	q, ok = quantizeQ4_12(0.5)
	require.True(t, ok)
	require.Equal(t, int32(qOne/2), q)
}

func TestQuantizeQ4_12RejectsOutOfRange(t *testing.T) {
	_, ok := quantizeQ4_12(1000)
	require.False(t, ok)
}

func TestFixedPointTransformAgreesWithFloatPath(t *testing.T) {
	src := icc.NewSRGBProfile()
	dst := icc.NewBT2020Profile()

	opts := defaultOptions()
	opts.AllowChromaClipping = false // fixed-point path never clips
	floatTr, err := MakeTransform(src, dst, RGB8, opts)
	require.NoError(t, err)

	fixedOpts := opts
	fixedOpts.PreferFixedPoint = true
	fixedTr, err := MakeTransform(src, dst, RGB8, fixedOpts)
	require.NoError(t, err)

	in := []byte{200, 100, 50, 255, 0, 10, 30, 90, 255}
	floatOut := make([]byte, len(in))
	fixedOut := make([]byte, len(in))
	require.NoError(t, floatTr.Transform(floatOut, in))
	require.NoError(t, fixedTr.Transform(fixedOut, in))

	for i := range floatOut {
		require.InDelta(t, int(floatOut[i]), int(fixedOut[i]), 2)
	}
}

// TestFixedPointTransformAgreesWithFloatPath16Bit pins the agreement at
// 16-bit depth, where every gamma table index maps 1:1 onto an output code
// and any extra rounding inside the fixed-point pipeline shows up directly
// in the output. The identity connection keeps the Q4.12 matrix exactly
// representable, so 1 LSB is the full error budget for the table lookups.
func TestFixedPointTransformAgreesWithFloatPath16Bit(t *testing.T) {
	p := icc.NewSRGBProfile()

	opts := defaultOptions()
	opts.BitDepth = 16
	opts.AllowChromaClipping = false
	floatTr, err := MakeTransform(p, p, RGB16, opts)
	require.NoError(t, err)

	fixedOpts := opts
	fixedOpts.PreferFixedPoint = true
	fixedTr, err := MakeTransform(p, p, RGB16, fixedOpts)
	require.NoError(t, err)
	_, isFixed := fixedTr.(*fixedPointTransform)
	require.True(t, isFixed)

	in := []byte{
		0x1f, 0x9b, 0x80, 0x00, 0xc8, 0x32, // (8091, 32768, 51250)
		0x00, 0x00, 0xff, 0xff, 0x40, 0x00,
	}
	floatOut := make([]byte, len(in))
	fixedOut := make([]byte, len(in))
	require.NoError(t, floatTr.Transform(floatOut, in))
	require.NoError(t, fixedTr.Transform(fixedOut, in))

	for i := 0; i < len(in); i += 2 {
		want := int(floatOut[i])<<8 | int(floatOut[i+1])
		got := int(fixedOut[i])<<8 | int(fixedOut[i+1])
		require.InDelta(t, want, got, 1)
	}
}

func TestFixedPointTransformFallsBackWhenChromaClipRequested(t *testing.T) {
	src := icc.NewSRGBProfile()
	dst := icc.NewSRGBProfile()

	opts := defaultOptions()
	opts.PreferFixedPoint = true
	opts.AllowChromaClipping = true

	tr, err := MakeTransform(src, dst, RGB8, opts)
	require.NoError(t, err)
	_, isFixed := tr.(*fixedPointTransform)
	require.False(t, isFixed, "chroma-clip requests must fall back to the float path")
}
