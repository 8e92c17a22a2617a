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

// TestAcceleratedKernelMatchesScalar checks bit-exact agreement between the
// batched kernel and the plain scalar one, for a pixel count that is not a
// multiple of 4 so both the unrolled and remainder loops in accel.go run.
func TestAcceleratedKernelMatchesScalar(t *testing.T) {
	src := icc.NewSRGBProfile()
	dst := icc.NewBT2020Profile()
	opts := defaultOptions()

	scalarTr, err := MakeTransform(src, dst, RGBA8, opts)
	require.NoError(t, err)
	scalar, ok := scalarTr.(*rgbMatrixTransform)
	require.True(t, ok)

	accelerated := newAcceleratedRGBTransform(scalar)

	in := make([]byte, 4*11) // 11 pixels
	for i := range in {
		in[i] = byte((i * 23) % 256)
	}
	for i := 3; i < len(in); i += 4 {
		in[i] = 255 // alpha
	}

	scalarOut := make([]byte, len(in))
	acceleratedOut := make([]byte, len(in))
	require.NoError(t, scalar.Transform(scalarOut, in))
	require.NoError(t, accelerated.Transform(acceleratedOut, in))

	require.Equal(t, scalarOut, acceleratedOut)
}
