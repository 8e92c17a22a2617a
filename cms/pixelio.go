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

import "encoding/binary"

// pixelCount returns the number of whole pixels buf holds under l, or an
// error if buf's length is not a multiple of l's pixel size.
func pixelCount(buf []byte, l Layout) (int, error) {
	bpp := l.BytesPerPixel()
	if bpp == 0 || len(buf)%bpp != 0 {
		return 0, newError(LaneMultipleOfChannels, "")
	}
	return len(buf) / bpp, nil
}

// checkLanes validates that src and dst imply the same pixel count under
// their respective layouts, returning that count.
func checkLanes(src []byte, srcLayout Layout, dst []byte, dstLayout Layout) (int, error) {
	n, err := pixelCount(src, srcLayout)
	if err != nil {
		return 0, err
	}
	m, err := pixelCount(dst, dstLayout)
	if err != nil {
		return 0, err
	}
	if n != m {
		return 0, newError(LaneSizeMismatch, "")
	}
	return n, nil
}

// readChannel reads channel idx of pixel i from buf under layout l,
// returning the stored integer code. For 10/12-bit pipelines the caller
// guarantees codes stay within the declared bit depth; a code above that
// range is a contract violation, the same as an out-of-range lattice index.
func readChannel(buf []byte, l Layout, i, idx int) int {
	bpp := l.BytesPerPixel()
	channels := l.Channels()
	if l.Is16Bit() {
		off := i*bpp + idx*2
		return int(binary.BigEndian.Uint16(buf[off : off+2]))
	}
	off := i*channels + idx
	return int(buf[off])
}

// writeChannel writes an integer code (already clamped to the layout's
// range) to channel idx of pixel i in buf under layout l.
func writeChannel(buf []byte, l Layout, i, idx int, value int) {
	bpp := l.BytesPerPixel()
	channels := l.Channels()
	if l.Is16Bit() {
		off := i*bpp + idx*2
		binary.BigEndian.PutUint16(buf[off:off+2], uint16(value))
		return
	}
	off := i*channels + idx
	buf[off] = byte(value)
}

// maxCode returns the largest valid channel code for a bit depth (255,
// 1023, 4095 or 65535). Storage width comes from the layout; the code
// range always comes from the declared bit depth, which is narrower than
// the storage for 10- and 12-bit pipelines.
func maxCode(bitDepth int) int {
	return 1<<bitDepth - 1
}
