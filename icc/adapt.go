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

// bradfordForward and bradfordInverse are the Bradford cone-response
// matrices, row-major.
var bradfordForward = [9]float64{
	0.8951000, 0.2664000, -0.1614000,
	-0.7502000, 1.7135000, 0.0367000,
	0.0389000, -0.0685000, 1.0296000,
}

var bradfordInverse = [9]float64{
	0.9869929, -0.1470543, 0.1599627,
	0.4323053, 0.5183603, 0.0492912,
	-0.0085287, 0.0400428, 0.9684867,
}

// BradfordAdaptation returns the 3x3 row-major matrix that maps PCS XYZ
// values adapted to srcWhite onto the same values adapted to dstWhite,
// using the Bradford cone-response transform. If srcWhite equals dstWhite
// the result is the identity matrix.
func BradfordAdaptation(srcWhite, dstWhite [3]float64) [9]float64 {
	if srcWhite == dstWhite {
		return [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}

	ps := mulMatrixVec3(bradfordForward, srcWhite)
	pd := mulMatrixVec3(bradfordForward, dstWhite)

	var scale [9]float64
	scale[0] = pd[0] / ps[0]
	scale[4] = pd[1] / ps[1]
	scale[8] = pd[2] / ps[2]

	return mulMatrix3(mulMatrix3(bradfordInverse, scale), bradfordForward)
}

func mulMatrixVec3(m [9]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func mulMatrix3(a, b [9]float64) [9]float64 {
	var out [9]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}
