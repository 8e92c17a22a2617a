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

import (
	"math"
	"testing"
)

func TestLabToXYZ(t *testing.T) {
	white := [3]float64{0.9642, 1.0, 0.8249} // D50

	tests := []struct {
		L, a, b             float64
		wantX, wantY, wantZ float64
	}{
		// white: L=100, a=0, b=0 should give white point
		{100, 0, 0, 0.9642, 1.0, 0.8249},
		// black: L=0 should give near zero
		{0, 0, 0, 0, 0, 0},
		// mid gray: L=50
		{50, 0, 0, 0.175, 0.1842, 0.1502},
	}

	for _, tt := range tests {
		x, y, z := LabToXYZ([]float64{tt.L, tt.a, tt.b}, white)
		if math.Abs(x-tt.wantX) > 0.01 || math.Abs(y-tt.wantY) > 0.01 || math.Abs(z-tt.wantZ) > 0.01 {
			t.Errorf("LabToXYZ(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.L, tt.a, tt.b, x, y, z, tt.wantX, tt.wantY, tt.wantZ)
		}
	}
}

func TestXYZToLab(t *testing.T) {
	white := [3]float64{0.9642, 1.0, 0.8249} // D50

	tests := []struct {
		X, Y, Z             float64
		wantL, wantA, wantB float64
	}{
		// white point should give L=100, a=0, b=0
		{0.9642, 1.0, 0.8249, 100, 0, 0},
		// black should give L=0
		{0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		L, a, b := XYZToLab(tt.X, tt.Y, tt.Z, white)
		if math.Abs(L-tt.wantL) > 0.1 || math.Abs(a-tt.wantA) > 0.1 || math.Abs(b-tt.wantB) > 0.1 {
			t.Errorf("XYZToLab(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.X, tt.Y, tt.Z, L, a, b, tt.wantL, tt.wantA, tt.wantB)
		}
	}
}

func TestLabNormaliseRoundTrip(t *testing.T) {
	tests := [][]float64{
		{0, -128, -128},
		{100, 127, 127},
		{50, 0, 0},
		{73.5, -12.25, 40},
	}

	for _, lab := range tests {
		got := denormaliseLab(normaliseLab(lab))
		for i := range lab {
			if math.Abs(got[i]-lab[i]) > 1e-9 {
				t.Errorf("normalise/denormalise round-trip failed: %v -> %v", lab, got)
				break
			}
		}
	}
}

func TestLabXYZRoundTrip(t *testing.T) {
	white := [3]float64{0.9642, 1.0, 0.8249}

	tests := [][]float64{
		{0, 0, 0},
		{50, 0, 0},
		{100, 0, 0},
		{50, 50, 0},
		{50, 0, 50},
		{50, -50, -50},
		{75, 25, -30},
	}

	for _, lab := range tests {
		x, y, z := LabToXYZ(lab, white)
		L, a, b := XYZToLab(x, y, z, white)
		if math.Abs(L-lab[0]) > 0.01 || math.Abs(a-lab[1]) > 0.01 || math.Abs(b-lab[2]) > 0.01 {
			t.Errorf("Lab round-trip failed: %v -> XYZ(%v,%v,%v) -> Lab(%v,%v,%v)",
				lab, x, y, z, L, a, b)
		}
	}
}
