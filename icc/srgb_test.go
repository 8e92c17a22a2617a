package icc

import (
	"math"
	"testing"
)

func TestSyntheticSRGBProfile(t *testing.T) {
	p := NewSRGBProfile()

	if p.Class != DisplayDeviceProfile {
		t.Errorf("class = %v, want DisplayDeviceProfile", p.Class)
	}
	if p.ColorSpace != RGBSpace {
		t.Errorf("color space = %v, want RGB", p.ColorSpace)
	}
	if p.PCS != PCSXYZSpace {
		t.Errorf("PCS = %v, want PCSXYZ", p.PCS)
	}
}

func TestSyntheticSRGBProfileRoundTrip(t *testing.T) {
	p := NewSRGBProfile()

	encoded, err := p.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	q, err := Decode(encoded)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if q.ColorSpace != RGBSpace || q.PCS != PCSXYZSpace {
		t.Errorf("re-decoded profile has color space %v, PCS %v", q.ColorSpace, q.PCS)
	}

	matrix, r, g, b, err := q.RGBMatrixColumns()
	if err != nil {
		t.Fatalf("RGBMatrixColumns after round-trip: %v", err)
	}
	if r == nil || g == nil || b == nil {
		t.Fatal("missing TRC after round-trip")
	}
	if math.Abs(matrix[0]-0.4361) > 0.001 {
		t.Errorf("red X column = %v, want ~0.4361", matrix[0])
	}
}

// rgbToXYZ evaluates the matrix/TRC pipeline [Profile.RGBMatrixColumns]
// describes directly, without going through a LUT: linearise each channel,
// then apply the device-RGB-to-XYZ matrix.
func rgbToXYZ(matrix [9]float64, r, g, b *Curve, rgb []float64) (X, Y, Z float64) {
	lr := r.Evaluate(rgb[0])
	lg := g.Evaluate(rgb[1])
	lb := b.Evaluate(rgb[2])
	X = matrix[0]*lr + matrix[1]*lg + matrix[2]*lb
	Y = matrix[3]*lr + matrix[4]*lg + matrix[5]*lb
	Z = matrix[6]*lr + matrix[7]*lg + matrix[8]*lb
	return X, Y, Z
}

// invert3x3 inverts a row-major 3x3 matrix via the adjugate/cofactor
// formula; used only to check the sRGB round-trip below.
func invert3x3(m [9]float64) [9]float64 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	invDet := 1 / det
	return [9]float64{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}
}

func TestSyntheticSRGBProfileTransform(t *testing.T) {
	p := NewSRGBProfile()

	matrix, r, g, b, err := p.RGBMatrixColumns()
	if err != nil {
		t.Fatalf("RGBMatrixColumns failed: %v", err)
	}

	// D50 white point
	X, Y, Z := rgbToXYZ(matrix, r, g, b, []float64{1, 1, 1})
	if math.Abs(X-0.9642) > 0.02 || math.Abs(Y-1.0) > 0.02 || math.Abs(Z-0.8249) > 0.02 {
		t.Errorf("white -> XYZ = (%v, %v, %v), want D50 white point", X, Y, Z)
	}

	// black
	X, Y, Z = rgbToXYZ(matrix, r, g, b, []float64{0, 0, 0})
	if math.Abs(X) > 0.01 || math.Abs(Y) > 0.01 || math.Abs(Z) > 0.01 {
		t.Errorf("black -> XYZ = (%v, %v, %v), want near zero", X, Y, Z)
	}

	// luminance of red < green (standard sRGB property)
	_, yR, _ := rgbToXYZ(matrix, r, g, b, []float64{1, 0, 0})
	_, yG, _ := rgbToXYZ(matrix, r, g, b, []float64{0, 1, 0})
	if yR >= yG {
		t.Errorf("red luminance (%v) >= green luminance (%v)", yR, yG)
	}
}

// TestSyntheticSRGBProfilePrimaries checks that the sRGB primaries map to
// the expected XYZ coordinates in the D50 profile connection space.
func TestSyntheticSRGBProfilePrimaries(t *testing.T) {
	type xyz struct{ X, Y, Z float64 }
	primaries := []struct {
		name  string
		input []float64
		want  xyz
	}{
		{"red", []float64{1, 0, 0}, xyz{0.4361, 0.2225, 0.0139}},
		{"green", []float64{0, 1, 0}, xyz{0.3851, 0.7169, 0.0971}},
		{"blue", []float64{0, 0, 1}, xyz{0.1431, 0.0606, 0.7141}},
	}

	p := NewSRGBProfile()
	matrix, r, g, b, err := p.RGBMatrixColumns()
	if err != nil {
		t.Fatalf("RGBMatrixColumns failed: %v", err)
	}

	for _, pp := range primaries {
		t.Run(pp.name, func(t *testing.T) {
			X, Y, Z := rgbToXYZ(matrix, r, g, b, pp.input)
			const eps = 0.005
			if math.Abs(X-pp.want.X) > eps ||
				math.Abs(Y-pp.want.Y) > eps ||
				math.Abs(Z-pp.want.Z) > eps {
				t.Errorf("XYZ = (%.4f, %.4f, %.4f), want (%.4f, %.4f, %.4f)",
					X, Y, Z, pp.want.X, pp.want.Y, pp.want.Z)
			}
		})
	}
}

func TestSyntheticSRGBProfileDeviceRoundTrip(t *testing.T) {
	p := NewSRGBProfile()

	matrix, r, g, b, err := p.RGBMatrixColumns()
	if err != nil {
		t.Fatalf("RGBMatrixColumns failed: %v", err)
	}
	matrixInv := invert3x3(matrix)

	inputs := [][]float64{
		{0, 0, 0},
		{1, 1, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.5, 0.5, 0.5},
		{0.2, 0.4, 0.8},
	}

	for _, rgb := range inputs {
		X, Y, Z := rgbToXYZ(matrix, r, g, b, rgb)

		lr := matrixInv[0]*X + matrixInv[1]*Y + matrixInv[2]*Z
		lg := matrixInv[3]*X + matrixInv[4]*Y + matrixInv[5]*Z
		lb := matrixInv[6]*X + matrixInv[7]*Y + matrixInv[8]*Z
		back := []float64{
			r.Invert(clamp(lr, 0, 1)),
			g.Invert(clamp(lg, 0, 1)),
			b.Invert(clamp(lb, 0, 1)),
		}

		for i := range rgb {
			if math.Abs(back[i]-rgb[i]) > 0.02 {
				t.Errorf("round-trip %v -> XYZ(%v,%v,%v) -> %v",
					rgb, X, Y, Z, back)
				break
			}
		}
	}
}

func TestSyntheticGrayProfile(t *testing.T) {
	p := NewGrayProfile(2.2)
	if !p.HasGrayTRC() {
		t.Fatal("synthetic gray profile has no kTRC tag")
	}
	curve, err := p.GrayCurve()
	if err != nil {
		t.Fatalf("GrayCurve: %v", err)
	}
	if math.Abs(curve.Evaluate(1)-1) > 1e-9 {
		t.Errorf("gray curve at 1.0 = %v, want 1.0", curve.Evaluate(1))
	}
}

func TestSyntheticCMYKProfile(t *testing.T) {
	p, err := NewCMYKProfile(9)
	if err != nil {
		t.Fatalf("NewCMYKProfile: %v", err)
	}

	lut, err := p.ConnectionLut(DeviceToPCS, Perceptual)
	if err != nil {
		t.Fatalf("ConnectionLut(A2B): %v", err)
	}
	if lut.InputChannels() != 4 || lut.OutputChannels() != 3 {
		t.Errorf("A2B channels = %d/%d, want 4/3", lut.InputChannels(), lut.OutputChannels())
	}

	// full ink coverage is the CLUT's last grid corner; it should come out dark
	grid, clut, _, outCh, ok := lut.RawGrid()
	if !ok {
		t.Fatal("RawGrid: ok = false")
	}
	last := grid - 1
	idx := ((last*grid+last)*grid+last)*grid + last
	for i := 0; i < outCh; i++ {
		v := clut[idx*outCh+i]
		if v > 0.05 {
			t.Errorf("channel %d = %v, want near 0 for full CMYK coverage", i, v)
		}
	}

	rev, err := p.ConnectionLut(PCSToDevice, Perceptual)
	if err != nil {
		t.Fatalf("ConnectionLut(B2A): %v", err)
	}
	if rev.InputChannels() != 3 || rev.OutputChannels() != 4 {
		t.Errorf("B2A channels = %d/%d, want 3/4", rev.InputChannels(), rev.OutputChannels())
	}
}
