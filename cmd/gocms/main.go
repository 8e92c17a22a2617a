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

// Command gocms converts an image between two ICC-profiled color spaces.
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"seehuhn.de/go/gocms/cms"
	"seehuhn.de/go/gocms/icc"
)

var (
	flagSrcProfile = pflag.String("src-profile", "", "path to the source ICC profile")
	flagDstProfile = pflag.String("dst-profile", "", "path to the destination ICC profile")
	flagSrc        = pflag.String("src", "srgb", "built-in source profile (srgb, bt2020, gray, cmyk)")
	flagDst        = pflag.String("dst", "srgb", "built-in destination profile (srgb, bt2020, gray, cmyk)")
	flagInput      = pflag.String("input", "", "input BMP image path")
	flagOutput     = pflag.String("output", "", "output BMP image path")
	flagConfig     = pflag.String("config", "", "path to a YAML config file")
	flagVerbose    = pflag.BoolP("verbose", "v", false, "enable debug logging")
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	return zap.NewProductionConfig().Build()
}

func main() {
	pflag.Parse()

	logger, err := newLogger(*flagVerbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gocms: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Error("gocms failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	src, err := loadProfile(*flagSrcProfile, *flagSrc)
	if err != nil {
		return fmt.Errorf("loading source profile: %w", err)
	}
	dst, err := loadProfile(*flagDstProfile, *flagDst)
	if err != nil {
		return fmt.Errorf("loading destination profile: %w", err)
	}

	logger.Debug("loaded profiles",
		zap.Strings("source tags", tagNames(src)),
		zap.Strings("destination tags", tagNames(dst)))

	opts := cms.TransformOptions{
		BitDepth:            8,
		RenderingIntent:     parseIntent(cfg.RenderingIntent),
		AllowChromaClipping: cfg.AllowChromaClipping,
		InterpolationMethod: parseInterpolation(cfg.InterpolationMethod),
		Accelerated:         cfg.Accelerated,
	}

	if *flagInput == "" {
		logger.Info("no -input given, profiles loaded and validated only")
		return nil
	}

	img, err := decodeBMP(*flagInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *flagInput, err)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	srcBuf := packRGBA(img)
	if src.ColorSpace == icc.GraySpace {
		// a gray source reads a bare single-channel buffer
		srcBuf = packGray(img)
	}

	// cms.MakeTransform's decision tree only accepts CMYK as the *source*
	// color space; a CMYK destination (e.g. "-dst cmyk") goes through the
	// symmetric MakeTransformRGBToCMYK path instead, and its raw CMYK
	// samples have no BMP encoding, so they're written out as a flat byte
	// file rather than run through unpackRGBA/encodeBMP.
	var tr cms.Transform
	rgbToCMYK := src.ColorSpace == icc.RGBSpace && dst.ColorSpace == icc.CMYKSpace
	if rgbToCMYK {
		tr, err = cms.MakeTransformRGBToCMYK(src, dst, cms.RGBA8, opts)
	} else {
		tr, err = cms.MakeTransform(src, dst, cms.RGBA8, opts)
	}
	if err != nil {
		return fmt.Errorf("building transform: %w", err)
	}

	dstBuf := make([]byte, width*height*cms.RGBA8.BytesPerPixel())
	if err := tr.Transform(dstBuf, srcBuf); err != nil {
		return fmt.Errorf("running transform: %w", err)
	}

	logger.Info("converted image",
		zap.Int("width", width), zap.Int("height", height),
		zap.String("rendering_intent", cfg.RenderingIntent))

	if *flagOutput == "" {
		return nil
	}
	if rgbToCMYK {
		logger.Info("destination is CMYK, writing raw samples instead of BMP",
			zap.String("output", *flagOutput))
		return os.WriteFile(*flagOutput, dstBuf, 0o644)
	}
	out := unpackRGBA(dstBuf, width, height)
	return encodeBMP(*flagOutput, out)
}

func decodeBMP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bmp.Decode(f)
}

func encodeBMP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bmp.Encode(f, img)
}

// packRGBA flattens img into the RGBA8 lane layout cms.MakeTransform
// expects: four bytes per pixel, row-major, no padding.
func packRGBA(img image.Image) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	buf := make([]byte, width*height*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			buf[i+0] = byte(r >> 8)
			buf[i+1] = byte(g >> 8)
			buf[i+2] = byte(b >> 8)
			buf[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return buf
}

// packGray flattens img into the single-channel gray lane layout a gray
// source profile reads: one byte per pixel, row-major.
func packGray(img image.Image) []byte {
	bounds := img.Bounds()
	buf := make([]byte, bounds.Dx()*bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return buf
}

func unpackRGBA(buf []byte, width, height int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetNRGBA(x, y, color.NRGBA{
				R: buf[i+0], G: buf[i+1], B: buf[i+2], A: buf[i+3],
			})
			i += 4
		}
	}
	return out
}
