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

package main

import (
	"fmt"
	"os"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/gocms/cms"
	"seehuhn.de/go/gocms/icc"
)

// loadProfile reads an ICC profile from path if given, otherwise returns
// one of this driver's built-in synthetic profiles (see icc.NewSRGBProfile
// and friends) by name.
func loadProfile(path, builtin string) (*icc.Profile, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return icc.Decode(data)
	}

	switch builtin {
	case "srgb", "":
		return icc.NewSRGBProfile(), nil
	case "bt2020":
		return icc.NewBT2020Profile(), nil
	case "gray":
		return icc.NewGrayProfile(2.2), nil
	case "cmyk":
		return icc.NewCMYKProfile(17)
	default:
		return nil, fmt.Errorf("unknown built-in profile %q (want srgb, bt2020, gray, cmyk)", builtin)
	}
}

// tagNames returns a profile's tag signatures, sorted and formatted as
// 8-digit hexadecimal numbers, for summary logging.
func tagNames(p *icc.Profile) []string {
	tags := maps.Keys(p.TagData)
	slices.Sort(tags)
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = fmt.Sprintf("%08X", uint32(t))
	}
	return names
}

func parseIntent(name string) cms.RenderingIntent {
	switch name {
	case "relative_colorimetric":
		return cms.RelativeColorimetric
	case "saturation":
		return cms.Saturation
	case "absolute_colorimetric":
		return cms.AbsoluteColorimetric
	default:
		return cms.Perceptual
	}
}

func parseInterpolation(name string) cms.InterpolationMethod {
	switch name {
	case "pyramid":
		return cms.Pyramid
	case "prism":
		return cms.Prism
	case "linear":
		return cms.Linear
	default:
		return cms.Tetrahedral
	}
}
