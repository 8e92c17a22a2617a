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

	"gopkg.in/yaml.v2"
)

// Config holds the defaults applied to every transform built by this
// driver, loadable from a YAML file via -config.
type Config struct {
	RenderingIntent     string `yaml:"rendering_intent"`
	InterpolationMethod string `yaml:"interpolation_method"`
	AllowChromaClipping bool   `yaml:"allow_chroma_clipping"`
	Accelerated         bool   `yaml:"accelerated"`
}

func defaultConfig() Config {
	return Config{
		RenderingIntent:     "perceptual",
		InterpolationMethod: "tetrahedral",
		AllowChromaClipping: true,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
