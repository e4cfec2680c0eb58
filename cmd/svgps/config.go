package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/plotpath/svgps"
)

// config holds file-based defaults for both subcommands. Command-line
// flags override whatever the file sets.
type config struct {
	Generate generateConfig `toml:"generate"`
	Render   renderConfig   `toml:"render"`
}

type generateConfig struct {
	FlattenTolerance float64 `toml:"flatten-tolerance"`
	SampleTolerance  float64 `toml:"sample-tolerance"`
	Autocut          bool    `toml:"autocut"`
	Polish           bool    `toml:"polish"`
	PolishThreshold  float64 `toml:"polish-threshold"`
	FillRule         string  `toml:"fill-rule"`
	Workers          int     `toml:"workers"`
}

type renderConfig struct {
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke-width"`
}

func defaultConfig() config {
	return config{
		Generate: generateConfig{
			FlattenTolerance: svgps.DefaultFlattenTolerance,
			SampleTolerance:  svgps.DefaultSampleTolerance,
			PolishThreshold:  -1,
		},
		Render: renderConfig{
			Stroke:      "black",
			StrokeWidth: 1,
		},
	}
}

// loadConfig reads a TOML config file on top of the defaults. A missing
// file is only an error when the path was given explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c generateConfig) fillRule() (svgps.FillRule, error) {
	switch c.FillRule {
	case "", "nonzero":
		return svgps.FillRuleNonZero, nil
	case "evenodd":
		return svgps.FillRuleEvenOdd, nil
	}
	return 0, fmt.Errorf("unknown fill rule %q (want nonzero or evenodd)", c.FillRule)
}
