package cmd

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/gogpu/vtrace"
)

// TraceConfig mirrors vtrace.Params for YAML config files, letting build
// settings be checked into a repo alongside traced assets; CLI flags
// override values loaded from a config file.
type TraceConfig struct {
	Mode              string  `yaml:"mode"`
	TurnPolicy        string  `yaml:"turn_policy"`
	ErrorThreshold    float64 `yaml:"error_threshold"`
	SimplifyThreshold float64 `yaml:"simplify_threshold"`
	CornerThreshold   float64 `yaml:"corner_threshold"`
	LengthThreshold   float64 `yaml:"length_threshold"`
	Optimize          bool    `yaml:"optimize"`
	ColorMax          int     `yaml:"color_max"`
	Threads           int     `yaml:"threads"`
}

// LoadConfig reads a TraceConfig from a YAML file at path.
func LoadConfig(path string) (TraceConfig, error) {
	var cfg TraceConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Options converts the config into vtrace.Options. Numeric and boolean
// fields are applied only when set away from their YAML zero value; an
// empty mode or turn_policy selects outline or minority.
func (c TraceConfig) Options() []vtrace.Option {
	var opts []vtrace.Option
	switch c.Mode {
	case "centerline":
		opts = append(opts, vtrace.WithMode(vtrace.ModeCenterline))
	case "outline", "":
		opts = append(opts, vtrace.WithMode(vtrace.ModeOutline))
	}
	switch c.TurnPolicy {
	case "black":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyBlack))
	case "white":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyWhite))
	case "majority":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyMajority))
	case "minority", "":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyMinority))
	}
	if c.ErrorThreshold > 0 {
		opts = append(opts, vtrace.WithErrorThreshold(c.ErrorThreshold))
	}
	if c.SimplifyThreshold > 0 {
		opts = append(opts, vtrace.WithSimplifyThreshold(c.SimplifyThreshold))
	}
	if c.CornerThreshold > 0 {
		opts = append(opts, vtrace.WithCornerThreshold(c.CornerThreshold))
	}
	if c.LengthThreshold > 0 {
		opts = append(opts, vtrace.WithLengthThreshold(c.LengthThreshold))
	}
	if c.Optimize {
		opts = append(opts, vtrace.WithOptimize(true))
	}
	if c.ColorMax > 0 {
		opts = append(opts, vtrace.WithColorMax(c.ColorMax))
	}
	if c.Threads > 0 {
		opts = append(opts, vtrace.WithThreads(c.Threads))
	}
	return opts
}
