package main

import (
	"fmt"

	checkerboard "github.com/gcslaoli/checkerboard-remover-go"
	"github.com/spf13/viper"
)

type Config struct {
	Detect DetectConfig `mapstructure:"detect"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

type DetectConfig struct {
	Tones         []string `mapstructure:"tones"`
	Tolerance     int      `mapstructure:"tolerance"`
	NeutralMax    int      `mapstructure:"neutral_max"`
	NeutralSpread int      `mapstructure:"neutral_spread"`
}

type OutputConfig struct {
	Suffix string `mapstructure:"suffix"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// loadConfig reads the YAML file at configPath on top of the defaults. An
// empty path yields the defaults alone.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := checkerboard.DefaultOptions()

	tones := make([]string, 0, len(def.Tones))
	for _, t := range def.Tones {
		tones = append(tones, t.Hex())
	}

	v.SetDefault("detect.tones", tones)
	v.SetDefault("detect.tolerance", def.ToneTolerance)
	v.SetDefault("detect.neutral_max", def.NeutralMax)
	v.SetDefault("detect.neutral_spread", def.NeutralSpread)

	v.SetDefault("output.suffix", checkerboard.DefaultSuffix)

	v.SetDefault("log.mode", "debug")
}

// Options converts the detection section into engine options.
func (c DetectConfig) Options() (checkerboard.Options, error) {
	opts := checkerboard.Options{
		ToneTolerance: c.Tolerance,
		NeutralMax:    c.NeutralMax,
		NeutralSpread: c.NeutralSpread,
	}

	for _, hex := range c.Tones {
		tone, err := checkerboard.ParseTone(hex)
		if err != nil {
			return checkerboard.Options{}, err
		}
		opts.Tones = append(opts.Tones, tone)
	}

	if err := opts.Validate(); err != nil {
		return checkerboard.Options{}, fmt.Errorf("invalid detect config: %w", err)
	}
	return opts, nil
}
