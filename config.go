package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/stave/engrave"
)

// Config 对应 stave.toml。所有字段均可省略，零值交由排版引擎按默认
// 值补齐，配置文件只需要写想改的参数。
type Config struct {
	Page struct {
		Width      float64 `toml:"width"`
		LeftMargin float64 `toml:"left_margin"`
		TopMargin  float64 `toml:"top_margin"`
	} `toml:"page"`

	Spacing struct {
		Unit            float64 `toml:"unit"`
		MaxGap          float64 `toml:"max_gap"`
		StaffStep       float64 `toml:"staff_step"`
		StaffSeparation float64 `toml:"staff_separation"`
		LineSeparation  float64 `toml:"line_separation"`
	} `toml:"spacing"`

	Beam struct {
		StemHeight      float64 `toml:"stem_height"`
		ShortStemHeight float64 `toml:"short_stem_height"`
		Separation      float64 `toml:"separation"`
		Thickness       float64 `toml:"thickness"`
		StubLength      float64 `toml:"stub_length"`
	} `toml:"beam"`

	Debug bool `toml:"debug"`

	// Fonts 字体族名到字体文件路径的映射。
	Fonts map[string]string `toml:"fonts"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) engraveOptions() engrave.Options {
	return engrave.Options{
		PageWidth:  c.Page.Width,
		LeftMargin: c.Page.LeftMargin,
		TopMargin:  c.Page.TopMargin,

		SpacingUnit:     c.Spacing.Unit,
		MaxSpacingGap:   c.Spacing.MaxGap,
		StaffStep:       c.Spacing.StaffStep,
		StaffSeparation: c.Spacing.StaffSeparation,
		LineSeparation:  c.Spacing.LineSeparation,

		StemHeight:      c.Beam.StemHeight,
		ShortStemHeight: c.Beam.ShortStemHeight,
		BeamSeparation:  c.Beam.Separation,
		BeamThickness:   c.Beam.Thickness,
		BeamStubLength:  c.Beam.StubLength,

		Debug: c.Debug,
	}
}
