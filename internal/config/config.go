// Package config handles conversion settings loading.
package config

import (
	"github.com/ecopia-map/icocloud/internal/mesh"
	"github.com/shopspring/decimal"
)

// Config holds the conversion settings that can be kept in a file.
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ConversionConfig holds the pipeline settings.
type ConversionConfig struct {
	Preset     string           `yaml:"preset"`
	LOD        int              `yaml:"lod"`
	Ratio      *decimal.Decimal `yaml:"ratio"` // overrides the LOD ratio when set
	Lower      *decimal.Decimal `yaml:"lower"`
	Upper      *decimal.Decimal `yaml:"upper"`
	WorldScale float64          `yaml:"world_scale"`
	Radius     float64          `yaml:"radius"`
	ZOffset    float64          `yaml:"zoffset"`
	Seed       *uint64          `yaml:"seed"`
	Lenient    bool             `yaml:"lenient"`
}

// OutputConfig holds where and how results are written.
type OutputConfig struct {
	Dir      string `yaml:"dir"`       // folder receiving the meshes, next to the input when empty
	CloudOut string `yaml:"cloud_out"` // processed cloud destination, a folder when processing a folder
	Workers  int    `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Silent bool `yaml:"silent"`
}

// Default returns a Config with the default conversion settings.
func Default() *Config {
	return &Config{
		Conversion: ConversionConfig{
			Preset:     "1",
			LOD:        0,
			WorldScale: mesh.DefaultWorldScale,
			Radius:     mesh.DefaultRadius,
		},
	}
}
