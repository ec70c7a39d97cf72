package config

import (
	"github.com/ecopia-map/icocloud/internal/converter"
	"github.com/ecopia-map/icocloud/internal/converters"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ConverterOptions resolves the settings into the options of a conversion of input.
// output is the explicit destination, a folder when processing a folder, empty for the
// default naming.
func (c *Config) ConverterOptions(input, output string, folder, recursive bool) (*converter.Options, error) {
	opts := converter.NewOptions(input)
	opts.FolderProcessing = folder
	opts.Recursive = recursive

	preset, ok := converters.ParsePreset(c.Conversion.Preset)
	if !ok {
		return nil, errors.Errorf("unknown preset %q", c.Conversion.Preset)
	}
	opts.Preset = preset

	opts.LOD = c.Conversion.LOD
	opts.KeepRatio = converter.RatioForLOD(c.Conversion.LOD)
	if c.Conversion.Ratio != nil {
		opts.KeepRatio = toFloat(*c.Conversion.Ratio)
	}
	if c.Conversion.Lower != nil {
		lower := toFloat(*c.Conversion.Lower)
		opts.LowerBound = &lower
	}
	if c.Conversion.Upper != nil {
		upper := toFloat(*c.Conversion.Upper)
		opts.UpperBound = &upper
	}

	opts.WorldScale = c.Conversion.WorldScale
	opts.Radius = c.Conversion.Radius
	opts.ZOffset = c.Conversion.ZOffset
	if c.Conversion.Seed != nil {
		seed := *c.Conversion.Seed
		opts.Seed = &seed
	}
	opts.Lenient = c.Conversion.Lenient

	if folder {
		opts.OutputDir = output
	} else {
		opts.Output = output
	}
	if opts.OutputDir == "" {
		opts.OutputDir = c.Output.Dir
	}
	opts.CloudOutput = c.Output.CloudOut
	opts.Workers = c.Output.Workers
	opts.Silent = c.Logging.Silent

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
