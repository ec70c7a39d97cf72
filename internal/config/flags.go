package config

import (
	"github.com/ecopia-map/icocloud/tools"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ApplyConvertFlags applies the flags given explicitly on the command line.
func ApplyConvertFlags(cfg *Config, flags *tools.FlagsForCommandConvert) error {
	changed := flags.Set.Changed

	if changed(tools.FlagPreset) {
		cfg.Conversion.Preset = *flags.Preset
	}
	if changed(tools.FlagLOD) {
		cfg.Conversion.LOD = *flags.LOD
	}
	for _, d := range []struct {
		name   string
		value  *string
		target **decimal.Decimal
	}{
		{tools.FlagRatio, flags.KeepRatio, &cfg.Conversion.Ratio},
		{tools.FlagLower, flags.LowerBound, &cfg.Conversion.Lower},
		{tools.FlagUpper, flags.UpperBound, &cfg.Conversion.Upper},
	} {
		if !changed(d.name) {
			continue
		}
		if *d.value == "" {
			*d.target = nil
			continue
		}
		v, err := tools.ParseDecimal(*d.value)
		if err != nil {
			return errors.Wrapf(err, "invalid --%s value", d.name)
		}
		*d.target = &v
	}
	if changed(tools.FlagScale) {
		cfg.Conversion.WorldScale = *flags.WorldScale
	}
	if changed(tools.FlagRadius) {
		cfg.Conversion.Radius = *flags.Radius
	}
	if changed(tools.FlagZOffset) {
		cfg.Conversion.ZOffset = *flags.ZOffset
	}
	if changed(tools.FlagSeed) {
		seed := *flags.Seed
		cfg.Conversion.Seed = &seed
	}
	if changed(tools.FlagLenient) {
		cfg.Conversion.Lenient = *flags.Lenient
	}
	if changed(tools.FlagCloudOut) {
		cfg.Output.CloudOut = *flags.CloudOutput
	}
	if changed(tools.FlagWorkers) {
		cfg.Output.Workers = *flags.Workers
	}
	if changed(tools.FlagSilent) {
		cfg.Logging.Silent = *flags.Silent
	}
	return nil
}
