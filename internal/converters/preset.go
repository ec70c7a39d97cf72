package converters

import (
	"strconv"
	"strings"

	"github.com/ecopia-map/icocloud/internal/data"
)

// Preset selects one of the fixed axis remappings.
type Preset int

const (
	// Source data is Z-up. Mesh importers usually expect Y-up and rotate on import,
	// so the cloud is pre-rotated to Y-up.
	PresetYUp Preset = 1

	// Coordinates are written as read.
	PresetZUp Preset = 2
)

func (p Preset) String() string {
	switch p {
	case PresetYUp:
		return "Y-up"
	case PresetZUp:
		return "Z-up"
	}
	return "identity(" + strconv.Itoa(int(p)) + ")"
}

// ParsePreset accepts a preset id ("1", "2") or its name ("yup", "y-up", "zup", "raw").
// ok is false for values that are neither.
func ParsePreset(value string) (Preset, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "yup", "y-up", "y":
		return PresetYUp, true
	case "zup", "z-up", "z", "raw":
		return PresetZUp, true
	}
	id, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, false
	}
	return Preset(id), true
}

// Transform applies the preset to a single point. Ids other than the Y-up preset leave
// the point unchanged.
func Transform(p data.Point, preset Preset) data.Point {
	if preset == PresetYUp {
		return data.NewPoint(p.X, p.Z, -p.Y)
	}
	return p
}

// UpAxis is the axis the crop filter works on once the preset is applied.
func (p Preset) UpAxis() data.Axis {
	if p == PresetYUp {
		return data.AxisY
	}
	return data.AxisZ
}

type presetConverter struct {
	preset Preset
}

// NewPresetConverter returns the CoordinateConverter for the given preset id.
func NewPresetConverter(preset Preset) CoordinateConverter {
	return &presetConverter{preset: preset}
}

func (c *presetConverter) Convert(p data.Point) data.Point {
	return Transform(p, c.preset)
}

func (c *presetConverter) UpAxis() data.Axis {
	return c.preset.UpAxis()
}

func (c *presetConverter) Preset() Preset {
	return c.preset
}
