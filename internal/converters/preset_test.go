package converters

import (
	"errors"
	"math"
	"testing"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	p := data.NewPoint(1, 2, 3)

	for _, tc := range []struct {
		preset Preset
		want   data.Point
	}{
		{PresetYUp, data.NewPoint(1, 3, -2)},
		{PresetZUp, data.NewPoint(1, 2, 3)},
		{0, data.NewPoint(1, 2, 3)},
		{3, data.NewPoint(1, 2, 3)},
		{-1, data.NewPoint(1, 2, 3)},
	} {
		t.Run(tc.preset.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Transform(p, tc.preset))
			assert.Equal(t, tc.want, NewPresetConverter(tc.preset).Convert(p))
		})
	}
}

func TestUpAxis(t *testing.T) {
	assert.Equal(t, data.AxisY, PresetYUp.UpAxis())
	assert.Equal(t, data.AxisZ, PresetZUp.UpAxis())
	assert.Equal(t, data.AxisZ, Preset(7).UpAxis())
}

func TestParsePreset(t *testing.T) {
	for value, want := range map[string]Preset{
		"1":    PresetYUp,
		"2":    PresetZUp,
		" YUP": PresetYUp,
		"z-up": PresetZUp,
		"raw":  PresetZUp,
		"5":    5,
	} {
		got, ok := ParsePreset(value)
		require.True(t, ok, value)
		assert.Equal(t, want, got, value)
	}

	_, ok := ParsePreset("sideways")
	assert.False(t, ok)
}

func TestConvertAllDoesNotMutateInput(t *testing.T) {
	in := []data.Point{data.NewPoint(1, 2, 3), data.NewPoint(-4, 5, 0.5)}
	out, err := ConvertAll(NewPresetConverter(PresetYUp), in)
	require.NoError(t, err)

	assert.Equal(t, []data.Point{data.NewPoint(1, 3, -2), data.NewPoint(-4, 0.5, -5)}, out)
	assert.Equal(t, data.NewPoint(1, 2, 3), in[0])
}

func TestConvertAllRejectsNonFinite(t *testing.T) {
	in := []data.Point{data.NewPoint(1, 2, 3), data.NewPoint(math.NaN(), 0, 0)}
	out, err := ConvertAll(NewPresetConverter(PresetZUp), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonFiniteCoordinate))
	assert.Nil(t, out)

	_, err = ConvertAll(NewPresetConverter(PresetYUp), []data.Point{data.NewPoint(0, math.Inf(-1), 0)})
	assert.True(t, errors.Is(err, ErrNonFiniteCoordinate))
}
