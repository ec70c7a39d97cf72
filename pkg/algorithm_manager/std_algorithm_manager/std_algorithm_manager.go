package std_algorithm_manager

import (
	"github.com/ecopia-map/icocloud/internal/converter"
	"github.com/ecopia-map/icocloud/internal/converters"
	"github.com/ecopia-map/icocloud/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/icocloud/internal/filter"
	"github.com/ecopia-map/icocloud/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *converter.Options
	coordinateConverter converters.CoordinateConverter
	sampler             *filter.Sampler
}

func NewAlgorithmManager(opts *converter.Options) algorithm_manager.AlgorithmManager {
	var sampler *filter.Sampler
	if opts.Seed != nil {
		sampler = filter.NewSeededSampler(opts.KeepRatio, *opts.Seed)
	} else {
		sampler = filter.NewSampler(opts.KeepRatio)
	}

	return &StandardAlgorithmManager{
		options: opts,
		coordinateConverter: offset_elevation_corrector.NewOffsetElevationCorrector(
			converters.NewPresetConverter(opts.Preset),
			opts.ZOffset,
		),
		sampler: sampler,
	}
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

// The crop works on the up axis of the coordinate converter.
func (m *StandardAlgorithmManager) GetCropAlgorithm() filter.Filter {
	return filter.NewCropFilter(m.coordinateConverter.UpAxis(), m.options.LowerBound, m.options.UpperBound)
}

// The sampler is shared across inputs, so a seeded run is reproducible as a whole.
func (m *StandardAlgorithmManager) GetSamplingAlgorithm() filter.Filter {
	return m.sampler
}
