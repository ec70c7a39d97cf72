package algorithm_manager

import (
	"github.com/ecopia-map/icocloud/internal/converters"
	"github.com/ecopia-map/icocloud/internal/filter"
)

type AlgorithmManager interface {
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	GetCropAlgorithm() filter.Filter
	GetSamplingAlgorithm() filter.Filter
}
