package pkg

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ecopia-map/icocloud/internal/converter"
	"github.com/ecopia-map/icocloud/internal/converters"
	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/ecopia-map/icocloud/internal/filter"
	"github.com/ecopia-map/icocloud/internal/mesh"
	"github.com/ecopia-map/icocloud/internal/ply"
	"github.com/ecopia-map/icocloud/pkg/algorithm_manager"
	"github.com/ecopia-map/icocloud/tools"
	pkgerrors "github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

type IConverter interface {
	RunConverter(opts *converter.Options) ([]*Result, error)
}

type Converter struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewConverter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IConverter {
	return &Converter{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Result describes a completed conversion. Point counts are taken after each stage.
type Result struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	CloudOutput string `json:"cloud_output,omitempty"`

	InputPoints   uint64 `json:"input_points"`
	DecodedPoints int    `json:"decoded_points"`
	CroppedPoints int    `json:"cropped_points"`
	SampledPoints int    `json:"sampled_points"`
	Vertices      int    `json:"vertices"`
	Faces         int    `json:"faces"`
	Bytes         int64  `json:"bytes"`

	CropAxis    data.Axis       `json:"crop_axis"`
	LowerBound  float64         `json:"lower_bound"`
	UpperBound  float64         `json:"upper_bound"`
	DecodeStats ply.DecodeStats `json:"decode_stats"`
}

// errors raised by the ply package while interpreting the file, as opposed to reading it
var decodeErrors = []error{
	ply.ErrHeaderDecode,
	ply.ErrMissingCoordinateField,
	ply.ErrUnsupportedLayout,
	ply.ErrMalformedTextRecord,
	ply.ErrTruncatedRecord,
}

// Converts every input selected by opts. A failing input does not stop the others, the
// errors of all inputs are combined.
func (c *Converter) RunConverter(opts *converter.Options) ([]*Result, error) {
	tools.LogOutput("Preparing list of files to process...")

	plyFiles, err := c.fileFinder.GetPlyFilesToProcess(opts)
	if err != nil {
		return nil, err
	}
	if len(plyFiles) == 0 {
		return nil, pkgerrors.Errorf("no .ply files found in %s", opts.Input)
	}

	var results []*Result
	var errs error
	for i, filePath := range plyFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(plyFiles)))
		result, err := c.Convert(filePath, opts)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, result)
		tools.LogOutput("> done processing", filepath.Base(filePath))
	}

	return results, errs
}

// Convert runs the whole pipeline on one input: decode, transform, crop, sample and
// mesh synthesis. The mesh is written only when every previous stage succeeded, and
// it never exists partially written.
func (c *Converter) Convert(input string, opts *converter.Options) (*Result, error) {
	result := &Result{
		Input:       input,
		Output:      opts.OutputPath(input),
		CloudOutput: opts.CloudOutputPath(input),
	}

	tools.LogOutput("> reading data from ply file...", filepath.Base(input))
	schema, points, stats, err := readPly(input, opts.Lenient)
	if err != nil {
		return nil, err
	}
	result.InputPoints = schema.VertexCount
	result.DecodedPoints = len(points)
	result.DecodeStats = stats
	tools.LogOutput("> loaded", len(points), "of", schema.VertexCount, "points,", stats.Malformed, "malformed and", stats.NonFinite, "non-finite records skipped")
	if len(points) == 0 {
		return nil, &StageError{Stage: StageDecode, Input: input, Err: pkgerrors.Wrap(filter.ErrEmptyResult, "no vertex records decoded")}
	}

	coordinateConverter := c.algorithmManager.GetCoordinateConverterAlgorithm()
	tools.LogOutput("> applying preset", coordinateConverter.Preset().String())
	points, err = converters.ConvertAll(coordinateConverter, points)
	if err != nil {
		return nil, &StageError{Stage: StageTransform, Input: input, Err: err}
	}

	crop := c.algorithmManager.GetCropAlgorithm()
	if cropFilter, ok := crop.(*filter.CropFilter); ok {
		result.CropAxis = cropFilter.Axis
		result.LowerBound, result.UpperBound = cropFilter.Bounds(points)
	}
	points, err = crop.Filter(points)
	if err != nil {
		return nil, &StageError{Stage: StageCrop, Input: input, Err: err}
	}
	result.CroppedPoints = len(points)
	tools.LogOutput("> cropped", result.CropAxis.String(), "to ["+tools.FmtDecimal(result.LowerBound, 3)+", "+tools.FmtDecimal(result.UpperBound, 3)+"]:",
		result.CroppedPoints, "points kept ("+tools.FmtPercent(result.CroppedPoints, result.DecodedPoints)+")")

	points, err = c.algorithmManager.GetSamplingAlgorithm().Filter(points)
	if err != nil {
		return nil, &StageError{Stage: StageSample, Input: input, Err: err}
	}
	result.SampledPoints = len(points)
	tools.LogOutput("> sampled", result.SampledPoints, "points ("+tools.FmtPercent(result.SampledPoints, result.CroppedPoints)+")")

	if result.CloudOutput != "" {
		err := writeFileAtomic(result.CloudOutput, func(w io.Writer) error {
			return ply.WritePoints(w, ply.FormatBinaryLittleEndian, points, "processed from "+filepath.Base(input))
		})
		if err != nil {
			return nil, &StageError{Stage: StageWrite, Input: input, Err: err}
		}
		tools.LogOutput("> saved processed cloud", result.CloudOutput)
	}

	tools.LogOutput("> generating ico spheres for", len(points), "points...")
	meshStats, err := c.writeMesh(result.Output, points, opts)
	if err != nil {
		if result.CloudOutput != "" {
			// the processed cloud is only kept next to its mesh
			_ = os.Remove(result.CloudOutput)
		}
		return nil, &StageError{Stage: StageWrite, Input: input, Err: err}
	}
	result.Vertices = meshStats.Vertices
	result.Faces = meshStats.Faces
	result.Bytes = meshStats.Bytes
	tools.LogOutput("> saved", result.Output+":", result.Vertices, "vertices,", result.Faces, "faces")

	return result, nil
}

func readPly(input string, lenient bool) (*ply.Schema, []data.Point, ply.DecodeStats, error) {
	file, err := os.Open(input)
	if err != nil {
		return nil, nil, ply.DecodeStats{}, &StageError{Stage: StageRead, Input: input, Err: pkgerrors.Wrap(err, "opening ply file")}
	}
	defer func() { _ = file.Close() }()

	schema, points, stats, err := ply.ReadPoints(file, ply.ReadOptions{Lenient: lenient})
	if err != nil {
		stage := StageRead
		if lo.SomeBy(decodeErrors, func(target error) bool { return errors.Is(err, target) }) {
			stage = StageDecode
		}
		return nil, nil, stats, &StageError{Stage: stage, Input: input, Err: err}
	}
	return schema, points, stats, nil
}

func (c *Converter) writeMesh(output string, points []data.Point, opts *converter.Options) (mesh.Stats, error) {
	meshOpts := mesh.DefaultOptions()
	meshOpts.WorldScale = opts.WorldScale
	meshOpts.Radius = opts.Radius
	meshOpts.Workers = opts.Workers
	if !opts.Silent && tools.IsLoggerEnabled() {
		meshOpts.Progress = tools.NewProgress("Writing").Func()
	}

	var stats mesh.Stats
	err := writeFileAtomic(output, func(w io.Writer) error {
		var err error
		stats, err = mesh.Write(w, points, meshOpts)
		return err
	})
	return stats, err
}

// writeFileAtomic writes to a temporary file next to path and renames it over path once
// write succeeded. On failure the temporary file is removed and path is left untouched.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := tools.CreateDirectoryIfDoesNotExist(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "creating temporary file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	err = multierr.Combine(write(tmp), tmp.Chmod(0644), tmp.Close())
	if err != nil {
		return err
	}
	return pkgerrors.Wrapf(os.Rename(tmp.Name(), path), "renaming %s", tmp.Name())
}
