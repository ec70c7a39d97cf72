package converter

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ecopia-map/icocloud/internal/converters"
	"github.com/ecopia-map/icocloud/internal/mesh"
	"github.com/pkg/errors"
)

const (
	CommandConvert = "convert"
	CommandInspect = "inspect"

	objExtension = ".obj"
)

// Keep ratio of each level of detail. Level 0 keeps the whole cloud.
var lodRatios = map[int]float64{
	0: 1.0,
	1: 0.10,
	2: 0.25,
	3: 0.50,
}

// RatioForLOD returns the keep ratio of a level of detail, 1.0 for unknown levels.
func RatioForLOD(lod int) float64 {
	if ratio, ok := lodRatios[lod]; ok {
		return ratio
	}
	return 1.0
}

// Contains the fully resolved options of a conversion run
type Options struct {
	Input            string            // Input PLY file/folder
	Output           string            // Output OBJ file of a single input
	OutputDir        string            // Folder receiving the meshes named after their input
	Preset           converters.Preset // Axis preset applied to decoded points
	LowerBound       *float64          // Lower crop bound on the preset up axis, nil for the observed minimum
	UpperBound       *float64          // Upper crop bound on the preset up axis, nil for the observed maximum
	LOD              int               // Level of detail, used for the default output name
	KeepRatio        float64           // Fraction of points kept by the sampler, in (0, 1]
	WorldScale       float64           // Scale applied to point positions
	Radius           float64           // Radius of each marker
	ZOffset          float64           // Offset added along the up axis after the preset
	Seed             *uint64           // Sampling seed, nil for a random one
	CloudOutput      string            // Optional PLY export of the processed cloud
	Workers          int               // Formatting goroutines, 0 for one per CPU
	Lenient          bool              // Replace non-ASCII header bytes instead of failing
	FolderProcessing bool              // Enables the processing of all PLY files in folder
	Recursive        bool              // Recursive lookup of PLY files in subfolders
	Silent           bool              // Suppresses progress output

	Command        string
	InspectOptions *InspectOptions
}

type InspectOptions struct {
	Pretty bool // Indent the printed JSON
}

// NewOptions returns the options of a conversion with every default applied.
func NewOptions(input string) *Options {
	return &Options{
		Input:      input,
		Preset:     converters.PresetYUp,
		KeepRatio:  RatioForLOD(0),
		WorldScale: mesh.DefaultWorldScale,
		Radius:     mesh.DefaultRadius,
		Command:    CommandConvert,
	}
}

// Validate checks the numeric options.
func (opt *Options) Validate() error {
	if opt.Input == "" {
		return errors.New("input file/folder not specified")
	}
	if math.IsNaN(opt.KeepRatio) || opt.KeepRatio <= 0 || opt.KeepRatio > 1 {
		return errors.Errorf("keep ratio %v is outside (0, 1]", opt.KeepRatio)
	}
	if opt.WorldScale == 0 || math.IsNaN(opt.WorldScale) || math.IsInf(opt.WorldScale, 0) {
		return errors.Errorf("world scale %v must be a finite non-zero number", opt.WorldScale)
	}
	if opt.Radius <= 0 || math.IsNaN(opt.Radius) || math.IsInf(opt.Radius, 0) {
		return errors.Errorf("sphere radius %v must be a positive number", opt.Radius)
	}
	if opt.LowerBound != nil && opt.UpperBound != nil && *opt.LowerBound > *opt.UpperBound {
		return errors.Errorf("lower crop bound %v is greater than upper crop bound %v", *opt.LowerBound, *opt.UpperBound)
	}
	if opt.Workers < 0 {
		return errors.Errorf("workers %d cannot be negative", opt.Workers)
	}
	return nil
}

// OutputPath returns the OBJ destination for input. Without an explicit output the
// mesh is named <base>_LOD<lod>_ico.obj, in OutputDir or else next to the input.
func (opt *Options) OutputPath(input string) string {
	if opt.Output != "" && !opt.FolderProcessing {
		return opt.Output
	}

	name := fmt.Sprintf("%s_LOD%d_ico%s", getFilenameWithoutExtension(input), opt.LOD, objExtension)
	if opt.OutputDir != "" {
		return filepath.Join(opt.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// CloudOutputPath returns the PLY export destination for input, empty when disabled.
// In folder processing the export is named after each input inside CloudOutput.
func (opt *Options) CloudOutputPath(input string) string {
	if opt.CloudOutput == "" || !opt.FolderProcessing {
		return opt.CloudOutput
	}
	return filepath.Join(opt.CloudOutput, getFilenameWithoutExtension(input)+"_processed.ply")
}

func getFilenameWithoutExtension(filePath string) string {
	nameWext := filepath.Base(filePath)
	return strings.TrimSuffix(nameWext, filepath.Ext(nameWext))
}
