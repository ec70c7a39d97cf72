package tools

import (
	"github.com/spf13/pflag"
)

const (
	CommandConvert = "convert"
	CommandInspect = "inspect"
	CommandVersion = "version"
)

// long flag names, also used as override keys by the config loader
const (
	FlagInput     = "input"
	FlagOutput    = "output"
	FlagConfig    = "config"
	FlagPreset    = "preset"
	FlagLower     = "lower"
	FlagUpper     = "upper"
	FlagLOD       = "lod"
	FlagRatio     = "ratio"
	FlagScale     = "scale"
	FlagRadius    = "radius"
	FlagZOffset   = "zoffset"
	FlagSeed      = "seed"
	FlagCloudOut  = "cloud-out"
	FlagWorkers   = "workers"
	FlagLenient   = "lenient"
	FlagFolder    = "folder"
	FlagRecursive = "recursive"
	FlagSilent    = "silent"
	FlagPretty    = "pretty"
)

type InputFlags struct {
	Input                     *string `json:"input"`
	Config                    *string `json:"config"`
	Lenient                   *bool   `json:"lenient"`
	FolderProcessing          *bool   `json:"folder"`
	RecursiveFolderProcessing *bool   `json:"recursive"`
}

type FlagsForCommandConvert struct {
	InputFlags
	Output      *string  `json:"output"`
	Preset      *string  `json:"preset"`
	LowerBound  *string  `json:"lower"`
	UpperBound  *string  `json:"upper"`
	LOD         *int     `json:"lod"`
	KeepRatio   *string  `json:"ratio"`
	WorldScale  *float64 `json:"scale"`
	Radius      *float64 `json:"radius"`
	ZOffset     *float64 `json:"zoffset"`
	Seed        *uint64  `json:"seed"`
	CloudOutput *string  `json:"cloud_out"`
	Workers     *int     `json:"workers"`
	Silent      *bool    `json:"silent"`

	// the set the flags were registered on, to tell explicit values from defaults
	Set *pflag.FlagSet `json:"-"`
}

type FlagsForCommandInspect struct {
	InputFlags
	Pretty *bool `json:"pretty"`

	Set *pflag.FlagSet `json:"-"`
}

func defineInputFlags(flagCommand *pflag.FlagSet) InputFlags {
	return InputFlags{
		Input:                     defineStringFlagCommand(flagCommand, FlagInput, "i", "", "Specifies the input ply file/folder."),
		Config:                    defineStringFlagCommand(flagCommand, FlagConfig, "c", "", "Path to a YAML config file. Defaults to ./icocloud.yaml when present."),
		Lenient:                   defineBoolFlagCommand(flagCommand, FlagLenient, "", false, "Replaces non-ASCII header bytes instead of rejecting the file."),
		FolderProcessing:          defineBoolFlagCommand(flagCommand, FlagFolder, "f", false, "Enables processing of all ply files from input folder. Input must be a folder if specified"),
		RecursiveFolderProcessing: defineBoolFlagCommand(flagCommand, FlagRecursive, "r", false, "Enables recursive lookup for all .ply files inside the subfolders"),
	}
}

// DefineFlagsForCommandConvert registers the convert flags on flagCommand. Values are
// available once flagCommand is parsed.
func DefineFlagsForCommandConvert(flagCommand *pflag.FlagSet) *FlagsForCommandConvert {
	return &FlagsForCommandConvert{
		InputFlags:  defineInputFlags(flagCommand),
		Output:      defineStringFlagCommand(flagCommand, FlagOutput, "o", "", "Specifies the output obj file, or the output folder when processing a folder. Defaults to <name>_LOD<lod>_ico.obj next to the input."),
		Preset:      defineStringFlagCommand(flagCommand, FlagPreset, "p", "1", "Axis preset: 1 (y-up) rotates Z-up data to Y-up, 2 (z-up) keeps coordinates as read."),
		LowerBound:  defineStringFlagCommand(flagCommand, FlagLower, "l", "", "Lower crop bound on the up axis. Defaults to the lowest point."),
		UpperBound:  defineStringFlagCommand(flagCommand, FlagUpper, "u", "", "Upper crop bound on the up axis. Defaults to the highest point."),
		LOD:         defineIntFlagCommand(flagCommand, FlagLOD, "d", 0, "Level of detail: 0 = 100%, 1 = 10%, 2 = 25%, 3 = 50% of the points."),
		KeepRatio:   defineStringFlagCommand(flagCommand, FlagRatio, "k", "", "Fraction of points to keep, in (0, 1]. Overrides the level of detail ratio."),
		WorldScale:  defineFloat64FlagCommand(flagCommand, FlagScale, "w", 1.0, "Scale applied to point positions."),
		Radius:      defineFloat64FlagCommand(flagCommand, FlagRadius, "R", 0.01, "Radius of the sphere generated for each point."),
		ZOffset:     defineFloat64FlagCommand(flagCommand, FlagZOffset, "z", 0, "Offset added along the up axis after the preset is applied."),
		Seed:        defineUint64FlagCommand(flagCommand, FlagSeed, "", 0, "Seed for deterministic sampling. Random when not given."),
		CloudOutput: defineStringFlagCommand(flagCommand, FlagCloudOut, "", "", "Also writes the processed point cloud as a binary ply file (a folder when processing a folder)."),
		Workers:     defineIntFlagCommand(flagCommand, FlagWorkers, "j", 0, "Number of goroutines formatting the mesh. 0 uses one per CPU."),
		Silent:      defineBoolFlagCommand(flagCommand, FlagSilent, "s", false, "Use to suppress all the non-error messages."),
		Set:         flagCommand,
	}
}

func DefineFlagsForCommandInspect(flagCommand *pflag.FlagSet) *FlagsForCommandInspect {
	return &FlagsForCommandInspect{
		InputFlags: defineInputFlags(flagCommand),
		Pretty:     defineBoolFlagCommand(flagCommand, FlagPretty, "", true, "Indents the printed schema."),
		Set:        flagCommand,
	}
}

func defineStringFlagCommand(flagCommand *pflag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineIntFlagCommand(flagCommand *pflag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineUint64FlagCommand(flagCommand *pflag.FlagSet, name string, shortHand string, defaultValue uint64, usage string) *uint64 {
	var output uint64
	flagCommand.Uint64VarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineFloat64FlagCommand(flagCommand *pflag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64VarP(&output, name, shortHand, defaultValue, usage)
	return &output
}

func defineBoolFlagCommand(flagCommand *pflag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVarP(&output, name, shortHand, defaultValue, usage)
	return &output
}
