/*
 * This file is part of icocloud, a derivative work of the Go Cesium Point Cloud Tiler
 * (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ecopia-map/icocloud/internal/config"
	"github.com/ecopia-map/icocloud/internal/converter"
	"github.com/ecopia-map/icocloud/pkg"
	"github.com/ecopia-map/icocloud/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/icocloud/tools"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const VERSION = "1.0.0"

const logo = `
  _                _                 _
 (_) ___ ___   ___| | ___  _   _  __| |
 | |/ __/ _ \ / __| |/ _ \| | | |/ _  |
 | | (_| (_) | (__| | (_) | |_| | (_| |
 |_|\___\___/ \___|_|\___/ \__,_|\__,_|
  A PLY point cloud to OBJ ico sphere converter written in golang
`

func main() {
	// glog writes to files unless told otherwise, a command line tool reports on stderr
	_ = flag.Set("logtostderr", "true")

	root := &cobra.Command{
		Use:           "icocloud",
		Short:         "Converts PLY point clouds to OBJ meshes with an ico sphere per point",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// marks the go flags parsed, their values are already set through pflag
		_ = flag.CommandLine.Parse([]string{})
	}

	root.AddCommand(
		newConvertCommand(),
		newInspectCommand(),
		newVersionCommand(),
	)

	err := root.Execute()
	glog.Flush()
	if err != nil {
		glog.Exitf("Error: %v", err)
	}
}

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   tools.CommandConvert + " [input]",
		Short: "Converts a ply file, or every ply file of a folder, into obj meshes",
		Args:  cobra.MaximumNArgs(1),
	}
	flags := tools.DefineFlagsForCommandConvert(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return mainCommandConvert(flags, args)
	}
	return cmd
}

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   tools.CommandInspect + " [input]",
		Short: "Prints the vertex layout resolved from the header of ply files as JSON",
		Args:  cobra.MaximumNArgs(1),
	}
	flags := tools.DefineFlagsForCommandInspect(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return mainCommandInspect(flags, args)
	}
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   tools.CommandVersion,
		Short: "Displays the version of icocloud",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion()
		},
	}
}

func mainCommandConvert(flags *tools.FlagsForCommandConvert, args []string) error {
	input := resolveInput(*flags.Input, args)

	cfg, err := config.Load(*flags.Config)
	if err != nil {
		return err
	}
	if err := config.ApplyConvertFlags(cfg, flags); err != nil {
		return err
	}

	// Put settings inside an Options struct
	opts, err := cfg.ConverterOptions(input, *flags.Output, *flags.FolderProcessing, *flags.RecursiveFolderProcessing)
	if err != nil {
		return errors.Wrap(err, "parsing input parameters")
	}

	// set logging
	if opts.Silent {
		tools.DisableLogger()
	} else {
		tools.EnableLogger()
		printLogo()
	}

	// Validate Options
	if msg, res := validateOptionsForCommandConvert(opts); !res {
		return errors.New("parsing input parameters: " + msg)
	}
	glog.V(1).Infoln("options", tools.FmtJSONString(opts))

	// Starts the converter
	start := time.Now()
	results, err := pkg.NewConverter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunConverter(opts)
	for _, result := range results {
		tools.LogOutput("DONE! Saved:", result.Output, "("+tools.FmtPercent(result.SampledPoints, result.DecodedPoints), "of the points loaded)")
	}
	if err != nil {
		return errors.Wrap(err, "converting")
	}

	timeTrack(start, "conversion")
	tools.LogOutput("Conversion Completed")
	return nil
}

// Validates the input options provided to the command line tool checking
// that the input file/folder exists
func validateOptionsForCommandConvert(opts *converter.Options) (string, bool) {
	if !tools.FileExists(opts.Input) {
		return "Input file/folder not found", false
	}
	if opts.FolderProcessing && opts.OutputDir != "" {
		if info, err := os.Stat(opts.OutputDir); err == nil && !info.IsDir() {
			return "Output must be a folder when processing a folder", false
		}
	}
	return "", true
}

func mainCommandInspect(flags *tools.FlagsForCommandInspect, args []string) error {
	input := resolveInput(*flags.Input, args)
	if !tools.FileExists(input) {
		return errors.New("parsing input parameters: Input file/folder not found")
	}

	cfg, err := config.Load(*flags.Config)
	if err != nil {
		return err
	}

	opts := converter.NewOptions(input)
	opts.Command = converter.CommandInspect
	opts.Lenient = cfg.Conversion.Lenient || *flags.Lenient
	opts.FolderProcessing = *flags.FolderProcessing
	opts.Recursive = *flags.RecursiveFolderProcessing
	opts.InspectOptions = &converter.InspectOptions{Pretty: *flags.Pretty}

	_, err = pkg.NewInspector(tools.NewStandardFileFinder(), os.Stdout).RunInspector(opts)
	return err
}

func resolveInput(flagValue string, args []string) string {
	if flagValue == "" && len(args) > 0 {
		return args[0]
	}
	return flagValue
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Fprintln(os.Stderr, strings.TrimPrefix(logo, "\n"))
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
