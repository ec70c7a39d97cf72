package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ecopia-map/icocloud/internal/converter"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const plyExtension = ".ply"

type FileFinder interface {
	GetPlyFilesToProcess(opts *converter.Options) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetPlyFilesToProcess(opts *converter.Options) ([]string, error) {
	// If folder processing is not enabled then ply file is given by -input flag, otherwise look for ply in -input folder
	// eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.getPlyFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getPlyFilesFromInputFolder(opts *converter.Options) ([]string, error) {
	var plyFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, errors.Wrap(err, "reading input folder")
	}
	if !baseInfo.IsDir() {
		return nil, errors.Errorf("input %s is not a folder", opts.Input)
	}

	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			} else if !info.IsDir() {
				if strings.ToLower(filepath.Ext(info.Name())) == plyExtension {
					plyFiles = append(plyFiles, filepath.Clean(path))
				}
			}
			return nil
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "walking input folder")
	}

	plyFiles = lo.Uniq(plyFiles)
	sort.Strings(plyFiles)
	return plyFiles, nil
}
