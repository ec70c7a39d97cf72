package pkg

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ecopia-map/icocloud/internal/converter"
	"github.com/ecopia-map/icocloud/internal/ply"
	"github.com/ecopia-map/icocloud/tools"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// InspectReport is the header of one input as resolved by the schema reader.
type InspectReport struct {
	File   string      `json:"file"`
	Schema *ply.Schema `json:"schema"`
}

type Inspector struct {
	fileFinder tools.FileFinder
	out        io.Writer
}

func NewInspector(fileFinder tools.FileFinder, out io.Writer) *Inspector {
	return &Inspector{
		fileFinder: fileFinder,
		out:        out,
	}
}

// RunInspector prints the resolved schema of every selected input as JSON, without
// decoding any record.
func (inspector *Inspector) RunInspector(opts *converter.Options) ([]*InspectReport, error) {
	plyFiles, err := inspector.fileFinder.GetPlyFilesToProcess(opts)
	if err != nil {
		return nil, err
	}

	pretty := opts.InspectOptions != nil && opts.InspectOptions.Pretty

	var reports []*InspectReport
	var errs error
	for _, filePath := range plyFiles {
		schema, err := inspectPly(filePath, opts.Lenient)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		report := &InspectReport{File: filePath, Schema: schema}
		reports = append(reports, report)
		if pretty {
			fmt.Fprintln(inspector.out, tools.FmtJSONIndent(report))
		} else {
			fmt.Fprintln(inspector.out, tools.FmtJSONString(report))
		}
	}
	return reports, errs
}

func inspectPly(filePath string, lenient bool) (*ply.Schema, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &StageError{Stage: StageRead, Input: filePath, Err: errors.Wrap(err, "opening ply file")}
	}
	defer func() { _ = file.Close() }()

	schema, err := ply.ReadSchema(bufio.NewReader(file), ply.ReadOptions{Lenient: lenient})
	if err != nil {
		return nil, &StageError{Stage: StageDecode, Input: filePath, Err: err}
	}
	return schema, nil
}
