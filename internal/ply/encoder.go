package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/pkg/errors"
)

// Format is the body encoding named on the header format line.
type Format string

const (
	FormatASCII              Format = "ascii"
	FormatBinaryLittleEndian Format = formatBinaryLE
	FormatBinaryBigEndian    Format = formatBinaryBE
)

// Encoder writes a PLY file holding a single vertex element of scalar properties.
type Encoder struct {
	Format     Format
	Properties []Property
	Comments   []string
}

// PositionEncoder returns an encoder for float x, y, z vertices.
func PositionEncoder(format Format) *Encoder {
	return &Encoder{
		Format: format,
		Properties: []Property{
			{Name: "x", Kind: KindFloat32},
			{Name: "y", Kind: KindFloat32},
			{Name: "z", Kind: KindFloat32},
		},
	}
}

// Encode writes the header and one record per entry of records. Each record holds one
// value per property, in declaration order.
func (e *Encoder) Encode(w io.Writer, records [][]float64) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, headerMagic)
	fmt.Fprintf(bw, "format %s 1.0\n", e.Format)
	for _, c := range e.Comments {
		fmt.Fprintf(bw, "comment %s\n", c)
	}
	fmt.Fprintf(bw, "element %s %d\n", vertexElement, len(records))
	for _, p := range e.Properties {
		fmt.Fprintf(bw, "property %s %s\n", p.Kind, p.Name)
	}
	fmt.Fprintln(bw, headerEnd)

	var err error
	if e.Format == FormatASCII {
		err = e.encodeText(bw, records)
	} else {
		err = e.encodeBinary(bw, records)
	}
	if err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "writing ply")
}

func (e *Encoder) encodeBinary(w *bufio.Writer, records [][]float64) error {
	var order binary.ByteOrder = binary.LittleEndian
	if e.Format == FormatBinaryBigEndian {
		order = binary.BigEndian
	}

	stride := 0
	for _, p := range e.Properties {
		stride += p.Kind.Width()
	}
	buf := make([]byte, stride)

	for i, record := range records {
		if len(record) != len(e.Properties) {
			return errors.Errorf("record %d has %d values for %d properties", i, len(record), len(e.Properties))
		}
		offset := 0
		for j, p := range e.Properties {
			p.Kind.putValue(order, buf[offset:], record[j])
			offset += p.Kind.Width()
		}
		if _, err := w.Write(buf); err != nil {
			return errors.Wrap(err, "writing ply")
		}
	}
	return nil
}

func (e *Encoder) encodeText(w *bufio.Writer, records [][]float64) error {
	line := make([]byte, 0, 64)
	for i, record := range records {
		if len(record) != len(e.Properties) {
			return errors.Errorf("record %d has %d values for %d properties", i, len(record), len(e.Properties))
		}
		line = line[:0]
		for j, v := range record {
			if j > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendFloat(line, v, 'g', -1, 64)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return errors.Wrap(err, "writing ply")
		}
	}
	return nil
}

// WritePoints writes points as a PLY file of float x, y, z vertices.
func WritePoints(w io.Writer, format Format, points []data.Point, comments ...string) error {
	enc := PositionEncoder(format)
	enc.Comments = comments

	records := make([][]float64, len(points))
	for i, p := range points {
		records[i] = []float64{p.X, p.Y, p.Z}
	}
	return enc.Encode(w, records)
}
