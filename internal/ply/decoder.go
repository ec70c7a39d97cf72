package ply

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// upper bound for preallocating the point slice from an untrusted vertex count
const maxPrealloc = 1 << 22

// DecodeStats summarizes the recoverable conditions met while decoding.
type DecodeStats struct {
	Declared  uint64 `json:"declared"`
	Decoded   uint64 `json:"decoded"`
	Malformed uint64 `json:"malformed"`
	NonFinite uint64 `json:"non_finite"`
	Truncated bool   `json:"truncated"`
}

type field struct {
	offset int
	read   func(b []byte) float64
}

// Decoder yields the vertex positions of a PLY body one record at a time:
//
//	dec := ply.NewDecoder(r, schema)
//	for dec.Next() {
//		p := dec.Point()
//	}
//	err := dec.Err()
type Decoder struct {
	r         *bufio.Reader
	schema    *Schema
	remaining uint64
	record    []byte
	fields    [3]field
	columns   [3]int
	point     data.Point
	stats     DecodeStats
	started   bool
	done      bool
	err       error
}

// NewDecoder builds a decoder for the body that follows the header described by schema.
// r must be the reader ReadSchema consumed the header from.
func NewDecoder(r *bufio.Reader, schema *Schema) *Decoder {
	d := &Decoder{
		r:         r,
		schema:    schema,
		remaining: schema.VertexCount,
	}
	d.stats.Declared = schema.VertexCount
	for i, index := range [3]int{schema.X, schema.Y, schema.Z} {
		d.columns[i] = schema.Properties[index].column
	}

	if schema.IsBinary {
		var order binary.ByteOrder = binary.LittleEndian
		if schema.IsBigEndian {
			order = binary.BigEndian
		}
		d.record = make([]byte, schema.Stride)
		for i, index := range [3]int{schema.X, schema.Y, schema.Z} {
			p := schema.Properties[index]
			d.fields[i] = field{offset: p.Offset, read: p.Kind.valueReader(order)}
		}
	}
	return d
}

// Next advances to the next decodable record. It returns false at the end of the
// declared records, at the end of input, or on a read error.
func (d *Decoder) Next() bool {
	if d.done {
		return false
	}
	if !d.started {
		d.started = true
		if err := d.skipLeading(); err != nil {
			d.fail(err)
			return false
		}
		if d.done {
			return false
		}
	}
	if d.schema.IsBinary {
		return d.nextBinary()
	}
	return d.nextText()
}

// Point returns the point decoded by the last successful call to Next.
func (d *Decoder) Point() data.Point {
	return d.point
}

// Err returns the first non-recoverable error met by the decoder.
func (d *Decoder) Err() error {
	return d.err
}

// Stats returns the decoding counters so far.
func (d *Decoder) Stats() DecodeStats {
	return d.stats
}

func (d *Decoder) nextBinary() bool {
	for d.remaining > 0 {
		_, err := io.ReadFull(d.r, d.record)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			d.truncate()
			return false
		}
		if err != nil {
			d.fail(errors.Wrap(err, "reading vertex record"))
			return false
		}
		d.remaining--

		p := data.NewPoint(
			d.fields[0].read(d.record[d.fields[0].offset:]),
			d.fields[1].read(d.record[d.fields[1].offset:]),
			d.fields[2].read(d.record[d.fields[2].offset:]),
		)
		if d.accept(p) {
			return true
		}
	}
	d.finish()
	return false
}

func (d *Decoder) nextText() bool {
	for d.remaining > 0 {
		line, err := d.r.ReadString('\n')
		if err != nil && err != io.EOF {
			d.fail(errors.Wrap(err, "reading vertex record"))
			return false
		}
		if err == io.EOF && line == "" {
			d.truncate()
			return false
		}
		d.remaining--

		p, parseErr := d.parseText(line)
		if parseErr != nil {
			d.stats.Malformed++
			glog.V(1).Infof("ply: record %d skipped: %v", d.stats.Declared-d.remaining, parseErr)
			continue
		}
		if d.accept(p) {
			return true
		}
	}
	d.finish()
	return false
}

// accept makes p the current point unless one of its coordinates is NaN or infinite.
func (d *Decoder) accept(p data.Point) bool {
	if !data.IsFinite(p) {
		d.stats.NonFinite++
		glog.V(1).Infof("ply: record %d skipped: non-finite position (%v, %v, %v)", d.stats.Declared-d.remaining, p.X, p.Y, p.Z)
		return false
	}
	d.point = p
	d.stats.Decoded++
	return true
}

func (d *Decoder) parseText(line string) (data.Point, error) {
	tokens := strings.Fields(line)
	var xyz [3]float64
	for i, column := range d.columns {
		if column >= len(tokens) {
			return data.Point{}, errors.Wrapf(ErrMalformedTextRecord, "%d tokens, need field %d", len(tokens), column+1)
		}
		v, err := strconv.ParseFloat(tokens[column], 64)
		if err != nil {
			return data.Point{}, errors.Wrapf(ErrMalformedTextRecord, "token %q", tokens[column])
		}
		xyz[i] = v
	}
	return data.NewPoint(xyz[0], xyz[1], xyz[2]), nil
}

// skipLeading discards the records of the elements declared before the vertex element.
func (d *Decoder) skipLeading() error {
	s := d.schema
	if s.leadingErr != nil {
		return s.leadingErr
	}
	if !s.IsBinary && (d.columns[0] < 0 || d.columns[1] < 0 || d.columns[2] < 0) {
		return errors.Wrap(ErrUnsupportedLayout, "a vertex list property precedes a coordinate in an ascii body")
	}

	if s.IsBinary {
		if s.leadingBytes == 0 {
			return nil
		}
		if _, err := io.CopyN(io.Discard, d.r, s.leadingBytes); err != nil {
			if err == io.EOF {
				d.truncate()
				return nil
			}
			return errors.Wrap(err, "skipping leading elements")
		}
		return nil
	}

	for i := uint64(0); i < s.leadingRecords; i++ {
		if _, err := d.r.ReadString('\n'); err != nil {
			if err == io.EOF {
				d.truncate()
				return nil
			}
			return errors.Wrap(err, "skipping leading elements")
		}
	}
	return nil
}

func (d *Decoder) truncate() {
	if d.remaining > 0 {
		d.stats.Truncated = true
		glog.Warningf("ply: %v: input ends after %d of %d vertex records", ErrTruncatedRecord, d.stats.Declared-d.remaining, d.stats.Declared)
	}
	d.finish()
}

func (d *Decoder) finish() {
	d.done = true
	if d.stats.Malformed > 0 {
		glog.Warningf("ply: %d malformed vertex records skipped", d.stats.Malformed)
	}
	if d.stats.NonFinite > 0 {
		glog.Warningf("ply: %d vertex records with a NaN or infinite position skipped", d.stats.NonFinite)
	}
}

func (d *Decoder) fail(err error) {
	d.done = true
	d.err = err
}

// ReadPoints reads a whole PLY stream: the header, then every decodable vertex position.
func ReadPoints(r io.Reader, opts ReadOptions) (*Schema, []data.Point, DecodeStats, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 1<<16)
	}

	schema, err := ReadSchema(br, opts)
	if err != nil {
		return nil, nil, DecodeStats{}, err
	}

	size := schema.VertexCount
	if size > maxPrealloc {
		size = maxPrealloc
	}
	points := make([]data.Point, 0, size)

	dec := NewDecoder(br, schema)
	for dec.Next() {
		points = append(points, dec.Point())
	}
	return schema, points, dec.Stats(), dec.Err()
}
