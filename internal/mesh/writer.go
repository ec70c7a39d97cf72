package mesh

import (
	"bufio"
	"io"
	"runtime"
	"strconv"

	"github.com/ecopia-map/icocloud/internal/data"
	cio "github.com/ecopia-map/icocloud/internal/io"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	DefaultWorldScale = 1.0
	DefaultRadius     = 0.01

	headerComment = "# OBJ generated from PLY pointcloud"

	// markers formatted per work unit; one marker is about 1.2KB of text
	defaultChunkSize = 2048
)

// Options controls the marker geometry and the formatting concurrency. Zero values
// take the defaults.
type Options struct {
	WorldScale float64
	Radius     float64

	// number of formatting goroutines, 0 picks runtime.NumCPU()
	Workers   int
	ChunkSize int

	// called after each written chunk with the number of markers written so far
	Progress func(done, total int)
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		WorldScale: DefaultWorldScale,
		Radius:     DefaultRadius,
	}
}

// Stats describes a synthesized mesh.
type Stats struct {
	Markers  int   `json:"markers"`
	Vertices int   `json:"vertices"`
	Faces    int   `json:"faces"`
	Bytes    int64 `json:"bytes"`
}

// markerFormatter renders markers as OBJ v and f lines.
type markerFormatter struct {
	ico    Icosphere
	scale  float64
	radius float64
}

func (f *markerFormatter) Format(dst []byte, unit *cio.WorkUnit) []byte {
	offset := unit.Offset
	for _, p := range unit.Points {
		dst = f.appendMarker(dst, p, offset)
		offset += IcosphereVertices
	}
	return dst
}

func (f *markerFormatter) appendMarker(dst []byte, p data.Point, offset int) []byte {
	center := p.Mul(f.scale)
	for _, v := range f.ico.Vertices {
		q := center.Add(v.Mul(f.radius))
		dst = append(dst, 'v', ' ')
		dst = strconv.AppendFloat(dst, q.X, 'f', 6, 64)
		dst = append(dst, ' ')
		dst = strconv.AppendFloat(dst, q.Y, 'f', 6, 64)
		dst = append(dst, ' ')
		dst = strconv.AppendFloat(dst, q.Z, 'f', 6, 64)
		dst = append(dst, '\n')
	}
	// OBJ indices are one based
	for _, face := range f.ico.Faces {
		dst = append(dst, 'f', ' ')
		dst = strconv.AppendInt(dst, int64(offset+face[0]+1), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(offset+face[1]+1), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(offset+face[2]+1), 10)
		dst = append(dst, '\n')
	}
	return dst
}

// countingWriter tracks the bytes that reached the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Write emits one icosphere marker per point as an OBJ document. Marker k owns the
// vertex indices 12k+1 through 12k+12 and its faces only reference those. The output is
// identical for any number of workers.
func Write(w io.Writer, points []data.Point, opts Options) (Stats, error) {
	if opts.WorldScale == 0 {
		opts.WorldScale = DefaultWorldScale
	}
	if opts.Radius == 0 {
		opts.Radius = DefaultRadius
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(cw, 1<<20)

	stats := Stats{
		Markers:  len(points),
		Vertices: len(points) * IcosphereVertices,
		Faces:    len(points) * IcosphereFaces,
	}

	header := headerComment + "\n# Total spheres: " + strconv.Itoa(len(points)) + "\n"
	if _, err := bw.WriteString(header); err != nil {
		return stats, errors.Wrap(err, "writing obj header")
	}

	formatter := &markerFormatter{ico: Template(), scale: opts.WorldScale, radius: opts.Radius}
	written := 0
	sink := func(unit *cio.WorkUnit, chunk []byte) error {
		if _, err := bw.Write(chunk); err != nil {
			return errors.Wrapf(err, "writing markers %d-%d", written, written+len(unit.Points))
		}
		written += len(unit.Points)
		if opts.Progress != nil {
			opts.Progress(written, len(points))
		}
		return nil
	}

	var err error
	if opts.Workers == 1 {
		err = writeSerial(points, opts.ChunkSize, formatter, sink)
	} else {
		glog.V(1).Infof("mesh: formatting %d markers with %d workers", len(points), opts.Workers)
		err = cio.RunOrdered(points, opts.ChunkSize, IcosphereVertices, opts.Workers, formatter, sink)
	}
	if err != nil {
		return stats, err
	}

	if err := bw.Flush(); err != nil {
		return stats, errors.Wrap(err, "writing obj")
	}
	stats.Bytes = cw.n
	return stats, nil
}

func writeSerial(points []data.Point, chunkSize int, formatter cio.Formatter, sink cio.Sink) error {
	var buf []byte
	for index, start := 0, 0; start < len(points); index, start = index+1, start+chunkSize {
		end := start + chunkSize
		if end > len(points) {
			end = len(points)
		}
		unit := &cio.WorkUnit{Index: index, Points: points[start:end], Offset: start * IcosphereVertices}
		buf = formatter.Format(buf[:0], unit)
		if err := sink(unit, buf); err != nil {
			return err
		}
	}
	return nil
}
