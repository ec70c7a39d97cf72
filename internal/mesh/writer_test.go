package mesh

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/ecopia-map/icocloud/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFaces(t *testing.T, lines []string) [][3]int {
	t.Helper()
	var faces [][3]int
	for _, line := range lines {
		if !strings.HasPrefix(line, "f ") {
			continue
		}
		parts := strings.Fields(line)
		require.Len(t, parts, 4)
		var f [3]int
		for i := range f {
			v, err := strconv.Atoi(parts[i+1])
			require.NoError(t, err)
			f[i] = v
		}
		faces = append(faces, f)
	}
	return faces
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func TestWriteTwoMarkers(t *testing.T) {
	var buf bytes.Buffer
	points := []data.Point{data.NewPoint(0, 0, 0), data.NewPoint(1, 2, 3)}

	stats, err := Write(&buf, points, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Stats{Markers: 2, Vertices: 24, Faces: 40, Bytes: int64(buf.Len())}, stats)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, "# OBJ generated from PLY pointcloud", lines[0])
	assert.Equal(t, "# Total spheres: 2", lines[1])
	assert.Equal(t, 24, countPrefix(lines, "v "))
	assert.Equal(t, 40, countPrefix(lines, "f "))

	faces := parseFaces(t, lines)
	for i := 0; i < IcosphereFaces; i++ {
		first, second := faces[i], faces[i+IcosphereFaces]
		for j := range first {
			assert.Equal(t, first[j]+IcosphereVertices, second[j])
			assert.GreaterOrEqual(t, first[j], 1)
			assert.LessOrEqual(t, first[j], 12)
		}
	}
}

func TestWriteGoldenMarker(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, []data.Point{data.NewPoint(1, 2, 3)}, Options{WorldScale: 2, Radius: 0.5, Workers: 1})
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	// (-1, phi, 0) normalized is (-0.525731, 0.850651, 0); center (2, 4, 6)
	assert.Equal(t, "v 1.737134 4.425325 6.000000", lines[2])
	// (1, -phi, 0) becomes (2.262866, 3.574675, 6)
	assert.Equal(t, "v 2.262866 3.574675 6.000000", lines[5])
	assert.Equal(t, "f 1 12 6", lines[14])
	assert.Equal(t, "f 10 9 2", lines[33])
	assert.Equal(t, "", lines[34])
}

func TestWriteDeterministicAcrossWorkers(t *testing.T) {
	points := make([]data.Point, 257)
	for i := range points {
		points[i] = data.NewPoint(float64(i)*0.37, -float64(i), float64(i%11)*1e3)
	}

	var serial bytes.Buffer
	_, err := Write(&serial, points, Options{Workers: 1, ChunkSize: 10})
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8} {
		var parallel bytes.Buffer
		_, err := Write(&parallel, points, Options{Workers: workers, ChunkSize: 7})
		require.NoError(t, err)
		assert.Equal(t, serial.String(), parallel.String(), "workers %d", workers)
	}
}

func TestWriteProgress(t *testing.T) {
	points := make([]data.Point, 25)
	var reports []int
	_, err := Write(&bytes.Buffer{}, points, Options{Workers: 4, ChunkSize: 10, Progress: func(done, total int) {
		assert.Equal(t, 25, total)
		reports = append(reports, done)
	}})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 25}, reports)
}

func TestWriteNoPoints(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Write(&buf, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "# OBJ generated from PLY pointcloud\n# Total spheres: 0\n", buf.String())
	assert.Zero(t, stats.Vertices)
}

type failingWriter struct {
	limit int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if len(p) > f.limit {
		return f.limit, errors.New("disk full")
	}
	f.limit -= len(p)
	return len(p), nil
}

func TestWritePropagatesWriterError(t *testing.T) {
	points := make([]data.Point, 5000)
	_, err := Write(&failingWriter{limit: 4096}, points, Options{Workers: 4, ChunkSize: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
