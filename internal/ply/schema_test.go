package ply

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSchemaString(t *testing.T, header string, opts ReadOptions) (*Schema, error) {
	t.Helper()
	return ReadSchema(bufio.NewReader(strings.NewReader(header)), opts)
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		name  string
		kind  Kind
		width int
	}{
		{"char", KindInt8, 1},
		{"UCHAR", KindUInt8, 1},
		{"uint8", KindUInt8, 1},
		{"short", KindInt16, 2},
		{"Int16", KindInt16, 2},
		{"ushort", KindUInt16, 2},
		{"int", KindInt32, 4},
		{"uint32", KindUInt32, 4},
		{"Float", KindFloat32, 4},
		{"float32", KindFloat32, 4},
		{"double", KindFloat64, 8},
		{"FLOAT64", KindFloat64, 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := ParseKind(tc.name)
			require.True(t, ok)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.width, kind.Width())
		})
	}

	_, ok := ParseKind("half")
	assert.False(t, ok)
}

func TestReadSchemaFormat(t *testing.T) {
	for _, tc := range []struct {
		format    string
		binary    bool
		bigEndian bool
	}{
		{"ascii", false, false},
		{"binary_little_endian", true, false},
		{"binary_big_endian", true, true},
	} {
		t.Run(tc.format, func(t *testing.T) {
			header := "ply\nformat " + tc.format + " 1.0\nelement vertex 7\nproperty float x\nproperty float y\nproperty float z\nend_header\n"
			schema, err := readSchemaString(t, header, ReadOptions{})
			require.NoError(t, err)
			assert.Equal(t, tc.binary, schema.IsBinary)
			assert.Equal(t, tc.bigEndian, schema.IsBigEndian)
			assert.Equal(t, tc.format, schema.Format)
			assert.Equal(t, "1.0", schema.Version)
			assert.Equal(t, uint64(7), schema.VertexCount)
		})
	}
}

func TestReadSchemaStrideAndOffsets(t *testing.T) {
	header := `ply
format binary_little_endian 1.0
comment scanned by hand
element vertex 2
property uchar red
property double z
property float x
property short y
property float nx
end_header
`
	schema, err := readSchemaString(t, header, ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1+8+4+2+4, schema.Stride)
	assert.Equal(t, []string{"scanned by hand"}, schema.Comments)

	offsets := map[string]int{}
	for _, p := range schema.Properties {
		offsets[p.Name] = p.Offset
	}
	assert.Equal(t, map[string]int{"red": 0, "z": 1, "x": 9, "y": 13, "nx": 15}, offsets)

	assert.Equal(t, "x", schema.Properties[schema.X].Name)
	assert.Equal(t, "y", schema.Properties[schema.Y].Name)
	assert.Equal(t, "z", schema.Properties[schema.Z].Name)
}

func TestReadSchemaListAndUnknownPropertiesSkipped(t *testing.T) {
	header := `ply
format binary_little_endian 1.0
element vertex 1
property float x
property list uchar int neighbours
property float y
property half weight
property float z
element face 3
property list uchar int vertex_indices
property float x
end_header
`
	schema, err := readSchemaString(t, header, ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 12, schema.Stride)
	require.Len(t, schema.Properties, 3)
	require.Len(t, schema.Skipped, 2)
	assert.Equal(t, "neighbours", schema.Skipped[0].Name)
	assert.Equal(t, "weight", schema.Skipped[1].Name)

	require.Len(t, schema.Elements, 2)
	assert.Equal(t, "face", schema.Elements[1].Name)
	assert.True(t, schema.Elements[1].HasList)
}

func TestReadSchemaMissingCoordinate(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nend_header\n1 2\n"
	_, err := readSchemaString(t, header, ReadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCoordinateField))

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "z", fieldErr.Field)
}

func TestReadSchemaCoordinateNamesAreCaseSensitive(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float X\nproperty float y\nproperty float z\nend_header\n"
	_, err := readSchemaString(t, header, ReadOptions{})
	assert.True(t, errors.Is(err, ErrMissingCoordinateField))
}

func TestReadSchemaCoordinateOutsideVertexElement(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nelement normal 1\nproperty float z\nend_header\n"
	_, err := readSchemaString(t, header, ReadOptions{})
	assert.True(t, errors.Is(err, ErrMissingCoordinateField))
}

func TestReadSchemaDuplicateCoordinate(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float x\nproperty float y\nproperty float z\nend_header\n"
	_, err := readSchemaString(t, header, ReadOptions{})
	assert.True(t, errors.Is(err, ErrMissingCoordinateField))
}

func TestReadSchemaHeaderErrors(t *testing.T) {
	for name, header := range map[string]string{
		"no end_header":     "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\n",
		"empty":             "",
		"bad vertex count":  "ply\nformat ascii 1.0\nelement vertex many\nend_header\n",
		"short element":     "ply\nformat ascii 1.0\nelement vertex\nend_header\n",
		"format type":       "ply\nformat\nend_header\n",
		"vertex twice":      "ply\nformat ascii 1.0\nelement vertex 1\nelement vertex 2\nend_header\n",
		"non-ascii comment": "ply\nformat ascii 1.0\ncomment caf\xe9\nelement vertex 0\nproperty float x\nproperty float y\nproperty float z\nend_header\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := readSchemaString(t, header, ReadOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrHeaderDecode), err.Error())
		})
	}
}

func TestReadSchemaLenientHeader(t *testing.T) {
	header := "ply\nformat ascii 1.0\ncomment caf\xe9 scan\nelement vertex 0\nproperty float x\nproperty float y\nproperty float z\nend_header\n"
	schema, err := readSchemaString(t, header, ReadOptions{Lenient: true})
	require.NoError(t, err)
	require.Len(t, schema.Comments, 1)
	assert.True(t, strings.HasPrefix(schema.Comments[0], "caf"))
	assert.True(t, strings.HasSuffix(schema.Comments[0], " scan"))
}

func TestReadSchemaCRLF(t *testing.T) {
	header := "ply\r\nformat ascii 1.0\r\nelement vertex 1\r\nproperty float x\r\nproperty float y\r\nproperty float z\r\nend_header\r\n"
	schema, err := readSchemaString(t, header, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, len(schema.Properties))
}

func TestReadSchemaLeavesReaderAtBody(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n1 2 3\n"))
	_, err := ReadSchema(r, ReadOptions{})
	require.NoError(t, err)

	rest, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", rest)
}
