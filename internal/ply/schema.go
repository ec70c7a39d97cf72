package ply

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	headerMagic    = "ply"
	headerEnd      = "end_header"
	vertexElement  = "vertex"
	listType       = "list"
	formatBinaryLE = "binary_little_endian"
	formatBinaryBE = "binary_big_endian"
)

// Property is a scalar field of the vertex record. Offset is the byte offset of
// the field inside a binary record.
type Property struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"type"`
	Offset int    `json:"offset"`

	// token position inside an ASCII record, or -1 once a list property precedes it
	column int
}

// SkippedProperty is a vertex property declaration that does not take part in the
// record layout: list properties and properties of unknown type.
type SkippedProperty struct {
	Name        string `json:"name"`
	Declaration string `json:"declaration"`
	Reason      string `json:"reason"`
}

// Element is one element block declared in the header.
type Element struct {
	Name       string     `json:"name"`
	Count      uint64     `json:"count"`
	Properties []Property `json:"properties,omitempty"`
	HasList    bool       `json:"has_list,omitempty"`

	// a property of unknown type makes the record width unknown
	unresolved bool

	// declarations seen so far, used for ASCII token positions
	columns   int
	afterList bool
}

func (e Element) stride() int {
	stride := 0
	for _, p := range e.Properties {
		stride += p.Kind.Width()
	}
	return stride
}

// Schema is the vertex record layout resolved from a header. It is built once and
// drives the decoding of every record.
type Schema struct {
	Format      string            `json:"format"`
	Version     string            `json:"version"`
	IsBinary    bool              `json:"binary"`
	IsBigEndian bool              `json:"big_endian"`
	VertexCount uint64            `json:"vertex_count"`
	Properties  []Property        `json:"properties"`
	Skipped     []SkippedProperty `json:"skipped,omitempty"`
	Stride      int               `json:"stride"`
	Elements    []Element         `json:"elements"`
	Comments    []string          `json:"comments,omitempty"`

	// indices into Properties
	X int `json:"x_index"`
	Y int `json:"y_index"`
	Z int `json:"z_index"`

	// records of other elements declared before the vertex element
	leadingRecords uint64
	leadingBytes   int64
	leadingErr     error
}

// ReadOptions tunes the header reader.
type ReadOptions struct {
	// Lenient substitutes non-ASCII header bytes instead of failing.
	Lenient bool
}

var asciiOnly = runes.Map(func(r rune) rune {
	if r > unicode.MaxASCII {
		return '?'
	}
	return r
})

// ReadSchema consumes the header from r up to and including the end_header line and
// resolves the vertex record layout. r is left positioned at the first body byte.
func ReadSchema(r *bufio.Reader, opts ReadOptions) (*Schema, error) {
	lines, err := readHeaderLines(r, opts)
	if err != nil {
		return nil, err
	}

	schema := &Schema{X: -1, Y: -1, Z: -1}
	var current *Element
	inVertex := false
	sawVertex := false

	for i, line := range lines {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		lineNo := i + 1

		switch parts[0] {
		case "format":
			if len(parts) < 2 {
				return nil, &HeaderError{Line: lineNo, Text: line, Reason: "format type missing"}
			}
			schema.Format = parts[1]
			if len(parts) > 2 {
				schema.Version = parts[2]
			}
			schema.IsBinary = strings.Contains(parts[1], formatBinaryLE) || strings.Contains(parts[1], formatBinaryBE)
			schema.IsBigEndian = strings.Contains(parts[1], formatBinaryBE)

		case "comment", "obj_info":
			schema.Comments = append(schema.Comments, strings.TrimSpace(strings.TrimPrefix(line, parts[0])))

		case "element":
			if len(parts) < 3 {
				return nil, &HeaderError{Line: lineNo, Text: line, Reason: "element declaration needs a name and a count"}
			}
			count, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return nil, &HeaderError{Line: lineNo, Text: line, Reason: "invalid element count"}
			}
			if parts[1] == vertexElement {
				if sawVertex {
					return nil, &HeaderError{Line: lineNo, Text: line, Reason: "vertex element declared twice"}
				}
				sawVertex = true
				schema.VertexCount = count
			}
			inVertex = parts[1] == vertexElement
			schema.Elements = append(schema.Elements, Element{Name: parts[1], Count: count})
			current = &schema.Elements[len(schema.Elements)-1]

		case "property":
			if current == nil {
				glog.Warningf("ply: property outside of any element ignored: %q", line)
				continue
			}
			schema.addProperty(current, inVertex, parts, line)
		}
	}

	schema.resolveLayout()
	if err := schema.resolveCoordinates(); err != nil {
		return nil, err
	}
	return schema, nil
}

func (s *Schema) addProperty(element *Element, inVertex bool, parts []string, line string) {
	if len(parts) >= 2 && parts[1] == listType {
		element.HasList = true
		element.afterList = true
		if inVertex {
			name := ""
			if len(parts) >= 5 {
				name = parts[4]
			}
			s.Skipped = append(s.Skipped, SkippedProperty{Name: name, Declaration: line, Reason: "list properties are not supported"})
			glog.Warningf("ply: vertex list property %q skipped, it does not take part in the record stride", name)
		}
		return
	}
	if len(parts) < 3 {
		if !inVertex {
			element.unresolved = true
		} else {
			s.Skipped = append(s.Skipped, SkippedProperty{Declaration: line, Reason: "malformed declaration"})
			glog.Warningf("ply: malformed vertex property skipped: %q", line)
		}
		return
	}

	column := element.columns
	if element.afterList {
		column = -1
	}
	element.columns++

	kind, ok := ParseKind(parts[1])
	if !ok {
		if !inVertex {
			element.unresolved = true
		} else {
			s.Skipped = append(s.Skipped, SkippedProperty{Name: parts[2], Declaration: line, Reason: "unknown type " + parts[1]})
			glog.Warningf("ply: vertex property %q of unknown type %q skipped", parts[2], parts[1])
		}
		return
	}
	element.Properties = append(element.Properties, Property{Name: parts[2], Kind: kind, column: column})
}

// resolveLayout computes the vertex stride, the field offsets and how much body
// precedes the vertex records.
func (s *Schema) resolveLayout() {
	for i := range s.Elements {
		e := &s.Elements[i]
		if e.Name == vertexElement {
			offset := 0
			for j := range e.Properties {
				p := &e.Properties[j]
				p.Offset = offset
				offset += p.Kind.Width()
				s.Properties = append(s.Properties, *p)
				glog.V(1).Infof("ply: vertex property %s %s at offset %d", p.Kind, p.Name, p.Offset)
			}
			s.Stride = offset
			return
		}

		s.leadingRecords += e.Count
		if !s.IsBinary || s.leadingErr != nil {
			continue
		}
		if (e.HasList || e.unresolved) && e.Count > 0 {
			s.leadingErr = errors.Wrapf(ErrUnsupportedLayout, "element %q of unknown record width precedes the vertex element", e.Name)
			continue
		}
		stride := uint64(e.stride())
		if stride > 0 && e.Count > (math.MaxInt64-uint64(s.leadingBytes))/stride {
			s.leadingErr = errors.Wrapf(ErrUnsupportedLayout, "element %q of %d records is too large to skip", e.Name, e.Count)
			continue
		}
		s.leadingBytes += int64(e.Count * stride)
	}
}

func (s *Schema) resolveCoordinates() error {
	for _, field := range []struct {
		name  string
		index *int
	}{{"x", &s.X}, {"y", &s.Y}, {"z", &s.Z}} {
		for i, p := range s.Properties {
			if p.Name != field.name {
				continue
			}
			if *field.index >= 0 {
				return &FieldError{Field: field.name, Reason: "is declared more than once"}
			}
			*field.index = i
		}
		if *field.index < 0 {
			return &FieldError{Field: field.name, Reason: "is not a scalar property of the vertex element"}
		}
	}
	return nil
}

func readHeaderLines(r *bufio.Reader, opts ReadOptions) ([]string, error) {
	var lines []string
	for lineNo := 1; ; lineNo++ {
		raw, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "reading header")
		}
		if err == io.EOF && len(raw) == 0 {
			return nil, &HeaderError{Reason: "end of input before " + headerEnd}
		}

		line, decodeErr := decodeHeaderLine(raw, opts.Lenient)
		if decodeErr != nil {
			return nil, &HeaderError{Line: lineNo, Text: strings.ToValidUTF8(string(raw), "?"), Reason: decodeErr.Error()}
		}
		line = strings.TrimSpace(line)

		if lineNo == 1 && line != headerMagic {
			glog.Warningf("ply: header does not start with %q", headerMagic)
		}
		if line == headerEnd {
			return lines, nil
		}
		lines = append(lines, line)

		if err == io.EOF {
			return nil, &HeaderError{Reason: "end of input before " + headerEnd}
		}
	}
}

func decodeHeaderLine(raw []byte, lenient bool) (string, error) {
	for _, b := range raw {
		if b > unicode.MaxASCII {
			if !lenient {
				return "", errors.Errorf("non-ASCII byte 0x%02x", b)
			}
			s, _, err := transform.String(asciiOnly, string(raw))
			return s, err
		}
	}
	return string(raw), nil
}
