package ply

import (
	"encoding/binary"
	"math"
	"strings"
)

// Kind is the numeric type of a scalar property.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt8
	KindUInt8
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindFloat32
	KindFloat64
)

// type names accepted in property declarations, matched case-insensitively
var kindNames = map[string]Kind{
	"char":    KindInt8,
	"int8":    KindInt8,
	"uchar":   KindUInt8,
	"uint8":   KindUInt8,
	"short":   KindInt16,
	"int16":   KindInt16,
	"ushort":  KindUInt16,
	"uint16":  KindUInt16,
	"int":     KindInt32,
	"int32":   KindInt32,
	"uint":    KindUInt32,
	"uint32":  KindUInt32,
	"float":   KindFloat32,
	"float32": KindFloat32,
	"double":  KindFloat64,
	"float64": KindFloat64,
}

// ParseKind resolves a property type name. ok is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindNames[strings.ToLower(name)]
	return k, ok
}

// Width is the byte size of one value of the kind.
func (k Kind) Width() int {
	switch k {
	case KindInt8, KindUInt8:
		return 1
	case KindInt16, KindUInt16:
		return 2
	case KindInt32, KindUInt32, KindFloat32:
		return 4
	case KindFloat64:
		return 8
	}
	return 0
}

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "char"
	case KindUInt8:
		return "uchar"
	case KindInt16:
		return "short"
	case KindUInt16:
		return "ushort"
	case KindInt32:
		return "int"
	case KindUInt32:
		return "uint"
	case KindFloat32:
		return "float"
	case KindFloat64:
		return "double"
	}
	return "invalid"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// valueReader returns a function decoding one value of the kind from the start of b.
func (k Kind) valueReader(order binary.ByteOrder) func(b []byte) float64 {
	switch k {
	case KindInt8:
		return func(b []byte) float64 { return float64(int8(b[0])) }
	case KindUInt8:
		return func(b []byte) float64 { return float64(b[0]) }
	case KindInt16:
		return func(b []byte) float64 { return float64(int16(order.Uint16(b))) }
	case KindUInt16:
		return func(b []byte) float64 { return float64(order.Uint16(b)) }
	case KindInt32:
		return func(b []byte) float64 { return float64(int32(order.Uint32(b))) }
	case KindUInt32:
		return func(b []byte) float64 { return float64(order.Uint32(b)) }
	case KindFloat32:
		return func(b []byte) float64 { return float64(math.Float32frombits(order.Uint32(b))) }
	case KindFloat64:
		return func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }
	}
	return nil
}

// putValue encodes v as the kind at the start of b.
func (k Kind) putValue(order binary.ByteOrder, b []byte, v float64) {
	switch k {
	case KindInt8:
		b[0] = byte(int8(v))
	case KindUInt8:
		b[0] = uint8(v)
	case KindInt16:
		order.PutUint16(b, uint16(int16(v)))
	case KindUInt16:
		order.PutUint16(b, uint16(v))
	case KindInt32:
		order.PutUint32(b, uint32(int32(v)))
	case KindUInt32:
		order.PutUint32(b, uint32(v))
	case KindFloat32:
		order.PutUint32(b, math.Float32bits(float32(v)))
	case KindFloat64:
		order.PutUint64(b, math.Float64bits(v))
	}
}
