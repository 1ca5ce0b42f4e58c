// Package tabcodec is the row-stream transcoder: spec.md §1 names it
// "the core", and it is the direct generalization of sqldef's
// DDL-generation pipeline (schema/generator.go's Table/Column
// model, adapter/<dialect>'s per-database text rendering) from "diff an
// existing schema against a desired one" to "stream rows of a source
// table through per-format value encoders".
package tabcodec

import (
	"fmt"

	"github.com/corvid-labs/tab2sql/util"
)

// ElementType is the closed set of column element types spec.md §3
// names. Bit/Complex/DblComplex are carried as named constants so the
// dispatch table can report "unsupported" explicitly (spec.md §7)
// rather than panicking on an unrecognized value.
type ElementType int

const (
	TypeString ElementType = iota
	TypeLogical
	TypeByte
	TypeSByte
	TypeShort
	TypeUShort
	TypeInt
	TypeUInt
	TypeLongLong
	TypeFloat
	TypeDouble
	TypeBit
	TypeComplex
	TypeDblComplex
)

func (t ElementType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeLogical:
		return "LOGICAL"
	case TypeByte:
		return "BYTE"
	case TypeSByte:
		return "SBYTE"
	case TypeShort:
		return "SHORT"
	case TypeUShort:
		return "USHORT"
	case TypeInt:
		return "INT"
	case TypeUInt:
		return "UINT"
	case TypeLongLong:
		return "LONGLONG"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeBit:
		return "BIT"
	case TypeComplex:
		return "COMPLEX"
	case TypeDblComplex:
		return "DBLCOMPLEX"
	}
	return "UNKNOWN"
}

// Unsupported reports the reserved-but-unimplemented types spec.md §1's
// Non-goals name (bit fields, single/double complex columns).
func (t ElementType) Unsupported() bool {
	return t == TypeBit || t == TypeComplex || t == TypeDblComplex
}

// typeFromCode maps a source-format TFORM element code to ElementType,
// per spec.md §2.1 / original_source/fits2db.c's own case list.
func typeFromCode(code byte) (ElementType, error) {
	switch code {
	case 'A':
		return TypeString, nil
	case 'L':
		return TypeLogical, nil
	case 'B':
		return TypeByte, nil
	case 'S':
		return TypeSByte, nil
	case 'I':
		return TypeShort, nil
	case 'U':
		return TypeUShort, nil
	case 'J':
		return TypeInt, nil
	case 'V':
		return TypeUInt, nil
	case 'K':
		return TypeLongLong, nil
	case 'E':
		return TypeFloat, nil
	case 'D':
		return TypeDouble, nil
	case 'X':
		return TypeBit, nil
	case 'C':
		return TypeComplex, nil
	case 'M':
		return TypeDblComplex, nil
	}
	return TypeString, fmt.Errorf("tabcodec: unknown element type code %q", code)
}

// Column is the column descriptor spec.md §3 defines. Invariants:
// Repeat == NRows*NCols; scalar columns have Repeat==NRows==NCols==1.
type Column struct {
	ColNum    int // 1-based
	DispWidth int
	Type      ElementType
	Width     int // bytes per element
	Repeat    int
	NDim      int // 1 or 2
	NRows     int
	NCols     int
	ColName   string // <=31 chars
	ColType   string // display type label, filled by the type mapper
}

// IsArray reports whether this column carries more than one element per
// row (spec.md §4.2/§4.6 branch on this for explosion and array framing).
func (c Column) IsArray() bool {
	return c.Type != TypeString && c.Repeat > 1
}

// Vector is an ordered sequence of column descriptors — spec.md §3's
// "input column vector" / "output column vector".
type Vector []Column

func (v Vector) Names() []string {
	return util.TransformSlice(v, func(c Column) string { return c.ColName })
}
