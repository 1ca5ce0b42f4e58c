package tabcodec

import "fmt"

// sqlLabel and textLabel implement the type-mapper table of spec.md
// §4.3.
func sqlLabel(t ElementType) string {
	switch t {
	case TypeString:
		return "char" // repeat==1 case; caller overrides to "text" otherwise
	case TypeLogical, TypeByte, TypeSByte, TypeShort, TypeUShort:
		return "smallint"
	case TypeInt, TypeUInt:
		return "integer"
	case TypeLongLong:
		return "bigint"
	case TypeFloat:
		return "real"
	case TypeDouble:
		return "double precision"
	}
	return "text"
}

func textLabel(t ElementType) string {
	switch t {
	case TypeString:
		return "char"
	case TypeLogical, TypeByte, TypeSByte, TypeShort, TypeUShort, TypeInt, TypeUInt, TypeLongLong:
		return "int"
	case TypeFloat:
		return "real"
	case TypeDouble:
		return "double"
	}
	return "char"
}

// ColType fills Column.ColType per spec.md §4.3, including the
// non-exploded array Postgres-array-notation case and the
// string-repeat-1-vs-text distinction.
func ColType(c Column, format Format, exploded bool) string {
	if format == FormatIPAC {
		return textLabel(c.Type)
	}

	if c.Type == TypeString {
		if c.Repeat == 1 {
			return "char"
		}
		return "text"
	}

	label := sqlLabel(c.Type)
	if !exploded && c.Repeat > 1 {
		return fmt.Sprintf("%s[%d]", label, c.Repeat)
	}
	return label
}
