// Package source defines the contract this module expects from a binary
// table reader, and is the boundary named in spec.md §1 as an external
// collaborator: "the source-format reader (an external library provides
// keyword lookup, row-byte reads, optimal-chunk-size advice, and column
// metadata)". Production deployments wire in a real binding (e.g. a cgo
// wrapper around the source format's own I/O library); FITSReader in this
// package is a pure-Go reader sufficient to drive the transcoder end to
// end against real files and in tests, not a replacement for that binding.
package source

import (
	"errors"
	"io"
)

// ErrShortRead is returned when a chunk read could not satisfy the
// requested number of row-bytes; spec.md §4.5 requires this to abort the
// current file rather than return partial rows.
var ErrShortRead = errors.New("source: short read")

// ColumnInfo is the per-column metadata spec.md §4.1 requires the
// introspector to obtain: name, element code, repeat count, element byte
// width, and display width, plus the raw TDIM shape string when present
// (empty if the keyword was absent or unparsable).
type ColumnInfo struct {
	Name      string
	Code      byte // the TFORM type code, e.g. 'J', 'D', 'A'
	Repeat    int
	Width     int // bytes per element
	DispWidth int
	Shape     string // raw "(nrows,ncols)" from TDIM<i>, or ""
}

// Table is the open handle the introspector, chunk reader, and
// orchestrator consume. Column indices are 1-based, matching the source
// format's own keyword numbering (TTYPE1, TTYPE2, ...).
type Table interface {
	// NumCols returns the number of columns in the open binary table
	// extension.
	NumCols() int

	// Column returns the metadata for column i (1-based). A column whose
	// optional keywords are missing or malformed still returns a valid
	// ColumnInfo with defaulted fields — per spec.md §4.1, per-column
	// introspection errors are swallowed, not surfaced.
	Column(i int) (ColumnInfo, error)

	// Keyword looks up an arbitrary header keyword's string value.
	Keyword(name string) (string, bool)

	// RowBytes returns the fixed width, in bytes, of one row.
	RowBytes() int

	// NumRows returns the total row count in the extension.
	NumRows() int64

	// OptimalChunkRows advises how many rows should be read per I/O for
	// best throughput; spec.md §4.5 folds this into chunk sizing.
	OptimalChunkRows() int

	// ReadRows reads exactly n rows starting at startRow (0-based) into
	// dst, which must be at least n*RowBytes() bytes. It returns the
	// number of rows actually read; a return less than n without a nil
	// error is a short read and the caller should treat it as
	// ErrShortRead.
	ReadRows(dst []byte, startRow int64, n int) (int, error)

	io.Closer
}

// BigEndian is true for every source table format this module has ever
// seen (the source format's binary table data is always big-endian, like
// network byte order). It is exposed so callers can compute a swap
// decision once, per spec.md §9 ("Endian decisions should be made at
// configuration time").
const BigEndian = true
