package tabcodec

import "errors"

// ErrSchemaMismatch describes the condition Orchestrator.Run recovers
// from, rather than returning, when --concat is set and a later source
// file's introspected schema isn't equivalent to the first file's: per
// spec.md §4.8/§7 the file is skipped with a diagnostic and the run
// continues. Exported so callers and tests can name the condition.
var ErrSchemaMismatch = errors.New("tabcodec: concatenated file schema mismatch")

// ErrUnsupportedType names the condition of a column whose element type
// falls in spec.md §1's Non-goals (bit fields, complex, double complex).
// Nothing in this package returns it: such cells are counted in
// RowDriver.UnsupportedCount and reported once per file through
// Orchestrator.Warn.
var ErrUnsupportedType = errors.New("tabcodec: unsupported column element type")
