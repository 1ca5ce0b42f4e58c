// Package diag is the run-level diagnostic sink: the per-file progress
// and row-count summaries spec.md §4.9 calls for, plus sqldef's own
// notion of a pluggable Logger (database/logger.go's StdoutLogger/
// NullLogger pair) generalized from "print each DDL statement as it's
// applied" to "print each file/row-count line as it streams".
package diag

import (
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/corvid-labs/tab2sql/util"
)

// Logger receives progress lines during a run. StdoutLogger and
// NullLogger mirror sqldef's own two implementations, carried over
// unchanged in shape: one prints, one discards.
type Logger interface {
	Info(msg string)
	Warn(msg string)
}

// StdoutLogger is named for its sqldef ancestor (database/logger.go
// prints DDL progress straight to the terminal's stdout). tab2sql's
// stdout instead carries the bulk output stream meant to be piped into
// a database client, so both Info and Warn here write to stderr — the
// one stream this process never uses for table data.
type StdoutLogger struct{}

func (StdoutLogger) Info(msg string) { fmt.Fprintln(os.Stderr, msg) }
func (StdoutLogger) Warn(msg string) { fmt.Fprintln(os.Stderr, "warning: "+msg) }

type NullLogger struct{}

func (NullLogger) Info(string) {}
func (NullLogger) Warn(string) {}

// SlogLogger routes progress lines through log/slog instead of direct
// stdout/stderr writes, for callers that want structured, LOG_LEVEL-
// filterable output (util.InitSlog wires the level from the
// environment the same way sqldef's CLI entry point does).
type SlogLogger struct{}

func (SlogLogger) Info(msg string) { slog.Info(msg) }
func (SlogLogger) Warn(msg string) { slog.Warn(msg) }

func init() {
	util.InitSlog()
}

// Dump pretty-prints v via k0kubun/pp, gated on LOG_LEVEL=debug — the
// same pp library sqldef reaches for when tracing a parsed schema tree
// (database/mysql/parser.go's pp.Println), here pointed at a Config or
// Plan. Written with pp.Fprintln to stderr rather than pp.Println's
// default stdout, since stdout carries the bulk output stream.
func Dump(label string, v any) {
	if os.Getenv("LOG_LEVEL") != "debug" {
		return
	}
	pp.Fprintln(os.Stderr, label, v)
}

// DumpKeywords prints one file's header keywords, one "path: KEY = value"
// line per card, gated on the same LOG_LEVEL=debug switch as Dump.
// keywords is expected to come from a deterministic source
// (source.FITSReader.Keywords, backed by util.CanonicalMapIter) so two
// runs against the same file print identical output.
func DumpKeywords(path string, keywords iter.Seq2[string, string]) {
	if os.Getenv("LOG_LEVEL") != "debug" {
		return
	}
	for k, v := range keywords {
		fmt.Fprintf(os.Stderr, "%s: %s = %s\n", path, k, v)
	}
}
