// Command tab2sql streams one or more binary-table source files out as
// delimited text, IPAC tables, or SQL DDL/bulk-load text, per spec.md.
// Entry-point shape follows sqldef's cmd/<tool>def/<tool>def.go:
// parse flags, build a config, run, fatal on error.
package main

import (
	"log"
	"os"

	"github.com/corvid-labs/tab2sql/internal/cliopts"
	"github.com/corvid-labs/tab2sql/internal/diag"
	"github.com/corvid-labs/tab2sql/internal/source"
	"github.com/corvid-labs/tab2sql/internal/tabcodec"
)

func main() {
	opts, files := cliopts.Parse(os.Args[1:])

	if len(files) == 0 {
		log.Fatal("tab2sql: no source files given")
	}

	// spec.md §7: supplying both --extnum and --extname is a config
	// error, surfaced before any output is produced.
	if opts.ExtNum != 0 && opts.ExtName != "" {
		log.Fatal("tab2sql: --extnum and --extname are mutually exclusive")
	}

	cfg, err := opts.ToConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	diag.Dump("config", cfg)

	logger := diag.Logger(diag.StdoutLogger{})
	if os.Getenv("LOG_LEVEL") == "quiet" {
		logger = diag.NullLogger{}
	}

	// spec.md §7: a non-existent or non-source-format input is skipped
	// with a diagnostic, not a fatal error; the remaining files are
	// still processed.
	tables := make([]source.Table, 0, len(files))
	for _, rawPath := range files {
		// spec.md §6: filename modifiers <path>[ext]/<path>[expr]/<path>[N]
		// are concatenated onto the path before opening; --select is
		// passed through this way rather than interpreted here (row-range
		// filtering beyond the source reader's own handling is a
		// Non-goal).
		path := rawPath
		if opts.Select != "" {
			path += "[" + opts.Select + "]"
		}

		var tbl source.Table
		var openErr error
		if opts.ExtName != "" {
			tbl, openErr = source.OpenNamed(path, opts.ExtName)
		} else {
			tbl, openErr = source.Open(path, opts.ExtNum)
		}
		if openErr != nil {
			logger.Warn("Skipping non-FITS file: " + path + ": " + openErr.Error())
			continue
		}
		if fr, ok := tbl.(*source.FITSReader); ok {
			diag.DumpKeywords(path, fr.Keywords())
		}
		defer tbl.Close()
		tables = append(tables, tbl)
	}
	if len(tables) == 0 {
		log.Fatal("tab2sql: no readable source files given")
	}

	orch := &tabcodec.Orchestrator{
		Cfg:        cfg,
		FirstCol:   opts.FirstCol,
		LastCol:    opts.LastCol,
		Diagnostic: logger.Info,
		Warn:       logger.Warn,
	}

	if err := orch.Run(os.Stdout, tables, opts.Table); err != nil {
		log.Fatal(err)
	}
}
