// Package cliopts parses the command line per spec.md §6, grounded on
// sqldef's own cmd/<tool>def/<tool>def.go: a single anonymous
// go-flags struct, an explicit flags.NewParser/ParseArgs call, --help/
// --version handled the same way, and the parsed flags then mapped into
// a domain Config rather than consumed directly by the rest of the
// program.
package cliopts

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v2"

	"github.com/corvid-labs/tab2sql/internal/tabcodec"
)

var version = "dev"

// Options is the raw flag struct spec.md §6's CLI surface maps onto.
type Options struct {
	Format string `long:"format" description:"output format: csv, tsv, asv, bsv, ipac, postgres, mysql, sqlite" value-name:"fmt" default:"csv"`
	Binary bool   `long:"binary" description:"emit Postgres binary COPY instead of text (postgres format only)"`

	Delimiter string `long:"delimiter" description:"field delimiter for delimited output" value-name:"char"`
	Quote     string `long:"quote" description:"quote character for delimited output" value-name:"char" default:"\""`
	Header    bool   `long:"header" description:"emit a header row (delimited format only)"`
	Strip     bool   `long:"strip" description:"trim leading and trailing whitespace from string fields"`
	NoQuote   bool   `long:"no-quote-strings" description:"don't quote string fields in delimited output"`
	Escape    bool   `long:"escape-quotes" description:"backslash-escape embedded quotes instead of doubling them"`

	Explode bool `long:"explode" description:"explode array columns into one scalar output column per element"`
	Concat  bool `long:"concat" description:"treat all input files as one logical stream sharing a single header/preamble"`

	BundleSize int `long:"bundle-size" description:"rows per INSERT statement for mysql/sqlite" value-name:"n" default:"1000"`
	ChunkRows  int `long:"chunk-rows" description:"rows read per I/O chunk, capped by the source's own hint" value-name:"n" default:"10000"`

	Create   bool `long:"create" description:"emit CREATE TABLE (and CREATE DATABASE, DROP TABLE) DDL"`
	Drop     bool `long:"drop" description:"emit DROP TABLE before CREATE TABLE"`
	Truncate bool `long:"truncate" description:"emit TRUNCATE TABLE after CREATE TABLE"`
	OIDs     bool `long:"with-oids" description:"add WITH OIDS to the Postgres CREATE TABLE"`
	NoLoad   bool `long:"noload" description:"emit DDL only; skip the bulk-load body entirely"`

	Table    string `short:"t" long:"table" description:"destination table name" value-name:"name" default:"t"`
	DBName   string `long:"dbname" description:"database name for CREATE DATABASE (mysql/postgres)" value-name:"name"`
	FirstCol int    `long:"first-col" description:"1-based index of the first input column to emit" value-name:"n" default:"1"`
	LastCol  int    `long:"last-col" description:"1-based index of the last input column to emit; 0 means all" value-name:"n"`

	ExtNum  int    `long:"extnum" description:"1-based extension number to read (0 means first binary table found); mutually exclusive with --extname" value-name:"n"`
	ExtName string `long:"extname" description:"named extension to read; mutually exclusive with --extnum" value-name:"name"`
	Select  string `long:"select" description:"row-selection expression, passed through to the source reader as a filename modifier" value-name:"expr"`

	AddCol   string `long:"add-col" description:"name of an appended constant-value column" value-name:"name"`
	AddValue string `long:"add-value" description:"value for --add-col" value-name:"value"`
	SIDCol   string `long:"sid-col" description:"name of an appended monotonic serial-id column" value-name:"name"`
	SIDStart int64  `long:"sid-start" description:"first value for --sid-col" value-name:"n" default:"1"`
	RIDCol   string `long:"rid-col" description:"name of an appended random-id column" value-name:"name"`
	RIDSeed  int64  `long:"rid-seed" description:"random seed for --rid-col" value-name:"n" default:"1"`

	SingleRowInsert bool `long:"single-row-insert" description:"give every row its own INSERT statement (mysql/sqlite)"`
	ValidateDDL     bool `long:"validate-ddl" description:"best-effort syntax-check generated Postgres DDL via pg_query_go"`

	Config string `long:"config" description:"load defaults from a YAML batch config file, overridden by any flag also given" value-name:"path"`

	Help    bool `long:"help" description:"show this help"`
	Version bool `long:"version" description:"show this version"`
}

// Parse parses args (normally os.Args[1:]) into an Options and the
// remaining positional source-file arguments.
func Parse(args []string) (*Options, []string) {
	var opts Options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...] file..."
	rest, err := parser.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	if opts.Config != "" {
		if err := applyConfigFile(&opts, opts.Config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	return &opts, rest
}

// applyConfigFile loads YAML batch defaults (SPEC_FULL.md's ambient
// config-layer supplement) and, through mergeZero, fills in format,
// delimiter, table, dbname, add-col/add-value, sid-col and rid-col where
// the command line left them at their defaults. Other fields in the file
// are ignored.
func applyConfigFile(opts *Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cliopts: reading config file: %w", err)
	}
	var fileOpts Options
	if err := yaml.Unmarshal(data, &fileOpts); err != nil {
		return fmt.Errorf("cliopts: parsing config file: %w", err)
	}
	mergeZero(opts, &fileOpts)
	return nil
}

func mergeZero(dst, src *Options) {
	if dst.Format == "csv" && src.Format != "" {
		dst.Format = src.Format
	}
	if dst.Delimiter == "" {
		dst.Delimiter = src.Delimiter
	}
	if dst.Table == "t" && src.Table != "" {
		dst.Table = src.Table
	}
	if dst.DBName == "" {
		dst.DBName = src.DBName
	}
	if dst.AddCol == "" {
		dst.AddCol = src.AddCol
		dst.AddValue = src.AddValue
	}
	if dst.SIDCol == "" {
		dst.SIDCol = src.SIDCol
	}
	if dst.RIDCol == "" {
		dst.RIDCol = src.RIDCol
	}
}

// formatNames maps the --format flag's value to tabcodec.Format and, for
// the delimited variants, the single-byte delimiter that name implies.
var formatNames = map[string]struct {
	format tabcodec.Format
	delim  byte
}{
	"csv":      {tabcodec.FormatDelimited, ','},
	"tsv":      {tabcodec.FormatDelimited, '\t'},
	"asv":      {tabcodec.FormatDelimited, 0x1f},
	"bsv":      {tabcodec.FormatDelimited, '|'},
	"ipac":     {tabcodec.FormatIPAC, 0},
	"postgres": {tabcodec.FormatPostgres, 0},
	"mysql":    {tabcodec.FormatMySQL, 0},
	"sqlite":   {tabcodec.FormatSQLite, 0},
}

// ToConfig builds a tabcodec.Config from parsed Options, per spec.md §6's
// flag-to-config mapping.
func (o *Options) ToConfig() (tabcodec.Config, error) {
	fn, ok := formatNames[o.Format]
	if !ok {
		return tabcodec.Config{}, fmt.Errorf("cliopts: unknown --format %q", o.Format)
	}

	delim := fn.delim
	if o.Delimiter != "" {
		delim = o.Delimiter[0]
	}
	quote := byte('"')
	if o.Quote != "" {
		quote = o.Quote[0]
	}

	cfg := tabcodec.Config{
		Format:              fn.format,
		Binary:              o.Binary,
		Delimiter:           delim,
		QuoteChar:           quote,
		Header:              o.Header,
		Strip:               o.Strip,
		QuoteStrings:        !o.NoQuote,
		Escape:              o.Escape,
		Explode:             o.Explode,
		Concat:              o.Concat,
		BundleSize:          o.BundleSize,
		ChunkRows:           o.ChunkRows,
		Create:              o.Create,
		Drop:                o.Drop,
		Truncate:            o.Truncate,
		OIDs:                o.OIDs,
		Load:                !o.NoLoad,
		TableName:           o.Table,
		DBName:              o.DBName,
		AddCol:              o.AddCol,
		AddValue:            o.AddValue,
		SIDCol:              o.SIDCol,
		SIDStart:            o.SIDStart,
		RIDCol:              o.RIDCol,
		RIDSeed:             o.RIDSeed,
		SingleRowInsert:     o.SingleRowInsert,
		ValidatePostgresDDL: o.ValidateDDL,
	}
	return cfg, nil
}
