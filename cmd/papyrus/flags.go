package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// errHelp is returned by Parse for -h and --help, after usage is printed.
var errHelp = flag.ErrHelp

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config      string
	historyPath string
	quiet       bool
	verbose     bool
}

// pipelineFlags holds the flags that map onto papyrus.Options.
type pipelineFlags struct {
	noWrapper bool
	bands     bool
	bandText  string
	topMM     int
	bottomMM  int
	pdfCopy   bool
	markdown  bool
	tidy      bool
	theme     string
	assetPath string
}

// outputFlags holds where a rendered page goes.
type outputFlags struct {
	title     string
	output    string
	pdf       string
	noOpen    bool
	timeout   string
	pageSize  string
	landscape bool
	margin    float64
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	pipeline pipelineFlags
	output   outputFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// historyFlags holds flags for the history command.
type historyFlags struct {
	common   commonFlags
	pipeline pipelineFlags
	yes      bool
	json     bool
	noOpen   bool

	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.historyPath, "history", "", "history file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addPipelineFlags adds the render option flags to a FlagSet.
func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.BoolVar(&f.noWrapper, "no-wrapper", false, "do not wrap fragments in the themed page")
	fs.BoolVar(&f.bands, "bands", false, "add repeated print header and footer bands")
	fs.StringVar(&f.bandText, "band-text", "", "print band text (default \"Papyrus\")")
	fs.IntVar(&f.topMM, "top-mm", 0, "header band offset in mm (0-50, default 12)")
	fs.IntVar(&f.bottomMM, "bottom-mm", 0, "footer band offset in mm (0-50, default 12)")
	fs.BoolVar(&f.pdfCopy, "pdf-copy", false, "show escaped HTML source instead of the page")
	fs.BoolVarP(&f.markdown, "markdown", "m", false, "treat input as Markdown")
	fs.BoolVar(&f.tidy, "tidy", false, "balance tags of pasted HTML")
	fs.StringVar(&f.theme, "theme", "", "wrapper theme name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "save to history under this title")
	fs.StringVarP(&f.output, "output", "o", "", "write the page to an HTML file")
	fs.StringVar(&f.pdf, "pdf", "", "export the page to a PDF file (headless Chrome)")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the page in the browser")
	fs.StringVar(&f.timeout, "timeout", "", "PDF export timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.BoolVar(&f.landscape, "landscape", false, "PDF landscape orientation")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0-2, default 0.5)")
}

// buildRenderFlagSet registers every render flag on a new FlagSet.
func buildRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addPipelineFlags(fs, &f.pipeline)
	addOutputFlags(fs, &f.output)
	return fs
}

// buildHistoryFlagSet registers every history flag on a new FlagSet.
func buildHistoryFlagSet(f *historyFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addPipelineFlags(fs, &f.pipeline)
	fs.BoolVarP(&f.yes, "yes", "y", false, "confirm clearing the history")
	fs.BoolVar(&f.json, "json", false, "print entries as JSON")
	fs.BoolVar(&f.noOpen, "no-open", false, "print the rendered page instead of opening it")
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := buildRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = fs.Changed
	return f, fs.Args(), nil
}

// parseHistoryFlags parses history command flags and returns positional args.
func parseHistoryFlags(args []string, stderr io.Writer) (*historyFlags, []string, error) {
	f := &historyFlags{}
	fs := buildHistoryFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHistoryUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = fs.Changed
	return f, fs.Args(), nil
}
