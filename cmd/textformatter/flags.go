package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// templateFlags holds page template flags.
type templateFlags struct {
	name string
	dir  string
}

// metadataFlags holds metadata default and override flags.
type metadataFlags struct {
	file string
	set  map[string]string
}

// pdfFlags holds PDF output flags.
type pdfFlags struct {
	enabled bool
	timeout string
}

// convertFlags holds all flags of the convert command.
type convertFlags struct {
	input    string
	output   string
	workers  int
	common   commonFlags
	template templateFlags
	metadata metadataFlags
	pdf      pdfFlags
}

// addCommonFlags adds shared flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline stages")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.name, "template", "t", "", "template file or built-in name")
	fs.StringVar(&f.dir, "template-dir", "", "directory with templates/{name}.html overrides")
}

// addMetadataFlags adds metadata flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVarP(&f.file, "metadata-file", "m", "", "YAML file of default metadata")
	fs.StringToStringVarP(&f.set, "set", "s", nil, "metadata override key=value (repeatable)")
}

// addPDFFlags adds PDF flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also render a PDF next to the HTML output")
	fs.StringVar(&f.timeout, "timeout", "", "PDF generation timeout (default 30s)")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to usageOut on -h or a parse error.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.input, "input", "i", "", "input file or directory (default input.txt)")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default output.html)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.template)
	addMetadataFlags(fs, &f.metadata)
	addPDFFlags(fs, &f.pdf)

	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
