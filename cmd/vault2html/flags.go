package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every command line flag.
type cliFlags struct {
	config      string
	title       string
	stylesheet  string
	assets      string
	workers     int
	noLazyMedia bool
	verbose     bool
	quiet       bool
	version     bool
	printConfig bool
}

// parseFlags parses args (without the program name) and returns the
// positional arguments. Usage goes to stderr on -h or a parse error.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("vault2html", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.title, "title", "", "site title")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "stylesheet copied next to index.html")
	fs.StringVar(&f.assets, "assets", "", "custom asset directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "sections rendered in parallel (0 = auto)")
	fs.BoolVar(&f.noLazyMedia, "no-lazy-media", false, "do not defer image and video loading")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
