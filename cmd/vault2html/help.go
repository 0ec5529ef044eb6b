package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: vault2html [flags] [<source-dir> [<output-dir>]]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one static HTML page from a vault of Markdown notes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source-dir    Vault directory (default: .)")
	fmt.Fprintln(w, "  output-dir    Output directory (default: output.dir from config, ./dist)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --title <s>           Site title")
	fmt.Fprintln(w, "      --stylesheet <path>   Stylesheet copied next to index.html")
	fmt.Fprintln(w, "      --assets <dir>        Custom templates, styles and scripts")
	fmt.Fprintln(w, "  -w, --workers <n>         Sections rendered in parallel (0 = auto)")
	fmt.Fprintln(w, "      --no-lazy-media       Do not defer image and video loading")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  VAULT2HTML_CONFIG, VAULT2HTML_TITLE, VAULT2HTML_OUTPUT_DIR,")
	fmt.Fprintln(w, "  VAULT2HTML_ASSETS, VAULT2HTML_WORKERS (flags take precedence)")
}
