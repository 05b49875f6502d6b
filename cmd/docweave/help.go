package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docweave <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render annotated sources or markup files to .docx")
	fmt.Fprintln(w, "  docs       Generate literate HTML pages for source files")
	fmt.Fprintln(w, "  inspect    Print the paragraph outline of a .docx file")
	fmt.Fprintln(w, "  serve      Serve the generated docs directory over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fmt.Fprintln(w, "  -q, --quiet   Log warnings and errors only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings come from docweave.yaml, DOCWEAVE_* environment variables")
	fmt.Fprintln(w, "and flags, in rising order of precedence.")
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docweave render [flags] <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each input into a .docx built on the template package.")
	fmt.Fprintln(w, "Files named *.md or *.html are rendered whole; anything else has")
	fmt.Fprintln(w, "its annotation lines extracted first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>            Project file (default docweave.yaml)")
	fmt.Fprintln(w, "  -t, --template <path>          Template .docx package")
	fmt.Fprintln(w, "  -o, --output <dir>             Output directory")
	fmt.Fprintln(w, "      --format <s>               Frontend for annotated sources: markdown, html")
	fmt.Fprintln(w, "      --marker <s>               Annotation marker (default //>)")
	fmt.Fprintln(w, "      --bullet-abstract-id <n>   Abstract id of the template's bullet definition")
	fmt.Fprintln(w, "  -w, --workers <n>              Concurrent renders")
}

func printDocsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docweave docs [flags] <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one literate HTML page per source file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>   Project file (default docweave.yaml)")
	fmt.Fprintln(w, "  -o, --output <dir>    Output directory")
	fmt.Fprintln(w, "      --lexer <s>       Highlight lexer, empty selects by file name")
	fmt.Fprintln(w, "      --style <s>       Highlight style")
}

func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docweave inspect <file.docx>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print one line per body paragraph: style and text, indented under")
	fmt.Fprintln(w, "headings.")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docweave serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the generated docs directory with an index page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>   Project file (default docweave.yaml)")
	fmt.Fprintln(w, "  -p, --port <n>        Listen port (default 8090)")
	fmt.Fprintln(w, "  -d, --docs <dir>      Docs directory to serve")
}
