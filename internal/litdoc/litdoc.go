// Package litdoc generates literate HTML for annotated source files: the
// prose of every comment rendered as one continuous Markdown document, with
// each section's code highlighted and substituted back in beside it. The
// prose runs through Markdown as a single unit so numbered lists spanning
// several comment blocks keep counting.
package litdoc

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Section is one prose/code pair split out of a source file.
type Section struct {
	Docs string
	Code string
}

var (
	commentRe = regexp.MustCompile(`^\s*//\s?`)

	// markdownStartRe matches the prefix of a section's prose that the code
	// placeholder must not disrupt: leading headings and blank lines, then a
	// blockquote mark and a list marker if present on the first content line.
	markdownStartRe = regexp.MustCompile(`^(?:[ \t>]*#.*\n|[ \t>]*\n)*(?:[ \t]*>)?[ \t]*(?:(?:[1-9][0-9]*\.|\*[ ])[ \t]*)?`)

	numberedQuoteRe = regexp.MustCompile(`^> *\d+\.`)
	placeholderRe   = regexp.MustCompile(`\(docweave-code-segment-([0-9]+)\)`)
)

// ParseSections splits source into alternating prose and code sections.
// A comment line opens or continues a section's prose; any other line is
// code. Prose following accumulated code starts a new section, and a
// heading underline inside a comment closes its section immediately.
func ParseSections(src string) []Section {
	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var sections []Section
	var docs, code strings.Builder
	save := func() {
		sections = append(sections, Section{Docs: docs.String(), Code: code.String()})
		docs.Reset()
		code.Reset()
	}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if loc := commentRe.FindStringIndex(line); loc != nil {
			if code.Len() > 0 {
				save()
			}
			docs.WriteString(line[loc[1]:])
			docs.WriteByte('\n')
			if strings.Contains(line, "---") || strings.Contains(line, "===") {
				save()
			}
		} else {
			code.WriteString(line)
			code.WriteByte('\n')
		}
	}
	save()
	return sections
}

// Options configure a Generator.
type Options struct {
	Lexer string // chroma lexer name; empty selects by file name
	Style string // chroma style name; empty uses the fallback style
}

// Generator renders literate pages for source files. Safe for reuse across
// files.
type Generator struct {
	opts  Options
	md    goldmark.Markdown
	hfmt  *chromahtml.Formatter
	style *chroma.Style
}

// New builds a Generator. The prose renderer carries GFM and class-based
// highlighting so fenced blocks inside comments share the stylesheet with
// the code sections.
func New(opts Options) *Generator {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Generator{
		opts:  opts,
		md:    md,
		hfmt:  chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true)),
		style: styles.Get(opts.Style),
	}
}

// Page renders the complete literate HTML page for one source file.
func (g *Generator) Page(filename, source string) (string, error) {
	sections := ParseSections(source)
	lexer := g.lexerFor(filename)

	var docs strings.Builder
	codeHTML := make([]string, len(sections))

	for i, s := range sections {
		loc := markdownStartRe.FindStringIndex(s.Docs)
		left, right := s.Docs[:loc[1]], s.Docs[loc[1]:]
		if right == "" {
			right = "\n"
		}
		text := left + fmt.Sprintf("(docweave-code-segment-%d)", i) + right

		// Separate sections with a blank line, except ahead of a numbered
		// blockquote item, where a blank would restart the list.
		if !numberedQuoteRe.MatchString(text) {
			if strings.HasPrefix(text, ">") {
				text = ">\n" + text
			} else {
				text = "\n" + text
			}
		}
		docs.WriteString(text)

		hl, err := g.highlight(lexer, s.Code)
		if err != nil {
			return "", err
		}
		codeHTML[i] = `<span class="src"><code class="chroma">` + hl + `</code></span>`
	}

	var buf bytes.Buffer
	if err := g.md.Convert([]byte(docs.String()), &buf); err != nil {
		return "", fmt.Errorf("render prose: %w", err)
	}

	body := placeholderRe.ReplaceAllStringFunc(buf.String(), func(m string) string {
		i, _ := strconv.Atoi(placeholderRe.FindStringSubmatch(m)[1])
		return codeHTML[i]
	})

	css, err := g.Stylesheet()
	if err != nil {
		return "", err
	}

	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf(pageTemplate, title, css, body), nil
}

// Stylesheet returns the combined highlight token styles and page layout
// styles shared by every generated page.
func (g *Generator) Stylesheet() (string, error) {
	var buf bytes.Buffer
	if err := g.hfmt.WriteCSS(&buf, g.style); err != nil {
		return "", fmt.Errorf("write styles: %w", err)
	}
	buf.WriteString(baseCSS)
	return buf.String(), nil
}

func (g *Generator) lexerFor(filename string) chroma.Lexer {
	var lexer chroma.Lexer
	if g.opts.Lexer != "" {
		lexer = lexers.Get(g.opts.Lexer)
	} else {
		lexer = lexers.Match(filepath.Base(filename))
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func (g *Generator) highlight(lexer chroma.Lexer, code string) (string, error) {
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise code: %w", err)
	}
	var buf bytes.Buffer
	if err := g.hfmt.Format(&buf, g.style, it); err != nil {
		return "", fmt.Errorf("highlight code: %w", err)
	}
	return buf.String(), nil
}

const pageTemplate = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <style type="text/css">
%s
  </style>
</head>
<body>
%s</body>
</html>
`
