// Package inspect reads generated documents back and reports their
// paragraph structure, for checking render output without opening Word.
package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// Paragraph is one body paragraph of an inspected document.
type Paragraph struct {
	Style string
	Text  string
}

// File reads the document at path and returns its body paragraphs in order.
func File(path string) ([]Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var paras []Paragraph
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paras = append(paras, Paragraph{
			Style: paragraphStyle(para),
			Text:  paragraphText(para),
		})
	}
	return paras, nil
}

// HeadingLevel reports the outline level encoded in style names such as
// "Heading3". Zero means the style is not a heading.
func HeadingLevel(style string) int {
	const prefix = "Heading"
	if len(style) != len(prefix)+1 || !strings.HasPrefix(style, prefix) {
		return 0
	}
	if d := style[len(prefix)]; d >= '1' && d <= '9' {
		return int(d - '0')
	}
	return 0
}

// Print writes one line per paragraph to w, indenting body text under the
// most recent heading.
func Print(w io.Writer, paras []Paragraph) error {
	depth := 0
	for _, p := range paras {
		indent := depth
		if lvl := HeadingLevel(p.Style); lvl > 0 {
			indent = lvl - 1
			depth = lvl
		}
		style := p.Style
		if style == "" {
			style = "-"
		}
		text := strings.TrimSpace(p.Text)
		if _, err := fmt.Fprintf(w, "%s[%s] %s\n", strings.Repeat("  ", indent), style, text); err != nil {
			return err
		}
	}
	return nil
}

func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}
