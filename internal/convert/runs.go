package convert

import (
	"strings"

	"github.com/dgallion1/docweave/internal/markup"
)

// normalizeSpace collapses every run of whitespace to a single space.
// Bracket sentinels keep leading and trailing whitespace from being
// trimmed outright; boundary whitespace survives as exactly one space.
func normalizeSpace(s string) string {
	s = strings.Join(strings.Fields("["+s+"]"), " ")
	return s[1 : len(s)-1]
}

// buildRun lowers one piece of text into a run under the given attributes.
// Line break and page break characters become their own segments; empty
// text between breaks is dropped. preserve skips whitespace normalization
// for preformatted content.
func buildRun(text string, attrs Attrs, preserve bool) Run {
	if !preserve {
		text = normalizeSpace(text)
	}
	run := Run{Attrs: attrs}
	for len(text) > 0 {
		i := strings.IndexAny(text, "\n\f")
		if i < 0 {
			run.Segments = append(run.Segments, Segment{Kind: SegText, Text: text})
			break
		}
		if i > 0 {
			run.Segments = append(run.Segments, Segment{Kind: SegText, Text: text[:i]})
		}
		kind := SegLineBreak
		if text[i] == '\f' {
			kind = SegPageBreak
		}
		run.Segments = append(run.Segments, Segment{Kind: kind})
		text = text[i+1:]
	}
	return run
}

// inlineRuns lowers a sequence of inline nodes into runs. An emphasis,
// strong or code node sets its attribute for its whole subtree; text
// following such a node lowers under the enclosing attributes, not the
// node's own.
func inlineRuns(nodes []*markup.Node, attrs Attrs, preserve bool) ([]Run, error) {
	var runs []Run
	for _, n := range nodes {
		switch n.Kind {
		case markup.KindText:
			runs = append(runs, buildRun(n.Text, attrs, preserve))
		case markup.KindEmphasis, markup.KindStrong, markup.KindCode:
			sub := attrs
			switch n.Kind {
			case markup.KindEmphasis:
				sub.Emphasis = true
			case markup.KindStrong:
				sub.Strong = true
			case markup.KindCode:
				sub.Code = true
			}
			nested, err := inlineRuns(n.Children, sub, preserve)
			if err != nil {
				return nil, err
			}
			runs = append(runs, nested...)
		default:
			return nil, structErrf("unrecognized inline node: %s", n.Kind)
		}
	}
	return runs, nil
}

// lowerPara lowers inline content into a single paragraph.
func lowerPara(inline []*markup.Node, style string, list *ListRef, preserve bool) (Paragraph, error) {
	runs, err := inlineRuns(inline, Attrs{}, preserve)
	if err != nil {
		return Paragraph{}, err
	}
	return Paragraph{Runs: runs, Style: style, List: list}, nil
}
