package convert

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docweave/internal/markup"
)

// Paragraph styles defined by the document template.
const (
	styleNote    = "Note"
	styleBullet  = "BulletNotlast"
	styleOrdered = "Alg4"
	styleCode    = "CodeSample3"
)

// listState carries the numbering context while descending through nested
// lists and blockquotes. level counts every enclosing list and blockquote;
// list items indent at level-1.
type listState struct {
	numID  int
	style  string // item style of the innermost enclosing list
	active bool
	level  int
}

type converter struct {
	alloc *Allocator
}

// blocks converts a sequence of block-level children, appending the
// resulting paragraphs to doc. Whitespace-only text between blocks is
// ignored; any other text is a structural error.
func (c *converter) blocks(doc *Document, nodes []*markup.Node, ls listState) error {
	for _, n := range nodes {
		if n.Kind == markup.KindText {
			if strings.TrimSpace(n.Text) != "" {
				return structErrf("unexpected text %q", n.Text)
			}
			continue
		}
		if err := c.block(doc, n, ls); err != nil {
			return err
		}
	}
	return nil
}

// block converts one block-level node into zero or more paragraphs.
func (c *converter) block(doc *Document, n *markup.Node, ls listState) error {
	switch n.Kind {
	case markup.KindParagraph:
		para, err := lowerPara(n.Children, "", nil, false)
		if err != nil {
			return err
		}
		noteOverride(&para)
		doc.Paragraphs = append(doc.Paragraphs, para)
		return nil

	case markup.KindHeading:
		para, err := lowerPara(n.Children, "Heading"+strconv.Itoa(n.Level), nil, false)
		if err != nil {
			return err
		}
		doc.Paragraphs = append(doc.Paragraphs, para)
		return nil

	case markup.KindBulletList, markup.KindOrderedList:
		return c.list(doc, n, ls)

	case markup.KindListItem:
		return c.item(doc, n, ls)

	case markup.KindBlockquote:
		if ls.level != 0 {
			return structErrf("can't convert a blockquote inside a list")
		}
		ls.level++
		return c.blocks(doc, n.Children, ls)

	case markup.KindPre:
		content := n.Children
		if code := singleCodeChild(n); code != nil {
			content = code.Children
		}
		para, err := lowerPara(content, styleCode, nil, true)
		if err != nil {
			return err
		}
		doc.Paragraphs = append(doc.Paragraphs, para)
		return nil

	case markup.KindRule:
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Runs: []Run{buildRun("\f", Attrs{}, true)},
		})
		return nil

	default:
		return structErrf("unrecognized block node: %s", n.Kind)
	}
}

// list converts one list node. The outermost list of a nesting allocates
// the numbering pair; nested lists reuse it and only deepen the level.
// The item style follows the innermost list's kind.
func (c *converter) list(doc *Document, n *markup.Node, ls listState) error {
	if !ls.active {
		var pair NumberingPair
		if n.Kind == markup.KindOrderedList {
			pair = c.alloc.AllocOrdered()
		} else {
			pair = c.alloc.AllocBullet()
		}
		ls.active = true
		ls.numID = pair.NumID
	}
	if n.Kind == markup.KindOrderedList {
		ls.style = styleOrdered
	} else {
		ls.style = styleBullet
	}
	ls.level++
	return c.blocks(doc, n.Children, ls)
}

// item lowers a list item. The leading inline content becomes one list
// paragraph; block children after it convert as nested content continuing
// the same list context.
func (c *converter) item(doc *Document, n *markup.Node, ls listState) error {
	if !ls.active {
		return structErrf("list item outside a list")
	}

	split := len(n.Children)
	for i, child := range n.Children {
		if !child.Kind.Inline() {
			split = i
			break
		}
	}
	inline, rest := n.Children[:split], n.Children[split:]

	if !hasInlineContent(inline) && len(rest) > 0 {
		return structErrf("list item without leading inline content")
	}

	para, err := lowerPara(inline, ls.style, &ListRef{NumID: ls.numID, Indent: ls.level - 1}, false)
	if err != nil {
		return err
	}
	doc.Paragraphs = append(doc.Paragraphs, para)

	return c.blocks(doc, rest, ls)
}

// hasInlineContent reports whether the nodes carry anything beyond
// whitespace-only text.
func hasInlineContent(nodes []*markup.Node) bool {
	for _, n := range nodes {
		if n.Kind != markup.KindText || strings.TrimSpace(n.Text) != "" {
			return true
		}
	}
	return false
}

// singleCodeChild returns the lone code child of a preformatted node, if
// the node wraps exactly one and nothing else but whitespace.
func singleCodeChild(n *markup.Node) *markup.Node {
	var code *markup.Node
	for _, child := range n.Children {
		if child.Kind == markup.KindText {
			if strings.TrimSpace(child.Text) != "" {
				return nil
			}
			continue
		}
		if child.Kind != markup.KindCode || code != nil {
			return nil
		}
		code = child
	}
	return code
}

// noteOverride rewrites a paragraph whose lowered text opens with "NOTE "
// to the Note style, with a tab after the marker word. Applies only after
// lowering, since it depends on the first run's final text.
func noteOverride(p *Paragraph) {
	if len(p.Runs) == 0 || len(p.Runs[0].Segments) == 0 {
		return
	}
	first := p.Runs[0].Segments[0]
	if first.Kind != SegText || !strings.HasPrefix(first.Text, "NOTE ") {
		return
	}
	rest := strings.TrimPrefix(first.Text, "NOTE ")
	segs := []Segment{{Kind: SegText, Text: "NOTE"}, {Kind: SegTab}}
	if rest != "" {
		segs = append(segs, Segment{Kind: SegText, Text: rest})
	}
	p.Runs[0].Segments = append(segs, p.Runs[0].Segments[1:]...)
	p.Style = styleNote
}
