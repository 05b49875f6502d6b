package markup

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseMarkdown parses Markdown source into a markup tree rooted at a
// document node.
func ParseMarkdown(src []byte) (*Node, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))
	return fromMarkdown(root, src)
}

// fromMarkdown maps one goldmark AST node onto the closed vocabulary.
func fromMarkdown(n ast.Node, src []byte) (*Node, error) {
	switch node := n.(type) {
	case *ast.Document:
		return mapContainer(KindDocument, n, src)

	case *ast.Paragraph, *ast.TextBlock:
		return mapContainer(KindParagraph, n, src)

	case *ast.Heading:
		h, err := mapContainer(KindHeading, n, src)
		if err != nil {
			return nil, err
		}
		h.Level = node.Level
		return h, nil

	case *ast.List:
		kind := KindBulletList
		if node.IsOrdered() {
			kind = KindOrderedList
		}
		return mapContainer(kind, n, src)

	case *ast.ListItem:
		return mapListItem(n, src)

	case *ast.Blockquote:
		return mapContainer(KindBlockquote, n, src)

	case *ast.FencedCodeBlock:
		return wrapCodeBlock(string(node.Lines().Value(src))), nil

	case *ast.CodeBlock:
		return wrapCodeBlock(string(node.Lines().Value(src))), nil

	case *ast.ThematicBreak:
		return &Node{Kind: KindRule}, nil

	case *ast.Emphasis:
		kind := KindEmphasis
		if node.Level == 2 {
			kind = KindStrong
		} else if node.Level != 1 {
			return nil, &UnsupportedError{Construct: n.Kind().String()}
		}
		return mapContainer(kind, n, src)

	case *ast.CodeSpan:
		var buf strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Value(src))
			}
		}
		code := &Node{Kind: KindCode}
		if buf.Len() > 0 {
			code.Children = []*Node{{Kind: KindText, Text: buf.String()}}
		}
		return code, nil

	default:
		return nil, &UnsupportedError{Construct: n.Kind().String()}
	}
}

// mapContainer maps a goldmark node's children under the given kind.
func mapContainer(kind Kind, n ast.Node, src []byte) (*Node, error) {
	children, err := mapChildren(n, src)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: kind, Children: children}, nil
}

// mapChildren maps the children of a goldmark node, merging adjacent text
// segments and line breaks into single text nodes.
func mapChildren(n ast.Node, src []byte) ([]*Node, error) {
	var out []*Node
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, &Node{Kind: KindText, Text: buf.String()})
			buf.Reset()
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		flush()
		child, err := fromMarkdown(c, src)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	flush()
	return out, nil
}

// mapListItem maps a list item. Tight items carry their inline content in a
// text block, which splices directly into the item; any other child (a
// nested list, a loose paragraph) stays a block child.
func mapListItem(n ast.Node, src []byte) (*Node, error) {
	item := &Node{Kind: KindListItem}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.TextBlock); ok {
			inner, err := mapChildren(c, src)
			if err != nil {
				return nil, err
			}
			item.Children = append(item.Children, inner...)
			continue
		}
		child, err := fromMarkdown(c, src)
		if err != nil {
			return nil, err
		}
		item.Children = append(item.Children, child)
	}
	return item, nil
}

func wrapCodeBlock(content string) *Node {
	code := &Node{Kind: KindCode}
	if content != "" {
		code.Children = []*Node{{Kind: KindText, Text: content}}
	}
	return &Node{Kind: KindPre, Children: []*Node{code}}
}
