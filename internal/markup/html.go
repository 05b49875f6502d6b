package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// ParseHTML parses an HTML page or fragment into a markup tree. Only the
// tags with a place in the closed vocabulary are accepted; anything else
// is an UnsupportedError.
func ParseHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}
	children, err := htmlChildren(body)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindDocument, Children: children}, nil
}

// htmlChildren maps the child nodes of an HTML element. Text nodes are kept
// verbatim, whitespace included; the converter decides where text is
// allowed.
func htmlChildren(n *html.Node) ([]*Node, error) {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			out = append(out, &Node{Kind: KindText, Text: c.Data})
		case html.ElementNode:
			child, err := fromHTML(c)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		default:
			// Comments and doctype nodes carry no content.
		}
	}
	return out, nil
}

// fromHTML maps one HTML element onto the closed vocabulary.
func fromHTML(n *html.Node) (*Node, error) {
	var kind Kind
	level := 0
	switch n.Data {
	case "p":
		kind = KindParagraph
	case "h1", "h2", "h3", "h4", "h5", "h6":
		kind = KindHeading
		level = int(n.Data[1] - '0')
	case "ul":
		kind = KindBulletList
	case "ol":
		kind = KindOrderedList
	case "li":
		kind = KindListItem
	case "blockquote":
		kind = KindBlockquote
	case "pre":
		kind = KindPre
	case "code":
		kind = KindCode
	case "em":
		kind = KindEmphasis
	case "strong":
		kind = KindStrong
	case "hr":
		return &Node{Kind: KindRule}, nil
	default:
		return nil, &UnsupportedError{Construct: "<" + n.Data + ">"}
	}

	children, err := htmlChildren(n)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: kind, Level: level, Children: children}, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
