// Package markup defines the closed node vocabulary the converter accepts
// and the frontends that build trees from Markdown or HTML input.
package markup

import "fmt"

// Kind identifies one node variant in the closed markup vocabulary.
type Kind int

const (
	KindText Kind = iota
	KindDocument
	KindParagraph
	KindHeading
	KindBulletList
	KindOrderedList
	KindListItem
	KindBlockquote
	KindPre
	KindCode
	KindEmphasis
	KindStrong
	KindRule
)

var kindNames = [...]string{
	KindText:        "text",
	KindDocument:    "document",
	KindParagraph:   "paragraph",
	KindHeading:     "heading",
	KindBulletList:  "bullet list",
	KindOrderedList: "ordered list",
	KindListItem:    "list item",
	KindBlockquote:  "blockquote",
	KindPre:         "preformatted",
	KindCode:        "code",
	KindEmphasis:    "emphasis",
	KindStrong:      "strong",
	KindRule:        "rule",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Inline reports whether the kind may appear inside paragraph content.
func (k Kind) Inline() bool {
	switch k {
	case KindText, KindEmphasis, KindStrong, KindCode:
		return true
	}
	return false
}

// Node is one node of a parsed markup tree.
type Node struct {
	Kind     Kind
	Text     string  // KindText only
	Level    int     // KindHeading only, 1-6
	Children []*Node
}

// UnsupportedError reports a construct outside the closed vocabulary,
// caught while building a tree from parsed input.
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported markup construct: %s", e.Construct)
}
