// Package convert lowers a markup tree into a word-processing document
// model: ordered paragraphs of styled runs, plus the list numbering
// definitions minted along the way. The conversion is a pure synchronous
// tree walk; the only mutable state is the caller-supplied Allocator.
package convert

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docweave/internal/markup"
)

// SegmentKind distinguishes the typed pieces of a run.
type SegmentKind int

const (
	SegText SegmentKind = iota
	SegLineBreak
	SegPageBreak
	SegTab
)

// Segment is one typed piece of a run: literal text or a break.
type Segment struct {
	Kind SegmentKind
	Text string // SegText only
}

// Attrs is the inline formatting carried by a run.
type Attrs struct {
	Emphasis bool
	Strong   bool
	Code     bool
}

// Run is the smallest styled unit of output text.
type Run struct {
	Segments []Segment
	Attrs    Attrs
}

// Text returns the concatenation of the run's text segments.
func (r Run) Text() string {
	var b strings.Builder
	for _, s := range r.Segments {
		if s.Kind == SegText {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// ListRef ties a paragraph to a numbering definition and indent level.
type ListRef struct {
	NumID  int
	Indent int
}

// Paragraph is one output paragraph: its runs, an optional named style and
// an optional list reference.
type Paragraph struct {
	Runs  []Run
	Style string
	List  *ListRef
}

// Document is the ordered paragraph sequence produced by one conversion.
type Document struct {
	Paragraphs []Paragraph
}

// StructuralError reports a markup construct the converter cannot lower.
// It is always fatal: conversion stops and no partial document is returned.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return e.Msg }

func structErrf(format string, args ...any) *StructuralError {
	return &StructuralError{Msg: fmt.Sprintf(format, args...)}
}

// Convert lowers the block children of a document root into an ordered
// paragraph sequence, minting numbering definitions through alloc as lists
// are encountered. The returned pairs are in mint order.
func Convert(root *markup.Node, alloc *Allocator) (*Document, []NumberingPair, error) {
	if root.Kind != markup.KindDocument {
		return nil, nil, structErrf("expected a document root, got %s", root.Kind)
	}
	doc := &Document{}
	c := &converter{alloc: alloc}
	if err := c.blocks(doc, root.Children, listState{}); err != nil {
		return nil, nil, err
	}
	return doc, alloc.Minted(), nil
}
