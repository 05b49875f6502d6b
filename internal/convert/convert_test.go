package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docweave/internal/markup"
)

// testAllocator seeds an empty catalog whose shared bullet definition is
// abstract 99.
func testAllocator() *Allocator {
	return NewAllocator(0, 0, 99)
}

func mustConvertMarkdown(t *testing.T, src string, alloc *Allocator) (*Document, []NumberingPair) {
	t.Helper()
	root, err := markup.ParseMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc, pairs, err := Convert(root, alloc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return doc, pairs
}

func paraText(t *testing.T, p Paragraph) string {
	t.Helper()
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text())
	}
	return b.String()
}

func TestConvert_ParagraphCollapsesWhitespace(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "hello   world\nagain\n", testAllocator())
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Paragraphs))
	}
	p := doc.Paragraphs[0]
	if p.Style != "" {
		t.Errorf("expected no style, got %q", p.Style)
	}
	if got := paraText(t, p); got != "hello world again" {
		t.Errorf("expected %q, got %q", "hello world again", got)
	}
}

func TestConvert_HeadingStyles(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "# One\n\n###### Six\n", testAllocator())
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Paragraphs))
	}
	if doc.Paragraphs[0].Style != "Heading1" {
		t.Errorf("expected style Heading1, got %q", doc.Paragraphs[0].Style)
	}
	if doc.Paragraphs[1].Style != "Heading6" {
		t.Errorf("expected style Heading6, got %q", doc.Paragraphs[1].Style)
	}
}

func TestConvert_BulletItem(t *testing.T) {
	doc, pairs := mustConvertMarkdown(t, "- hello\n", testAllocator())
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Paragraphs))
	}
	p := doc.Paragraphs[0]
	if p.Style != "BulletNotlast" {
		t.Errorf("expected style BulletNotlast, got %q", p.Style)
	}
	if p.List == nil {
		t.Fatal("expected a list reference")
	}
	if p.List.NumID != 1 || p.List.Indent != 0 {
		t.Errorf("expected numId 1 indent 0, got %d/%d", p.List.NumID, p.List.Indent)
	}
	if got := paraText(t, p); got != "hello" {
		t.Errorf("expected item text %q, got %q", "hello", got)
	}
	if len(pairs) != 1 || pairs[0].NumID != 1 || pairs[0].AbstractNumID != 99 {
		t.Errorf("expected one pair {1 99}, got %+v", pairs)
	}
}

func TestConvert_NestedListSharesNumbering(t *testing.T) {
	doc, pairs := mustConvertMarkdown(t, "- a\n  - b\n", testAllocator())
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Paragraphs))
	}
	outer, inner := doc.Paragraphs[0], doc.Paragraphs[1]
	if outer.List == nil || inner.List == nil {
		t.Fatal("expected list references on both paragraphs")
	}
	if outer.List.NumID != inner.List.NumID {
		t.Errorf("expected shared numId, got %d and %d", outer.List.NumID, inner.List.NumID)
	}
	if outer.List.Indent != 0 || inner.List.Indent != 1 {
		t.Errorf("expected indents 0 and 1, got %d and %d", outer.List.Indent, inner.List.Indent)
	}
	if len(pairs) != 1 {
		t.Errorf("expected a single minted pair, got %d", len(pairs))
	}
}

func TestConvert_OrderedListStyle(t *testing.T) {
	doc, pairs := mustConvertMarkdown(t, "1. first\n2. second\n", testAllocator())
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Paragraphs))
	}
	for i, p := range doc.Paragraphs {
		if p.Style != "Alg4" {
			t.Errorf("paragraph %d: expected style Alg4, got %q", i, p.Style)
		}
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	// Ordered lists get their own abstract definition, not the bullet one.
	if pairs[0].AbstractNumID != 1 {
		t.Errorf("expected fresh abstract 1, got %d", pairs[0].AbstractNumID)
	}
}

func TestConvert_SeparateListsMintSeparatePairs(t *testing.T) {
	src := "- a\n\nbetween\n\n1. b\n"
	_, pairs := mustConvertMarkdown(t, src, testAllocator())
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].NumID != 1 || pairs[1].NumID != 2 {
		t.Errorf("expected numIds 1 and 2, got %d and %d", pairs[0].NumID, pairs[1].NumID)
	}
	if pairs[0].AbstractNumID != 99 {
		t.Errorf("expected bullet abstract 99, got %d", pairs[0].AbstractNumID)
	}
	if pairs[1].AbstractNumID != 1 {
		t.Errorf("expected ordered abstract 1, got %d", pairs[1].AbstractNumID)
	}
}

func TestConvert_NestedListStyleFollowsInnermostKind(t *testing.T) {
	doc, pairs := mustConvertMarkdown(t, "1. outer\n   - inner\n", testAllocator())
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Paragraphs))
	}
	if doc.Paragraphs[0].Style != "Alg4" {
		t.Errorf("expected outer style Alg4, got %q", doc.Paragraphs[0].Style)
	}
	if doc.Paragraphs[1].Style != "BulletNotlast" {
		t.Errorf("expected inner style BulletNotlast, got %q", doc.Paragraphs[1].Style)
	}
	// One pair for the whole nesting, allocated by the outermost list.
	if len(pairs) != 1 || pairs[0].AbstractNumID == 99 {
		t.Errorf("expected one ordered pair, got %+v", pairs)
	}
}

func TestConvert_PreservedCodeBlock(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "```\nx = 1;\n  y = 2;\n```\n", testAllocator())
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Paragraphs))
	}
	p := doc.Paragraphs[0]
	if p.Style != "CodeSample3" {
		t.Errorf("expected style CodeSample3, got %q", p.Style)
	}
	if len(p.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(p.Runs))
	}
	segs := p.Runs[0].Segments
	want := []Segment{
		{Kind: SegText, Text: "x = 1;"},
		{Kind: SegLineBreak},
		{Kind: SegText, Text: "  y = 2;"},
		{Kind: SegLineBreak},
	}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d (%+v)", len(want), len(segs), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], segs[i])
		}
	}
}

func TestConvert_RuleBecomesPageBreak(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "a\n\n---\n\nb\n", testAllocator())
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(doc.Paragraphs))
	}
	p := doc.Paragraphs[1]
	if p.Style != "" || p.List != nil {
		t.Errorf("expected bare paragraph, got style %q list %+v", p.Style, p.List)
	}
	if len(p.Runs) != 1 || len(p.Runs[0].Segments) != 1 {
		t.Fatalf("expected single segment, got %+v", p.Runs)
	}
	if p.Runs[0].Segments[0].Kind != SegPageBreak {
		t.Errorf("expected page break segment, got %+v", p.Runs[0].Segments[0])
	}
}

func TestConvert_NoteParagraph(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "NOTE   This matters.\n", testAllocator())
	p := doc.Paragraphs[0]
	if p.Style != "Note" {
		t.Fatalf("expected style Note, got %q", p.Style)
	}
	segs := p.Runs[0].Segments
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].Kind != SegText || segs[0].Text != "NOTE" {
		t.Errorf("expected leading NOTE text, got %+v", segs[0])
	}
	if segs[1].Kind != SegTab {
		t.Errorf("expected tab after NOTE, got %+v", segs[1])
	}
	if segs[2].Kind != SegText || segs[2].Text != "This matters." {
		t.Errorf("expected note body, got %+v", segs[2])
	}
}

func TestConvert_NoteRequiresTrailingSpace(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "NOTEWORTHY fact.\n", testAllocator())
	if doc.Paragraphs[0].Style != "" {
		t.Errorf("expected plain paragraph, got style %q", doc.Paragraphs[0].Style)
	}
}

func TestConvert_BlockquoteIndentsList(t *testing.T) {
	doc, pairs := mustConvertMarkdown(t, "> - item\n", testAllocator())
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Paragraphs))
	}
	p := doc.Paragraphs[0]
	if p.List == nil {
		t.Fatal("expected a list reference")
	}
	// The enclosing blockquote deepens the level, so the item indents once.
	if p.List.Indent != 1 {
		t.Errorf("expected indent 1 inside a blockquote, got %d", p.List.Indent)
	}
	if len(pairs) != 1 {
		t.Errorf("expected 1 pair, got %d", len(pairs))
	}
}

func TestConvert_BlockquoteInsideListFails(t *testing.T) {
	root, err := markup.ParseMarkdown([]byte("- a\n  > q\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, _, err = Convert(root, testAllocator())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructuralError, got %T (%v)", err, err)
	}
	if serr.Msg != "can't convert a blockquote inside a list" {
		t.Errorf("unexpected message %q", serr.Msg)
	}
}

func TestConvert_NestedBlockquoteFails(t *testing.T) {
	root, err := markup.ParseMarkdown([]byte(">> twice removed\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, _, err = Convert(root, testAllocator())
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructuralError, got %T (%v)", err, err)
	}
}

func TestConvert_LooseItemWithoutLeadingTextFails(t *testing.T) {
	root, err := markup.ParseMarkdown([]byte("- a\n\n- b\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, _, err = Convert(root, testAllocator())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructuralError, got %T (%v)", err, err)
	}
	if serr.Msg != "list item without leading inline content" {
		t.Errorf("unexpected message %q", serr.Msg)
	}
}

func TestConvert_InlineAttributes(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "plain *em* **strong** `code`\n", testAllocator())
	runs := doc.Paragraphs[0].Runs
	if len(runs) != 6 {
		t.Fatalf("expected 6 runs, got %d", len(runs))
	}

	if runs[0].Attrs != (Attrs{}) || runs[0].Text() != "plain " {
		t.Errorf("run 0: expected plain text, got %+v", runs[0])
	}
	if !runs[1].Attrs.Emphasis || runs[1].Text() != "em" {
		t.Errorf("run 1: expected emphasized %q, got %+v", "em", runs[1])
	}
	if !runs[3].Attrs.Strong || runs[3].Text() != "strong" {
		t.Errorf("run 3: expected strong %q, got %+v", "strong", runs[3])
	}
	if !runs[5].Attrs.Code || runs[5].Text() != "code" {
		t.Errorf("run 5: expected code %q, got %+v", "code", runs[5])
	}
}

func TestConvert_CodeSpanInHeading(t *testing.T) {
	doc, _ := mustConvertMarkdown(t, "## The `detach` operation\n", testAllocator())
	p := doc.Paragraphs[0]
	if p.Style != "Heading2" {
		t.Fatalf("expected Heading2, got %q", p.Style)
	}
	if len(p.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(p.Runs))
	}
	if !p.Runs[1].Attrs.Code || p.Runs[1].Text() != "detach" {
		t.Errorf("expected code run %q, got %+v", "detach", p.Runs[1])
	}
}

func TestConvert_HTMLItemTrailingParagraph(t *testing.T) {
	root, err := markup.ParseHTML(strings.NewReader("<ul><li>lead<p>tail</p></li></ul>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc, _, err := Convert(root, testAllocator())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Paragraphs))
	}
	item, tail := doc.Paragraphs[0], doc.Paragraphs[1]
	if item.Style != "BulletNotlast" || item.List == nil {
		t.Errorf("expected styled list paragraph, got %+v", item)
	}
	// A paragraph trailing the item's inline content lowers unstyled.
	if tail.Style != "" || tail.List != nil {
		t.Errorf("expected bare trailing paragraph, got style %q list %+v", tail.Style, tail.List)
	}
	if got := paraText(t, tail); got != "tail" {
		t.Errorf("expected %q, got %q", "tail", got)
	}
}

func TestConvert_HTMLStrayTextInListFails(t *testing.T) {
	root, err := markup.ParseHTML(strings.NewReader("<ul>stray<li>a</li></ul>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, _, err = Convert(root, testAllocator())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unexpected text") {
		t.Errorf("expected unexpected-text error, got %v", err)
	}
}

func TestConvert_RejectsNonDocumentRoot(t *testing.T) {
	_, _, err := Convert(&markup.Node{Kind: markup.KindParagraph}, testAllocator())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
