package convert

import (
	"testing"

	"github.com/dgallion1/docweave/internal/markup"
)

func TestNormalizeSpace(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello   world", "hello world"},
		{" leading", " leading"},
		{"trailing ", "trailing "},
		{"a\n\tb", "a b"},
		{"", ""},
		{"   ", " "},
		{"  both  ends  ", " both ends "},
	}
	for _, c := range cases {
		if got := normalizeSpace(c.in); got != c.want {
			t.Errorf("normalizeSpace(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestBuildRun_SplitsBreaks(t *testing.T) {
	run := buildRun("a\nb\fc", Attrs{}, true)
	want := []Segment{
		{Kind: SegText, Text: "a"},
		{Kind: SegLineBreak},
		{Kind: SegText, Text: "b"},
		{Kind: SegPageBreak},
		{Kind: SegText, Text: "c"},
	}
	if len(run.Segments) != len(want) {
		t.Fatalf("expected %d segments, got %+v", len(want), run.Segments)
	}
	for i := range want {
		if run.Segments[i] != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], run.Segments[i])
		}
	}
}

func TestBuildRun_DropsEmptyTextBetweenBreaks(t *testing.T) {
	run := buildRun("\n\n", Attrs{}, true)
	if len(run.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", run.Segments)
	}
	for i, s := range run.Segments {
		if s.Kind != SegLineBreak {
			t.Errorf("segment %d: expected line break, got %+v", i, s)
		}
	}
}

func TestBuildRun_NormalizesUnlessPreserved(t *testing.T) {
	run := buildRun(" x  y ", Attrs{}, false)
	if len(run.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %+v", run.Segments)
	}
	if run.Segments[0].Text != " x y " {
		t.Errorf("expected %q, got %q", " x y ", run.Segments[0].Text)
	}

	run = buildRun(" x  y ", Attrs{}, true)
	if run.Segments[0].Text != " x  y " {
		t.Errorf("expected verbatim %q, got %q", " x  y ", run.Segments[0].Text)
	}
}

func TestInlineRuns_AttributesCombineThroughNesting(t *testing.T) {
	nodes := []*markup.Node{
		{Kind: markup.KindEmphasis, Children: []*markup.Node{
			{Kind: markup.KindCode, Children: []*markup.Node{
				{Kind: markup.KindText, Text: "x"},
			}},
		}},
	}
	runs, err := inlineRuns(nodes, Attrs{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if !runs[0].Attrs.Emphasis || !runs[0].Attrs.Code {
		t.Errorf("expected emphasis and code attributes, got %+v", runs[0].Attrs)
	}
}
