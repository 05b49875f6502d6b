// Package ooxml serializes the converted document model into
// WordprocessingML parts ready for packaging.
package ooxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/docweave/internal/convert"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Write-side element structs. Prefixes are spelled out because the encoder
// does not manage namespace prefixes itself.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    bodyXML  `xml:"w:body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"w:p"`
}

type paragraphXML struct {
	Props *paraPropsXML `xml:"w:pPr"`
	Runs  []runXML      `xml:"w:r"`
}

type paraPropsXML struct {
	Style *valXML      `xml:"w:pStyle"`
	NumPr *numPropsXML `xml:"w:numPr"`
}

type numPropsXML struct {
	ILvl  valXML `xml:"w:ilvl"`
	NumID valXML `xml:"w:numId"`
}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

type runXML struct {
	Props *runPropsXML `xml:"w:rPr"`
	// Segments holds textXML, breakXML and tabXML values; each carries its
	// own XMLName, which keeps them in document order when marshaled.
	Segments []any
}

type runPropsXML struct {
	Italic *emptyXML `xml:"w:i"`
	Bold   *emptyXML `xml:"w:b"`
	Fonts  *fontsXML `xml:"w:rFonts"`
}

type emptyXML struct{}

type fontsXML struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

type tabXML struct {
	XMLName xml.Name `xml:"w:tab"`
}

// WriteDocument serializes a converted document into the bytes of the
// word/document.xml part, XML declaration included.
func WriteDocument(doc *convert.Document) ([]byte, error) {
	d := documentXML{NS: wordNS}
	for _, p := range doc.Paragraphs {
		d.Body.Paragraphs = append(d.Body.Paragraphs, paragraphFor(p))
	}
	out, err := xml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func paragraphFor(p convert.Paragraph) paragraphXML {
	var out paragraphXML
	if p.Style != "" || p.List != nil {
		props := &paraPropsXML{}
		if p.Style != "" {
			props.Style = &valXML{Val: p.Style}
		}
		if p.List != nil {
			props.NumPr = &numPropsXML{
				ILvl:  valXML{Val: strconv.Itoa(p.List.Indent)},
				NumID: valXML{Val: strconv.Itoa(p.List.NumID)},
			}
		}
		out.Props = props
	}
	for _, r := range p.Runs {
		out.Runs = append(out.Runs, runFor(r))
	}
	return out
}

func runFor(r convert.Run) runXML {
	var out runXML
	if r.Attrs.Emphasis || r.Attrs.Strong || r.Attrs.Code {
		props := &runPropsXML{}
		if r.Attrs.Emphasis {
			props.Italic = &emptyXML{}
		}
		if r.Attrs.Strong || r.Attrs.Code {
			props.Bold = &emptyXML{}
		}
		if r.Attrs.Code {
			props.Fonts = &fontsXML{ASCII: "Courier New", HAnsi: "Courier New"}
		}
		out.Props = props
	}
	for _, seg := range r.Segments {
		switch seg.Kind {
		case convert.SegText:
			t := textXML{Value: seg.Text}
			if strings.TrimSpace(seg.Text) != seg.Text {
				t.Space = "preserve"
			}
			out.Segments = append(out.Segments, t)
		case convert.SegLineBreak:
			out.Segments = append(out.Segments, breakXML{})
		case convert.SegPageBreak:
			out.Segments = append(out.Segments, breakXML{Type: "page"})
		case convert.SegTab:
			out.Segments = append(out.Segments, tabXML{})
		}
	}
	return out
}
