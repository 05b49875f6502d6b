package ooxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/dgallion1/docweave/internal/convert"
)

const numberingLevels = 9

type numXML struct {
	XMLName     xml.Name `xml:"w:num"`
	NumID       string   `xml:"w:numId,attr"`
	AbstractRef valXML   `xml:"w:abstractNumId"`
}

type abstractNumXML struct {
	XMLName    xml.Name   `xml:"w:abstractNum"`
	AbstractID string     `xml:"w:abstractNumId,attr"`
	MultiLevel valXML     `xml:"w:multiLevelType"`
	Levels     []levelXML `xml:"w:lvl"`
}

type levelXML struct {
	ILvl    string      `xml:"w:ilvl,attr"`
	Start   valXML      `xml:"w:start"`
	Format  valXML      `xml:"w:numFmt"`
	LvlText valXML      `xml:"w:lvlText"`
	Justify valXML      `xml:"w:lvlJc"`
	Props   lvlPropsXML `xml:"w:pPr"`
}

type lvlPropsXML struct {
	Indent indentXML `xml:"w:ind"`
}

type indentXML struct {
	Left    string `xml:"w:left,attr"`
	Hanging string `xml:"w:hanging,attr"`
}

// NumberingFragments renders the catalog elements for minted pairs: a
// multilevel decimal abstract definition for each ordered pair, and one num
// binding per pair. Pairs whose abstract id equals bulletAbstract reuse the
// catalog's shared bullet definition and get no abstract element of their
// own. Abstracts and bindings come back separately because the catalog
// schema keeps all abstract definitions ahead of the bindings.
func NumberingFragments(pairs []convert.NumberingPair, bulletAbstract int) (abstracts, nums []byte, err error) {
	var abuf, nbuf bytes.Buffer
	for _, p := range pairs {
		if p.AbstractNumID < 0 {
			return nil, nil, fmt.Errorf("no shared bullet definition for num %d", p.NumID)
		}
		if p.AbstractNumID != bulletAbstract {
			out, err := xml.Marshal(decimalAbstract(p.AbstractNumID))
			if err != nil {
				return nil, nil, fmt.Errorf("marshal abstractNum %d: %w", p.AbstractNumID, err)
			}
			abuf.Write(out)
		}
		out, err := xml.Marshal(numXML{
			NumID:       strconv.Itoa(p.NumID),
			AbstractRef: valXML{Val: strconv.Itoa(p.AbstractNumID)},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("marshal num %d: %w", p.NumID, err)
		}
		nbuf.Write(out)
	}
	return abuf.Bytes(), nbuf.Bytes(), nil
}

// decimalAbstract builds a plain multilevel decimal list definition, the
// shape word processors emit for a fresh numbered list.
func decimalAbstract(abstractID int) abstractNumXML {
	a := abstractNumXML{
		AbstractID: strconv.Itoa(abstractID),
		MultiLevel: valXML{Val: "multilevel"},
	}
	for i := 0; i < numberingLevels; i++ {
		a.Levels = append(a.Levels, levelXML{
			ILvl:    strconv.Itoa(i),
			Start:   valXML{Val: "1"},
			Format:  valXML{Val: "decimal"},
			LvlText: valXML{Val: fmt.Sprintf("%%%d.", i+1)},
			Justify: valXML{Val: "left"},
			Props: lvlPropsXML{
				Indent: indentXML{
					Left:    strconv.Itoa(720 * (i + 1)),
					Hanging: "360",
				},
			},
		})
	}
	return a
}
