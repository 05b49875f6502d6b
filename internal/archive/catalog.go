// Package archive reads and patches the zip packaging of word-processing
// documents: it seeds the numbering allocator from a template's catalog and
// splices generated parts into a copy of the template.
package archive

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const (
	documentPart  = "word/document.xml"
	numberingPart = "word/numbering.xml"
)

// Catalog summarizes the numbering definitions found in a template package.
type Catalog struct {
	MaxNumID         int
	MaxAbstractNumID int
	BulletAbstractID int // -1 when the catalog defines no bullet list
	HasNumbering     bool
}

// ReadCatalog opens a template package and summarizes its numbering catalog.
// A template without a numbering part yields zero maxima, which seeds the
// allocator starting at 1.
func ReadCatalog(path string) (*Catalog, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != numberingPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", numberingPart, err)
		}
		defer rc.Close()

		cat, err := parseNumbering(rc)
		if err != nil {
			return nil, err
		}
		cat.HasNumbering = true
		return cat, nil
	}
	return &Catalog{BulletAbstractID: -1}, nil
}

// parseNumbering streams through a numbering part, tracking the maximum ids
// and the first abstract definition with a bullet level.
func parseNumbering(r io.Reader) (*Catalog, error) {
	cat := &Catalog{BulletAbstractID: -1}
	dec := xml.NewDecoder(r)
	currentAbstract := -1

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse numbering: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "num":
				if id, err := strconv.Atoi(attrVal(t, "numId")); err == nil && id > cat.MaxNumID {
					cat.MaxNumID = id
				}
			case "abstractNum":
				currentAbstract = -1
				if id, err := strconv.Atoi(attrVal(t, "abstractNumId")); err == nil {
					currentAbstract = id
					if id > cat.MaxAbstractNumID {
						cat.MaxAbstractNumID = id
					}
				}
			case "numFmt":
				if currentAbstract >= 0 && cat.BulletAbstractID < 0 && attrVal(t, "val") == "bullet" {
					cat.BulletAbstractID = currentAbstract
				}
			}
		case xml.EndElement:
			if t.Name.Local == "abstractNum" {
				currentAbstract = -1
			}
		}
	}
	return cat, nil
}

func attrVal(t xml.StartElement, localName string) string {
	for _, a := range t.Attr {
		if a.Name.Local == localName {
			return a.Value
		}
	}
	return ""
}
