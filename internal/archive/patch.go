package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteDocx copies the template package to outPath with the main document
// part replaced by document and the minted numbering fragments spliced into
// the catalog. Every other entry is carried over byte for byte. The output
// appears atomically: nothing is left behind on failure.
func WriteDocx(templatePath, outPath string, document, abstracts, nums []byte) error {
	zr, err := zip.OpenReader(templatePath)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	defer zr.Close()

	haveFragments := len(abstracts) > 0 || len(nums) > 0
	if haveFragments {
		found := false
		for _, f := range zr.File {
			if f.Name == numberingPart {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template %s has no %s to register list definitions in", templatePath, numberingPart)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".docweave-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	wroteDocument := false

	for _, f := range zr.File {
		switch f.Name {
		case documentPart:
			if err := writeEntry(zw, f.Name, document); err != nil {
				return err
			}
			wroteDocument = true

		case numberingPart:
			src, err := readEntry(f)
			if err != nil {
				return err
			}
			patched, err := spliceNumbering(src, abstracts, nums)
			if err != nil {
				return err
			}
			if err := writeEntry(zw, f.Name, patched); err != nil {
				return err
			}

		default:
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("copy %s: %w", f.Name, err)
			}
		}
	}

	if !wroteDocument {
		if err := writeEntry(zw, documentPart, document); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("finish output: %w", err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("place output: %w", err)
	}
	tmp = nil
	return nil
}

// spliceNumbering inserts minted fragments into an existing numbering part:
// abstract definitions ahead of the first num binding, bindings just before
// the closing tag.
func spliceNumbering(src, abstracts, nums []byte) ([]byte, error) {
	closing := bytes.LastIndex(src, []byte("</w:numbering>"))
	if closing < 0 {
		return nil, fmt.Errorf("numbering part has no closing element")
	}
	insertAt := bytes.Index(src, []byte("<w:num "))
	if insertAt < 0 || insertAt > closing {
		insertAt = closing
	}

	var out bytes.Buffer
	out.Grow(len(src) + len(abstracts) + len(nums))
	out.Write(src[:insertAt])
	out.Write(abstracts)
	out.Write(src[insertAt:closing])
	out.Write(nums)
	out.Write(src[closing:])
	return out.Bytes(), nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
