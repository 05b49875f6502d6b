// Package pipeline wires the render stages together: annotation extraction,
// emphasis preprocessing, markup parsing, paragraph conversion and package
// assembly.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docweave/internal/archive"
	"github.com/dgallion1/docweave/internal/convert"
	"github.com/dgallion1/docweave/internal/emphasis"
	"github.com/dgallion1/docweave/internal/extract"
	"github.com/dgallion1/docweave/internal/markup"
	"github.com/dgallion1/docweave/internal/ooxml"
)

// Options configure a Renderer.
type Options struct {
	// Template is the package whose parts carry over into every output.
	Template string

	// Marker introduces annotation lines in plain source files.
	Marker string

	// Format is the frontend for annotated sources: "markdown" or "html".
	// Files named *.md, *.markdown, *.html or *.htm bypass extraction and
	// pick their frontend by extension.
	Format string

	// BulletAbstractID overrides the template's detected shared bullet
	// definition when non-negative.
	BulletAbstractID int
}

// Stats describes one completed render.
type Stats struct {
	Source     string
	Output     string
	Paragraphs int
	Runs       int
	Lists      int
	Bytes      int
	Duration   time.Duration
}

// Renderer turns annotated sources and markup documents into styled
// packages derived from a single template. One Renderer serves any number
// of renders, concurrently.
type Renderer struct {
	opts Options
	cat  *archive.Catalog
	log  *slog.Logger
}

// NewRenderer reads the template's numbering catalog once and returns a
// renderer bound to it.
func NewRenderer(opts Options, log *slog.Logger) (*Renderer, error) {
	if opts.Template == "" {
		return nil, fmt.Errorf("no template configured")
	}
	if opts.Marker == "" {
		opts.Marker = extract.DefaultMarker
	}
	if opts.Format == "" {
		opts.Format = "markdown"
	}

	cat, err := archive.ReadCatalog(opts.Template)
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, cat: cat, log: log}, nil
}

// RenderFile renders one source file to outPath.
func (r *Renderer) RenderFile(ctx context.Context, srcPath, outPath string) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	doc, pairs, err := r.build(srcPath, data)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", srcPath, err)
	}

	body, err := ooxml.WriteDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", srcPath, err)
	}
	abstracts, nums, err := ooxml.NumberingFragments(pairs, r.bulletAbstract())
	if err != nil {
		return nil, fmt.Errorf("serialize numbering for %s: %w", srcPath, err)
	}

	if err := archive.WriteDocx(r.opts.Template, outPath, body, abstracts, nums); err != nil {
		return nil, fmt.Errorf("write %s: %w", outPath, err)
	}

	runs := 0
	for _, p := range doc.Paragraphs {
		runs += len(p.Runs)
	}
	st := &Stats{
		Source:     srcPath,
		Output:     outPath,
		Paragraphs: len(doc.Paragraphs),
		Runs:       runs,
		Lists:      len(pairs),
		Bytes:      len(body),
		Duration:   time.Since(start),
	}
	r.log.Info("rendered document",
		"source", srcPath,
		"output", outPath,
		"paragraphs", st.Paragraphs,
		"runs", st.Runs,
		"lists", st.Lists,
		"duration_ms", st.Duration.Milliseconds(),
	)
	return st, nil
}

// build runs the source through its frontend and the paragraph converter.
func (r *Renderer) build(path string, data []byte) (*convert.Document, []convert.NumberingPair, error) {
	fe, annotated := r.forFile(path)

	text := string(data)
	if annotated {
		var err error
		text, err = extract.Annotations(bytes.NewReader(data), r.opts.Marker)
		if err != nil {
			return nil, nil, err
		}
	}

	var root *markup.Node
	var err error
	switch fe {
	case frontendHTML:
		root, err = markup.ParseHTML(strings.NewReader(text))
	default:
		// Term emphasis applies to extracted annotations only; documents
		// authored as markdown carry their own emphasis.
		if annotated {
			text = emphasis.Process(text)
		}
		root, err = markup.ParseMarkdown([]byte(text))
	}
	if err != nil {
		return nil, nil, err
	}

	alloc := convert.NewAllocator(r.cat.MaxNumID, r.cat.MaxAbstractNumID, r.bulletAbstract())
	return convert.Convert(root, alloc)
}

func (r *Renderer) bulletAbstract() int {
	if r.opts.BulletAbstractID >= 0 {
		return r.opts.BulletAbstractID
	}
	return r.cat.BulletAbstractID
}

type frontend int

const (
	frontendMarkdown frontend = iota
	frontendHTML
)

// forFile picks the frontend for a source file and reports whether
// annotation extraction applies to it.
func (r *Renderer) forFile(path string) (frontend, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return frontendMarkdown, false
	case ".html", ".htm":
		return frontendHTML, false
	}
	if r.opts.Format == "html" {
		return frontendHTML, true
	}
	return frontendMarkdown, true
}

// OutputPath maps a source path to its document path under dir.
func OutputPath(dir, srcPath string) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".docx")
}
