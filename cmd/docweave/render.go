package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docweave/internal/config"
	"github.com/dgallion1/docweave/internal/pipeline"
)

func runRender(args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.Usage = func() { printRenderUsage(os.Stderr) }

	configPath := fs.StringP("config", "c", config.FileName, "project file")
	template := fs.StringP("template", "t", "", "template .docx package")
	outDir := fs.StringP("output", "o", "", "output directory")
	format := fs.String("format", "", "frontend for annotated sources: markdown or html")
	marker := fs.String("marker", "", "annotation marker")
	bullet := fs.Int("bullet-abstract-id", -1, "abstract id of the template's shared bullet definition")
	workers := fs.IntP("workers", "w", 0, "concurrent renders")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		printRenderUsage(os.Stderr)
		return fmt.Errorf("no input files")
	}

	cfg := config.Load()
	if err := cfg.LoadFile(*configPath); err != nil {
		return err
	}
	if fs.Changed("template") {
		cfg.Template = *template
	}
	if fs.Changed("output") {
		cfg.OutputDir = *outDir
	}
	if fs.Changed("format") {
		cfg.Format = *format
	}
	if fs.Changed("marker") {
		cfg.Marker = *marker
	}
	if fs.Changed("bullet-abstract-id") {
		cfg.BulletAbstractID = *bullet
	}
	if fs.Changed("workers") {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	r, err := pipeline.NewRenderer(pipeline.Options{
		Template:         cfg.Template,
		Marker:           cfg.Marker,
		Format:           cfg.Format,
		BulletAbstractID: cfg.BulletAbstractID,
	}, log)
	if err != nil {
		return err
	}

	results := r.RenderAll(ctx, fs.Args(), cfg.OutputDir, cfg.Workers)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			log.Error("render failed", "source", res.Source, "error", res.Err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d renders failed", failed, len(results))
	}
	return nil
}
