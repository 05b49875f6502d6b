package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docweave/internal/config"
	"github.com/dgallion1/docweave/internal/litdoc"
)

func runDocs(args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("docs", flag.ContinueOnError)
	fs.Usage = func() { printDocsUsage(os.Stderr) }

	configPath := fs.StringP("config", "c", config.FileName, "project file")
	outDir := fs.StringP("output", "o", "", "output directory")
	lexer := fs.String("lexer", "", "highlight lexer, empty selects by file name")
	style := fs.String("style", "", "highlight style")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		printDocsUsage(os.Stderr)
		return fmt.Errorf("no input files")
	}

	cfg := config.Load()
	if err := cfg.LoadFile(*configPath); err != nil {
		return err
	}
	if fs.Changed("output") {
		cfg.OutputDir = *outDir
	}
	if fs.Changed("lexer") {
		cfg.Lexer = *lexer
	}
	if fs.Changed("style") {
		cfg.Style = *style
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	gen := litdoc.New(litdoc.Options{Lexer: cfg.Lexer, Style: cfg.Style})
	for _, src := range fs.Args() {
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		page, err := gen.Page(src, string(data))
		if err != nil {
			return fmt.Errorf("generate page for %s: %w", src, err)
		}
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		out := filepath.Join(cfg.OutputDir, base+".html")
		if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		log.Info("generated page", "source", src, "output", out)
	}
	return nil
}
