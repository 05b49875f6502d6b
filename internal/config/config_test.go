package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOCWEAVE_TEMPLATE", "DOCWEAVE_OUTPUT_DIR", "DOCWEAVE_MARKER",
		"DOCWEAVE_FORMAT", "DOCWEAVE_BULLET_ABSTRACT_ID", "DOCWEAVE_LEXER",
		"DOCWEAVE_STYLE", "DOCWEAVE_WORKERS", "DOCWEAVE_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Template != "" {
		t.Errorf("expected no default template, got %q", cfg.Template)
	}
	if cfg.OutputDir != "docs" {
		t.Errorf("expected output dir docs, got %q", cfg.OutputDir)
	}
	if cfg.Marker != "//>" {
		t.Errorf("expected marker //>, got %q", cfg.Marker)
	}
	if cfg.Format != "markdown" {
		t.Errorf("expected markdown format, got %q", cfg.Format)
	}
	if cfg.BulletAbstractID != -1 {
		t.Errorf("expected bullet abstract detection, got %d", cfg.BulletAbstractID)
	}
	if cfg.Style != "github" {
		t.Errorf("expected github style, got %q", cfg.Style)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCWEAVE_MARKER", "#:")
	t.Setenv("DOCWEAVE_WORKERS", "2")
	t.Setenv("DOCWEAVE_BULLET_ABSTRACT_ID", "5")

	cfg := Load()
	if cfg.Marker != "#:" {
		t.Errorf("expected env marker, got %q", cfg.Marker)
	}
	if cfg.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Workers)
	}
	if cfg.BulletAbstractID != 5 {
		t.Errorf("expected bullet abstract 5, got %d", cfg.BulletAbstractID)
	}
}

func TestLoad_BadWorkerCountFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCWEAVE_WORKERS", "-3")
	if cfg := Load(); cfg.Workers != 4 {
		t.Errorf("expected fallback worker count, got %d", cfg.Workers)
	}

	t.Setenv("DOCWEAVE_WORKERS", "plenty")
	if cfg := Load(); cfg.Workers != 4 {
		t.Errorf("expected fallback worker count, got %d", cfg.Workers)
	}
}

func TestLoadFile_LayersOverEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCWEAVE_TEMPLATE", "env.docx")

	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("template: manual.docx\nworkers: 8\n"), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}

	cfg := Load()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Template != "manual.docx" {
		t.Errorf("expected project file to win over env, got %q", cfg.Template)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.Marker != "//>" {
		t.Errorf("expected untouched default marker, got %q", cfg.Marker)
	}
}

func TestLoadFile_MissingFileIgnored(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), FileName)); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.OutputDir != "docs" {
		t.Errorf("expected config unchanged, got %q", cfg.OutputDir)
	}
}

func TestLoadFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("workers: [oops\n"), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}

	cfg := Load()
	if err := cfg.LoadFile(path); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}

	cfg.Format = "latex"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown format rejected")
	}

	cfg.Format = "html"
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected zero workers rejected")
	}
}
