package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// FileName is the project file loaded from the working directory when
// present.
const FileName = "docweave.yaml"

// Config carries the settings shared by the render, docs and serve
// commands. Values resolve in order: built-in defaults, then environment,
// then the project file, then command-line flags.
type Config struct {
	// Template is the .docx file whose parts are carried into rendered
	// documents.
	Template string `yaml:"template"`

	// OutputDir receives rendered documents and literate pages.
	OutputDir string `yaml:"output_dir"`

	// Marker introduces annotation lines extracted from source files.
	Marker string `yaml:"marker"`

	// Format selects the render frontend: "markdown" or "html".
	Format string `yaml:"format"`

	// BulletAbstractID pins the shared bullet list definition in the
	// template. Negative means detect it from the template's numbering
	// part.
	BulletAbstractID int `yaml:"bullet_abstract_id"`

	// Lexer and Style control literate page highlighting. An empty lexer
	// selects by file name.
	Lexer string `yaml:"lexer"`
	Style string `yaml:"style"`

	// Workers bounds concurrent renders in batch mode.
	Workers int `yaml:"workers"`

	// Port is the preview server listen port.
	Port string `yaml:"port"`
}

func Load() Config {
	cfg := Config{
		Template:         os.Getenv("DOCWEAVE_TEMPLATE"),
		OutputDir:        envOr("DOCWEAVE_OUTPUT_DIR", "docs"),
		Marker:           envOr("DOCWEAVE_MARKER", "//>"),
		Format:           envOr("DOCWEAVE_FORMAT", "markdown"),
		BulletAbstractID: envInt("DOCWEAVE_BULLET_ABSTRACT_ID", -1),
		Lexer:            os.Getenv("DOCWEAVE_LEXER"),
		Style:            envOr("DOCWEAVE_STYLE", "github"),
		Workers:          envInt("DOCWEAVE_WORKERS", 4),
		Port:             envOr("DOCWEAVE_PORT", "8090"),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return cfg
}

// LoadFile layers the project file at path over c. A missing file is not an
// error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read project file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Format != "markdown" && c.Format != "html" {
		return fmt.Errorf("unknown format %q (want markdown or html)", c.Format)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
