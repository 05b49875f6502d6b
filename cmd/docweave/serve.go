package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docweave/internal/api"
	"github.com/dgallion1/docweave/internal/config"
)

func runServe(args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.Usage = func() { printServeUsage(os.Stderr) }

	configPath := fs.StringP("config", "c", config.FileName, "project file")
	port := fs.StringP("port", "p", "", "listen port")
	docsDir := fs.StringP("docs", "d", "", "docs directory to serve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.LoadFile(*configPath); err != nil {
		return err
	}
	if fs.Changed("port") {
		cfg.Port = *port
	}
	if fs.Changed("docs") {
		cfg.OutputDir = *docsDir
	}

	srv := api.NewServer(cfg.OutputDir, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docweave preview", "port", cfg.Port, "docs", cfg.OutputDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
