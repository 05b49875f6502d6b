package main

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// -q/--quiet is global: strip it wherever it appears so subcommands
	// never see it.
	level := new(slog.LevelVar)
	args := make([]string, 0, len(os.Args)-1)
	for _, a := range os.Args[1:] {
		if a == "-q" || a == "--quiet" {
			level.Set(slog.LevelWarn)
			continue
		}
		args = append(args, a)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which case
	// runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(format, args...))
	}))

	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "render":
		err = runRender(args[1:], log)
	case "docs":
		err = runDocs(args[1:], log)
	case "inspect":
		err = runInspect(args[1:])
	case "serve":
		err = runServe(args[1:], log)
	case "version":
		fmt.Println("docweave " + Version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}
