package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docweave/internal/inspect"
)

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.Usage = func() { printInspectUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		printInspectUsage(os.Stderr)
		return fmt.Errorf("no input files")
	}

	for _, path := range fs.Args() {
		paras, err := inspect.File(path)
		if err != nil {
			return err
		}
		if fs.NArg() > 1 {
			fmt.Printf("== %s\n", path)
		}
		if err := inspect.Print(os.Stdout, paras); err != nil {
			return err
		}
	}
	return nil
}
