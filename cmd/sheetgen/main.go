// Package main provides the CLI entrypoint for sheetgen.
//
// sheetgen turns spreadsheet tables into typed Go data:
//   - Reads a table header and keeps the column schema in a machine file
//   - Generates a data record, a container and loader glue per table
//   - Generates enum constants from enum tables
//   - Loads the rows into a YAML asset, reporting bad cells by position
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sheetgen/errs"
	"sheetgen/internal/logger"

	_ "sheetgen/source/all"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, log *logger.Logger, args []string) error
}

var commands = []command{
	{"init", "create a machine file for one table", runInit},
	{"tables", "list the data and enum tables of a source", runTables},
	{"import", "read the table header into the machine file", runImport},
	{"generate", "generate the record, container and loader code", runGenerate},
	{"enums", "generate enum constants from the enum tables", runEnums},
	{"load", "load the table rows into the asset file", runLoad},
	{"watch", "reload whenever the source changes", runWatch},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("sheetgen", flag.ContinueOnError)
	level := global.String("log-level", "info", "log level: debug, info, warn, error")
	format := global.String("log-format", "console", "log format: console, json")
	global.Usage = usage(global)

	if err := global.Parse(args); err != nil {
		return 2
	}

	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg := logger.DefaultConfig()
	cfg.Level = *level
	cfg.Format = *format
	log := logger.New(cfg)

	name := global.Arg(0)
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := cmd.run(log.WithContext(ctx), log, global.Args()[1:])
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		if err != nil {
			log.Err(err, name+" failed")
			return exitCode(err)
		}

		return 0
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
	global.Usage()

	return 2
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintln(out, "usage: sheetgen [flags] <command> [command flags]")
		fmt.Fprintln(out, "\ncommands:")

		for _, cmd := range commands {
			fmt.Fprintf(out, "  %-10s %s\n", cmd.name, cmd.usage)
		}

		fmt.Fprintln(out, "\nflags:")
		fs.PrintDefaults()
	}
}

// exitCode maps error kinds to process exit codes.
func exitCode(err error) int {
	switch {
	case errs.IsInvalidConfig(err):
		return 2
	case errs.IsSourceUnavailable(err):
		return 3
	case errs.IsInvalidHeader(err):
		return 4
	default:
		return 1
	}
}
