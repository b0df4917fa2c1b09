package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sheetgen/errs"
	"sheetgen/internal/logger"
	"sheetgen/internal/machine"
	"sheetgen/internal/naming"
	"sheetgen/internal/session"
	"sheetgen/internal/watch"
	"sheetgen/source"
)

const defaultMachineDir = "machines"

// optionsFlag collects repeated -option key=value flags.
type optionsFlag map[string]string

func (o optionsFlag) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}

	sort.Strings(parts)

	return strings.Join(parts, ",")
}

func (o optionsFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("option %q is not key=value", s)
	}

	o[strings.TrimSpace(k)] = strings.TrimSpace(v)

	return nil
}

func machineFlag(fs *flag.FlagSet) *string {
	return fs.String("machine", "", "machine file path")
}

// openSession loads the machine file named by the -machine flag.
func openSession(log *logger.Logger, path string) (*session.Session, error) {
	if path == "" {
		return nil, errs.New(errs.KindInvalidConfig, "-machine is required")
	}

	m, err := machine.LoadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidConfig, "load machine", err)
	}

	return session.New(m, path, log), nil
}

func runInit(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	locator := fs.String("source", "", "source locator: file, directory, spreadsheet id, DSN or s3:// URL")
	kind := fs.String("kind", "", "source kind (detected from the locator when empty)")
	tableName := fs.String("table", "", "table (sheet) name")
	path := machineFlag(fs)
	pkg := fs.String("package", "data", "package name of the generated runtime code")
	runtime := fs.String("runtime", "", "output directory of the runtime code")
	editor := fs.String("editor", "", "output directory of the loader glue")
	editorPkg := fs.String("editor-package", "", "package name of the loader glue")
	runtimeImport := fs.String("runtime-import", "", "import path of the runtime package")
	asset := fs.String("asset", "", "asset file path")
	templates := fs.String("templates", "", "directory with template overrides")
	onlyData := fs.Bool("only-data", false, "generate the data record only")
	force := fs.Bool("force", false, "overwrite an existing machine file")
	opts := optionsFlag{}
	fs.Var(opts, "option", "source option key=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *locator == "" || *tableName == "" {
		return errs.New(errs.KindInvalidConfig, "-source and -table are required")
	}

	spec := source.Spec{Kind: *kind, Locator: *locator}
	if len(opts) > 0 {
		spec.Options = opts
	}

	r, err := source.Open(ctx, spec)
	if err != nil {
		return err
	}

	err = session.ValidateTable(ctx, r, *tableName)
	r.Close()

	if err != nil {
		return err
	}

	if *path == "" {
		*path = filepath.Join(defaultMachineDir, naming.Snake(*tableName)+".yaml")
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return errs.Newf(errs.KindInvalidConfig, "machine file %s exists; use -force to overwrite", *path)
	}

	m := machine.New(spec, *tableName)
	m.Package = *pkg
	m.EditorPackage = *editorPkg
	m.RuntimeImport = *runtimeImport
	m.Paths = machine.Paths{
		Templates:      *templates,
		Runtime:        *runtime,
		Editor:         *editor,
		Asset:          *asset,
		OnlyDataRecord: *onlyData,
	}

	machine.ApplyDefaults(m)

	if err := machine.WriteFile(m, *path); err != nil {
		return err
	}

	log.Infof("created %s for %s", *path, m.Identity())

	return nil
}

func runTables(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	path := machineFlag(fs)
	locator := fs.String("source", "", "source locator, instead of -machine")
	kind := fs.String("kind", "", "source kind")
	opts := optionsFlag{}
	fs.Var(opts, "option", "source option key=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var s *session.Session

	if *locator != "" {
		spec := source.Spec{Kind: *kind, Locator: *locator, Options: opts}
		s = session.New(machine.New(spec, ""), "", log)
	} else {
		var err error
		if s, err = openSession(log, *path); err != nil {
			return err
		}
	}

	list, err := s.Tables(ctx)
	if err != nil {
		return err
	}

	for _, name := range list.Data {
		fmt.Println(name)
	}

	for _, name := range list.Enums {
		fmt.Printf("%s (enum)\n", name)
	}

	return nil
}

func runImport(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	path := machineFlag(fs)
	reimport := fs.Bool("reimport", false, "discard the stored column types")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(log, *path)
	if err != nil {
		return err
	}

	_, err = s.Import(ctx, *reimport)

	return err
}

func runGenerate(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	path := machineFlag(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(log, *path)
	if err != nil {
		return err
	}

	_, err = s.Generate(ctx)

	return err
}

func runEnums(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("enums", flag.ContinueOnError)
	path := machineFlag(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(log, *path)
	if err != nil {
		return err
	}

	_, err = s.GenerateEnums(ctx)

	return err
}

func runLoad(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	path := machineFlag(fs)
	strict := fs.Bool("strict", false, "fail when any cell fails to convert")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(log, *path)
	if err != nil {
		return err
	}

	res, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if *strict {
		return res.Diags.Error()
	}

	return nil
}

func runWatch(ctx context.Context, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	path := machineFlag(fs)
	regen := fs.Bool("regen", false, "import and generate before every load")
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "quiet period after a file change")
	schedule := fs.String("schedule", "", "cron schedule for remote sources (default: source option or "+watch.DefaultSchedule+")")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(log, *path)
	if err != nil {
		return err
	}

	cfg := watch.ConfigFor(s.Machine().Source)
	cfg.Debounce = *debounce

	if *schedule != "" {
		cfg.Schedule = *schedule
	}

	w := watch.New(cfg, log, func(ctx context.Context, _ string) error {
		start := time.Now()

		if *regen {
			if _, err := s.Import(ctx, false); err != nil {
				return err
			}

			if _, err := s.Generate(ctx); err != nil {
				return err
			}
		}

		if _, err := s.Load(ctx); err != nil {
			return err
		}

		log.Debugf("reload took %s", time.Since(start).Truncate(time.Millisecond))

		return nil
	})

	return w.Run(ctx, s.Machine().Source)
}
