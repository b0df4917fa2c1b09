// Package session runs the user level operations on one table machine:
// import, generate, generate enums, load and list tables. A Session is built
// once per command and owns the machine it was given.
package session

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"sheetgen/errs"
	"sheetgen/internal/diagnostic"
	"sheetgen/internal/gen"
	"sheetgen/internal/load"
	"sheetgen/internal/logger"
	"sheetgen/internal/machine"
	"sheetgen/internal/match"
	"sheetgen/internal/schema"
	"sheetgen/source"
	"sheetgen/table"
)

const headerWorkers = 4

// Opener opens the table reader of a source spec.
type Opener func(ctx context.Context, spec source.Spec) (table.Reader, error)

// Session operates on one machine.
type Session struct {
	machine *machine.Machine
	path    string
	log     *logger.Logger
	open    Opener
}

// Option configures a Session.
type Option func(*Session)

// WithOpener replaces source.Open, mainly for tests.
func WithOpener(open Opener) Option {
	return func(s *Session) { s.open = open }
}

// New creates a session. path is where the machine is saved after an
// import; an empty path keeps the machine in memory only.
func New(m *machine.Machine, path string, log *logger.Logger, opts ...Option) *Session {
	if log == nil {
		log = logger.Nop()
	}

	s := &Session{
		machine: m,
		path:    path,
		log:     log.With().Str("table", m.Table).Logger(),
		open:    source.Open,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Machine returns the current machine.
func (s *Session) Machine() *machine.Machine {
	return s.machine
}

func (s *Session) reader(ctx context.Context) (table.Reader, error) {
	return s.open(ctx, s.machine.Source)
}

// TableList is the classified table listing of a source.
type TableList struct {
	Data  []string
	Enums []string
}

// Tables lists the tables of the machine source, separating enum tables.
func (s *Session) Tables(ctx context.Context) (TableList, error) {
	r, err := s.reader(ctx)
	if err != nil {
		return TableList{}, err
	}
	defer r.Close()

	return listTables(ctx, r)
}

func listTables(ctx context.Context, r table.Reader) (TableList, error) {
	var out TableList

	names, err := r.ListTables(ctx)
	if err != nil {
		return out, err
	}

	// Remote readers issue one request per header.
	headers := make([][]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(headerWorkers)

	for i, name := range names {
		g.Go(func() error {
			header, err := r.ReadHeader(gctx, name)
			if err != nil {
				return err
			}

			headers[i] = header

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}

	for i, name := range names {
		if table.IsEnumTable(name, headers[i]) {
			out.Enums = append(out.Enums, name)
		} else {
			out.Data = append(out.Data, name)
		}
	}

	return out, nil
}

// ImportResult describes what an import changed.
type ImportResult struct {
	Columns schema.Schema
	Added   []string
	Dropped []string
	Diags   diagnostic.Diagnostics
}

// Import reads the header of the machine table and reconciles it with the
// stored columns. With fullReimport the stored columns are discarded. On any
// error the machine is left as it was.
func (s *Session) Import(ctx context.Context, fullReimport bool) (*ImportResult, error) {
	r, err := s.reader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	header, err := r.ReadHeader(ctx, s.machine.Table)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}

	if len(header) == 0 {
		s.log.Warnf("worksheet %s is empty, no columns imported", s.machine.Table)
		res.Diags.AddWarning(diagnostic.CodeEmptyTable, "worksheet is empty", s.machine.Table, "")
	}

	prev := s.machine.Columns
	if fullReimport {
		prev = nil
	}

	next, err := schema.Reconcile(prev, header, fullReimport)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", s.machine.Identity(), err)
	}

	res.Columns = next
	res.Added, res.Dropped = schema.Diff(prev, next)

	for _, name := range res.Added {
		s.log.Infof("column %s added", name)
		res.Diags.AddInfo(diagnostic.CodeColumnAdded, "column added", s.machine.Table, name)
	}

	for _, name := range res.Dropped {
		s.log.Infof("column %s dropped", name)
		res.Diags.AddInfo(diagnostic.CodeColumnDropped, "column dropped", s.machine.Table, name)
	}

	updated := *s.machine
	updated.Columns = next

	if s.path != "" {
		if err := machine.WriteFile(&updated, s.path); err != nil {
			return nil, err
		}
	}

	*s.machine = updated

	s.log.Infof("imported %d columns", len(next))

	return res, nil
}

// Generate renders and writes the code of the machine table.
func (s *Session) Generate(context.Context) (gen.WriteResult, error) {
	if err := machine.Check(s.machine); err != nil {
		return gen.WriteResult{}, err
	}

	if !s.machine.HasColumns() {
		s.log.Warn("no columns imported yet, generating empty types")
	}

	files, err := gen.NewGenerator(s.machine.GenConfig()).Generate(s.machine.Columns, s.machine.Identity())
	if err != nil {
		return gen.WriteResult{}, err
	}

	return s.write(files)
}

// EnumsResult is the outcome of GenerateEnums.
type EnumsResult struct {
	gen.WriteResult
	// Diags lists the enum tables that were skipped.
	Diags diagnostic.Diagnostics
}

// GenerateEnums renders enums.go from every enum table of the source. Enum
// tables without members are skipped with a warning.
func (s *Session) GenerateEnums(ctx context.Context) (*EnumsResult, error) {
	r, err := s.reader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	res := &EnumsResult{}

	tables, err := s.enumTables(ctx, r, &res.Diags)
	if err != nil {
		return nil, err
	}

	file, err := gen.NewGenerator(s.machine.GenConfig()).GenerateEnums(tables)
	if err != nil {
		return nil, err
	}

	res.WriteResult, err = s.write([]gen.GeneratedFile{file})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Session) write(files []gen.GeneratedFile) (gen.WriteResult, error) {
	res, err := gen.WriteFiles(files)
	if err != nil {
		return res, err
	}

	for _, p := range res.Written {
		s.log.Infof("wrote %s", p)
	}

	for _, p := range res.Unchanged {
		s.log.Debugf("unchanged %s", p)
	}

	return res, nil
}

// LoadResult is the outcome of a load.
type LoadResult struct {
	Container *load.Container
	Diags     diagnostic.Diagnostics
	// AssetWritten is false when the asset already held the same data.
	AssetWritten bool
}

// Load reads every row of the machine table, coerces it against the stored
// columns and writes the container asset. Cell failures are logged with
// their position and never stop the load.
func (s *Session) Load(ctx context.Context) (*LoadResult, error) {
	if err := machine.Check(s.machine); err != nil {
		return nil, err
	}

	r, err := s.reader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var (
		enums   load.Enums
		skipped diagnostic.Diagnostics
	)

	if len(s.machine.Columns.EnumTypes()) > 0 {
		tables, err := s.enumTables(ctx, r, &skipped)
		if err != nil {
			return nil, err
		}

		enums = make(load.Enums, len(tables))
		for _, t := range tables {
			enums[t.TypeName()] = t.Lookups()
		}
	}

	c, diags, err := load.Table(ctx, r, s.machine.Columns, s.machine.Identity(), enums)
	if err != nil {
		return nil, err
	}

	diags.Merge(skipped)

	for _, d := range diags.Errors {
		s.log.Warn(d.String())
	}

	res := &LoadResult{Container: c, Diags: diags}

	if s.machine.Paths.Asset != "" {
		res.AssetWritten, err = load.WriteAsset(s.machine.Paths.Asset, c)
		if err != nil {
			return nil, err
		}
	}

	s.log.Infof("loaded %d rows with %d cell errors", len(c.DataArray), len(diags.Errors))

	return res, nil
}

// enumTables reads every enum table of r. Tables without members are
// recorded in diags and left out.
func (s *Session) enumTables(ctx context.Context, r table.Reader, diags *diagnostic.Diagnostics) ([]schema.EnumTable, error) {
	list, err := listTables(ctx, r)
	if err != nil {
		return nil, err
	}

	out := make([]schema.EnumTable, 0, len(list.Enums))

	for _, name := range list.Enums {
		rows, err := r.ReadRows(ctx, name)
		if err != nil {
			return nil, err
		}

		t, err := schema.BuildEnumTable(name, rows)
		if err != nil {
			return nil, fmt.Errorf("enum table %s: %w", name, err)
		}

		if len(t.Members) == 0 {
			s.log.Warnf("enum table %s has no members, skipped", name)
			diags.AddWarning(diagnostic.CodeTableSkipped, "enum table has no members", name, "")

			continue
		}

		out = append(out, t)
	}

	return out, nil
}

// ValidateTable checks that name is a data table of the source, so a machine
// is not created for a missing or enum table.
func ValidateTable(ctx context.Context, r table.Reader, name string) error {
	list, err := listTables(ctx, r)
	if err != nil {
		return err
	}

	for _, t := range list.Data {
		if t == name {
			return nil
		}
	}

	for _, t := range list.Enums {
		if strings.EqualFold(t, name) {
			return errs.Newf(errs.KindInvalidConfig, "table %q is an enum table; use the enums command", name)
		}
	}

	return errs.Newf(errs.KindInvalidConfig, "table %q not found in %s (tables: %s)%s",
		name, r.Locator(), strings.Join(list.Data, ", "), match.Hint(name, list.Data))
}
