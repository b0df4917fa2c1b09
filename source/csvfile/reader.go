// Package csvfile reads tables from CSV files. A locator names either one
// .csv file, which holds a single table named after the file, or a directory
// whose .csv files are its tables.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"sheetgen/source"
	"sheetgen/table"
)

// Kind is the registered source kind.
const Kind = "csv"

const ext = ".csv"

func init() {
	source.Register(source.Info{Kind: Kind, Label: "CSV files", Local: true}, func(_ context.Context, spec source.Spec) (table.Reader, error) {
		return Open(spec.Locator, spec.Option("delimiter", ","))
	})
}

// Reader reads CSV tables.
type Reader struct {
	locator string
	dir     string
	single  string // table name when locator is a file
	comma   rune
}

// Open checks that locator exists and returns a reader for it.
func Open(locator, delimiter string) (*Reader, error) {
	fi, err := os.Stat(locator)
	if err != nil {
		return nil, source.Unavailable(locator, "open", err)
	}

	r := &Reader{locator: locator, comma: ','}
	if delimiter != "" {
		r.comma = []rune(delimiter)[0]
	}

	if fi.IsDir() {
		r.dir = locator
	} else {
		r.dir = filepath.Dir(locator)
		r.single = strings.TrimSuffix(filepath.Base(locator), filepath.Ext(locator))
	}

	return r, nil
}

func (r *Reader) Locator() string { return r.locator }

func (r *Reader) ListTables(ctx context.Context) ([]string, error) {
	if r.single != "" {
		return []string{r.single}, nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, source.Unavailable(r.locator, "list tables", err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}

		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}

	sort.Strings(names)

	return names, nil
}

func (r *Reader) ReadHeader(ctx context.Context, name string) ([]string, error) {
	records, err := r.read(name)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return []string{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = norm.NFC.String(h)
	}

	return table.TrimHeader(header), nil
}

func (r *Reader) ReadRows(ctx context.Context, name string) ([]table.RawRow, error) {
	records, err := r.read(name)
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, nil
	}

	rows := make([]table.RawRow, 0, len(records)-1)

	for _, rec := range records[1:] {
		row := make(table.RawRow, len(rec))
		for i, v := range rec {
			row[i] = parseCell(v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (r *Reader) Close() error { return nil }

func (r *Reader) path(name string) (string, error) {
	if r.single != "" {
		if name != r.single {
			return "", fmt.Errorf("table %q not found", name)
		}

		return r.locator, nil
	}

	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid table name %q", name)
	}

	return filepath.Join(r.dir, name+ext), nil
}

// read parses the whole file. A UTF-8 or UTF-16 byte order mark is honoured
// and removed.
func (r *Reader) read(name string) ([][]string, error) {
	p, err := r.path(name)
	if err != nil {
		return nil, source.Unavailable(r.locator, "read "+name, err)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, source.Unavailable(r.locator, "read "+name, err)
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.Comma = r.comma
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var records [][]string

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, source.Unavailable(r.locator, "parse "+name, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseCell keeps CSV text as strings except for the spreadsheet boolean
// literals, which become bool cells so bool columns can load them.
func parseCell(v string) table.Cell {
	switch s := strings.TrimSpace(v); {
	case s == "":
		return table.Empty()
	case strings.EqualFold(s, "TRUE"):
		return table.Bool(true)
	case strings.EqualFold(s, "FALSE"):
		return table.Bool(false)
	default:
		return table.String(v)
	}
}
