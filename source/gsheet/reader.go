// Package gsheet reads tables from a Google spreadsheet. The locator is the
// spreadsheet id and each sheet is a table.
//
// Credentials come from the "credentials" option (a service account or OAuth
// client JSON file), the "api_key" option, or the application default
// credentials.
package gsheet

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"sheetgen/source"
	"sheetgen/table"
)

// Kind is the registered source kind.
const Kind = "gsheet"

func init() {
	source.Register(source.Info{Kind: Kind, Label: "Google spreadsheet"}, func(ctx context.Context, spec source.Spec) (table.Reader, error) {
		var opts []option.ClientOption

		if path := spec.Option("credentials", ""); path != "" {
			opts = append(opts, option.WithCredentialsFile(path))
		}

		if key := spec.Option("api_key", ""); key != "" {
			opts = append(opts, option.WithAPIKey(key))
		}

		return Open(ctx, spec.Locator, opts...)
	})
}

// api is the part of the Sheets service the reader uses.
type api interface {
	sheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	values(ctx context.Context, spreadsheetID, rng, render string) ([][]any, error)
}

type serviceAPI struct {
	svc *sheets.Service
}

func (s serviceAPI) sheetTitles(ctx context.Context, id string) ([]string, error) {
	ss, err := s.svc.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}

	return titles, nil
}

func (s serviceAPI) values(ctx context.Context, id, rng, render string) ([][]any, error) {
	vr, err := s.svc.Spreadsheets.Values.Get(id, rng).ValueRenderOption(render).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return vr.Values, nil
}

// Reader reads the sheets of one spreadsheet. Every call is one request.
type Reader struct {
	id  string
	api api
}

// Open creates a Sheets client for the spreadsheet id.
func Open(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Reader, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, source.Unavailable(spreadsheetID, "create sheets client", err)
	}

	return &Reader{id: spreadsheetID, api: serviceAPI{svc: svc}}, nil
}

func (r *Reader) Locator() string { return r.id }

func (r *Reader) ListTables(ctx context.Context) ([]string, error) {
	titles, err := r.api.sheetTitles(ctx, r.id)
	if err != nil {
		return nil, source.Unavailable(r.id, "list sheets", err)
	}

	return titles, nil
}

func (r *Reader) ReadHeader(ctx context.Context, sheet string) ([]string, error) {
	values, err := r.api.values(ctx, r.id, a1Range(sheet, "1:1"), "FORMATTED_VALUE")
	if err != nil {
		return nil, source.Unavailable(r.id, "read header of "+sheet, err)
	}

	if len(values) == 0 {
		return []string{}, nil
	}

	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = fmt.Sprint(v)
	}

	return table.TrimHeader(header), nil
}

func (r *Reader) ReadRows(ctx context.Context, sheet string) ([]table.RawRow, error) {
	values, err := r.api.values(ctx, r.id, a1Range(sheet, "2:1048576"), "UNFORMATTED_VALUE")
	if err != nil {
		return nil, source.Unavailable(r.id, "read rows of "+sheet, err)
	}

	rows := make([]table.RawRow, 0, len(values))

	for _, rec := range values {
		row := make(table.RawRow, len(rec))
		for i, v := range rec {
			row[i] = toCell(v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (r *Reader) Close() error { return nil }

// a1Range quotes a sheet name for A1 notation.
func a1Range(sheet, rng string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + rng
}

// toCell maps a decoded UNFORMATTED_VALUE to a cell.
func toCell(v any) table.Cell {
	switch x := v.(type) {
	case nil:
		return table.Empty()
	case bool:
		return table.Bool(x)
	case float64:
		return table.Number(x)
	case string:
		if x == "" {
			return table.Empty()
		}

		return table.String(x)
	default:
		return table.String(fmt.Sprint(x))
	}
}
