// Package sqltable reads database tables as tabular sources. The header is
// the column list of the table and every row is a body row.
package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"sheetgen/source"
	"sheetgen/table"
)

// Kind is the registered source kind.
const Kind = "sql"

func init() {
	source.Register(source.Info{Kind: Kind, Label: "SQL database"}, func(ctx context.Context, spec source.Spec) (table.Reader, error) {
		return Open(ctx, spec.Locator)
	})
}

// Reader reads the tables of one database.
type Reader struct {
	locator string
	dialect dialect
	db      *sql.DB
}

// Open connects to the database named by locator and pings it.
func Open(ctx context.Context, locator string) (*Reader, error) {
	d, dsn, err := parseLocator(locator)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, source.Unavailable(locator, "open "+d.name, err)
	}

	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, source.Unavailable(locator, "connect "+d.name, err)
	}

	return &Reader{locator: locator, dialect: d, db: db}, nil
}

func (r *Reader) Locator() string { return r.locator }

func (r *Reader) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.listTables)
	if err != nil {
		return nil, source.Unavailable(r.locator, "list tables", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, source.Unavailable(r.locator, "list tables", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, source.Unavailable(r.locator, "list tables", err)
	}

	return names, nil
}

func (r *Reader) ReadHeader(ctx context.Context, name string) ([]string, error) {
	if err := r.checkTable(ctx, name); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", r.dialect.quote(name)))
	if err != nil {
		return nil, source.Unavailable(r.locator, "read header of "+name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, source.Unavailable(r.locator, "read header of "+name, err)
	}

	return table.TrimHeader(cols), nil
}

func (r *Reader) ReadRows(ctx context.Context, name string) ([]table.RawRow, error) {
	if err := r.checkTable(ctx, name); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+r.dialect.quote(name))
	if err != nil {
		return nil, source.Unavailable(r.locator, "read rows of "+name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, source.Unavailable(r.locator, "read rows of "+name, err)
	}

	var out []table.RawRow

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))

	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, source.Unavailable(r.locator, "read rows of "+name, err)
		}

		row := make(table.RawRow, len(values))
		for i, v := range values {
			row[i] = toCell(v)
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, source.Unavailable(r.locator, "read rows of "+name, err)
	}

	return out, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

func (r *Reader) checkTable(ctx context.Context, name string) error {
	names, err := r.ListTables(ctx)
	if err != nil {
		return err
	}

	if !slices.Contains(names, name) {
		return source.Unavailable(r.locator, "find table "+name, fmt.Errorf("table %q does not exist", name))
	}

	return nil
}

// toCell maps a scanned driver value to a cell.
func toCell(v any) table.Cell {
	switch x := v.(type) {
	case nil:
		return table.Empty()
	case bool:
		return table.Bool(x)
	case int64:
		return table.Number(float64(x))
	case int32:
		return table.Number(float64(x))
	case float64:
		return table.Number(x)
	case float32:
		return table.Number(float64(x))
	case []byte:
		return table.String(string(x))
	case string:
		return table.String(x)
	case time.Time:
		return table.String(x.Format(time.RFC3339))
	default:
		return table.String(fmt.Sprint(x))
	}
}
