package table

import (
	"context"
	"strings"
)

// Identity names the physical table a schema or a container came from.
type Identity struct {
	// Locator identifies the source: a file path, a spreadsheet id, a DSN or
	// an object URL depending on the reader.
	Locator string `yaml:"locator"`
	// Table is the table (sheet) name inside the source.
	Table string `yaml:"table"`
}

func (id Identity) String() string {
	return id.Locator + "#" + id.Table
}

// Reader opens one tabular source and exposes its tables.
//
// Every method either returns a complete result or fails; failures are
// reported as errs.KindSourceUnavailable. The read methods must be safe for
// concurrent use; callers read the headers of several tables at once.
type Reader interface {
	// Locator returns the source locator this reader was opened with.
	Locator() string
	// ListTables returns the names of all tables in the source.
	ListTables(ctx context.Context) ([]string, error)
	// ReadHeader returns the raw header cell text of table, in column order.
	ReadHeader(ctx context.Context, table string) ([]string, error)
	// ReadRows returns every body row of table (the header row excluded).
	ReadRows(ctx context.Context, table string) ([]RawRow, error)
	// Close releases the source.
	Close() error
}

// IsEnumTable reports whether a table follows the enum table convention: its
// first header cell equals the table name.
func IsEnumTable(name string, header []string) bool {
	return len(header) > 0 && strings.TrimSpace(header[0]) == name
}

// TrimHeader drops trailing blank header cells. Readers call it so that
// spreadsheets with formatted but empty trailing columns keep a clean header.
func TrimHeader(header []string) []string {
	end := len(header)
	for end > 0 && strings.TrimSpace(header[end-1]) == "" {
		end--
	}

	return header[:end]
}
