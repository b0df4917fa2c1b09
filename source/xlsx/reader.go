// Package xlsx reads tables from Excel workbooks. Each worksheet is a table.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"sheetgen/source"
	"sheetgen/table"
)

// Kind is the registered source kind.
const Kind = "xlsx"

func init() {
	source.Register(source.Info{Kind: Kind, Label: "Excel workbook", Local: true}, func(_ context.Context, spec source.Spec) (table.Reader, error) {
		return Open(spec.Locator)
	})
}

// Reader reads the worksheets of one workbook. Reads are serialized since
// row iterators share the workbook's decoder state.
type Reader struct {
	locator string
	file    *excelize.File
	mu      sync.Mutex
}

// Open opens the workbook at path.
func Open(path string) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, source.Unavailable(path, "open workbook", err)
	}

	return &Reader{locator: path, file: f}, nil
}

// OpenReader reads a workbook from r. locator is reported by Locator.
func OpenReader(locator string, r io.Reader) (*Reader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, source.Unavailable(locator, "open workbook", err)
	}

	return &Reader{locator: locator, file: f}, nil
}

func (r *Reader) Locator() string { return r.locator }

func (r *Reader) ListTables(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.file.GetSheetList(), nil
}

func (r *Reader) ReadHeader(_ context.Context, sheet string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkSheet(sheet); err != nil {
		return nil, err
	}

	rows, err := r.file.Rows(sheet)
	if err != nil {
		return nil, source.Unavailable(r.locator, "read header of "+sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return []string{}, rows.Error()
	}

	header, err := rows.Columns()
	if err != nil {
		return nil, source.Unavailable(r.locator, "read header of "+sheet, err)
	}

	return table.TrimHeader(header), nil
}

func (r *Reader) ReadRows(_ context.Context, sheet string) ([]table.RawRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkSheet(sheet); err != nil {
		return nil, err
	}

	values, err := r.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, source.Unavailable(r.locator, "read rows of "+sheet, err)
	}

	if len(values) < 2 {
		return nil, nil
	}

	rows := make([]table.RawRow, 0, len(values)-1)

	for i, rec := range values[1:] {
		row := make(table.RawRow, len(rec))

		for j, raw := range rec {
			cell, err := r.cell(sheet, j+1, i+2, raw)
			if err != nil {
				return nil, source.Unavailable(r.locator, "read rows of "+sheet, err)
			}

			row[j] = cell
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (r *Reader) Close() error {
	return r.file.Close()
}

func (r *Reader) checkSheet(sheet string) error {
	idx, err := r.file.GetSheetIndex(sheet)
	if err != nil {
		return source.Unavailable(r.locator, "find sheet "+sheet, err)
	}

	if idx < 0 {
		return source.Unavailable(r.locator, "find sheet "+sheet, fmt.Errorf("sheet %q does not exist", sheet))
	}

	return nil
}

// cell types the raw value of the cell at (col, row), both 1-based. Cells
// without a type attribute hold numbers; formulas yield their cached value.
func (r *Reader) cell(sheet string, col, row int, raw string) (table.Cell, error) {
	if raw == "" {
		return table.Empty(), nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return table.Cell{}, err
	}

	typ, err := r.file.GetCellType(sheet, name)
	if err != nil {
		return table.Cell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return table.Bool(raw == "1" || raw == "TRUE"), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return table.Number(v), nil
		}
	}

	return table.String(raw), nil
}
