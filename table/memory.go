package table

import (
	"context"
	"slices"

	"sheetgen/errs"
)

// Memory is an in-memory Reader. Tables are listed in insertion order. Put
// must not run concurrently with the read methods.
type Memory struct {
	locator string
	order   []string
	headers map[string][]string
	rows    map[string][]RawRow
}

// NewMemory creates an empty in-memory source.
func NewMemory(locator string) *Memory {
	return &Memory{
		locator: locator,
		headers: make(map[string][]string),
		rows:    make(map[string][]RawRow),
	}
}

// Put adds or replaces a table.
func (m *Memory) Put(name string, header []string, rows ...RawRow) *Memory {
	if _, ok := m.headers[name]; !ok {
		m.order = append(m.order, name)
	}

	m.headers[name] = slices.Clone(header)
	m.rows[name] = slices.Clone(rows)

	return m
}

func (m *Memory) Locator() string { return m.locator }

func (m *Memory) ListTables(context.Context) ([]string, error) {
	return slices.Clone(m.order), nil
}

func (m *Memory) ReadHeader(_ context.Context, name string) ([]string, error) {
	h, ok := m.headers[name]
	if !ok {
		return nil, errs.Newf(errs.KindSourceUnavailable, "table %q not found in %s", name, m.locator)
	}

	return slices.Clone(h), nil
}

func (m *Memory) ReadRows(_ context.Context, name string) ([]RawRow, error) {
	r, ok := m.rows[name]
	if !ok {
		return nil, errs.Newf(errs.KindSourceUnavailable, "table %q not found in %s", name, m.locator)
	}

	return slices.Clone(r), nil
}

func (m *Memory) Close() error { return nil }
