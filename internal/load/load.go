package load

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/internal/diagnostic"
	"sheetgen/internal/gen"
	"sheetgen/internal/schema"
	"sheetgen/table"
)

// Container is the dynamic twin of a generated container type and encodes
// to the same YAML.
type Container struct {
	SourceLocator string   `yaml:"source_locator"`
	TableName     string   `yaml:"table_name"`
	DataArray     []Record `yaml:"data_array"`
}

// Enums maps enum type names to their members.
type Enums map[string]coerce.Members

// Rows coerces every row against s. A cell that fails keeps the zero value
// of its column and adds one positioned error; the record is still produced.
func Rows(s schema.Schema, id table.Identity, rows []table.RawRow, enums Enums) (*Container, []error) {
	out := &Container{
		SourceLocator: id.Locator,
		TableName:     id.Table,
		DataArray:     make([]Record, 0, len(rows)),
	}

	var cellErrs []error

	for i, row := range rows {
		rec := Record{
			names:  make([]string, 0, len(s)),
			values: make([]any, 0, len(s)),
		}

		for _, col := range s {
			v, err := coerce.Value(row.At(col.Ordinal), col.Type, col.IsArray, enums[col.EnumTypeName()])
			if err != nil {
				cellErrs = append(cellErrs, errs.At(err, i, col.Ordinal))
				v = coerce.Zero(col.Type, col.IsArray)
			}

			rec.set(col.Name, v)
		}

		out.DataArray = append(out.DataArray, rec)
	}

	return out, cellErrs
}

// Table reads the rows of id.Table from r and coerces them. Cell failures are
// returned as diagnostics; only a reader failure is an error.
func Table(ctx context.Context, r table.Reader, s schema.Schema, id table.Identity, enums Enums) (*Container, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	rows, err := r.ReadRows(ctx, id.Table)
	if err != nil {
		return nil, diags, err
	}

	c, cellErrs := Rows(s, id, rows, enums)

	for _, err := range cellErrs {
		column := ""
		if coord, ok := errs.CoordOf(err); ok {
			for _, col := range s {
				if col.Ordinal == coord.Column {
					column = col.Name
				}
			}
		}

		diags.AddCellError(id.Table, column, err)
	}

	return c, diags, nil
}

// Marshal encodes a container as YAML.
func Marshal(c *Container) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteAsset writes c to path. It reports false when the file already holds
// the same content and was left alone.
func WriteAsset(path string, c *Container) (bool, error) {
	data, err := Marshal(c)
	if err != nil {
		return false, fmt.Errorf("failed to marshal container: %w", err)
	}

	res, err := gen.WriteFiles([]gen.GeneratedFile{{
		Dir:      filepath.Dir(path),
		Filename: filepath.Base(path),
		Content:  data,
	}})
	if err != nil {
		return false, err
	}

	return len(res.Written) > 0, nil
}

// ReadAsset loads a container asset written by WriteAsset into out, which
// is usually a pointer to a generated container type.
func ReadAsset(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read asset %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse asset %s: %w", path, err)
	}

	return nil
}
