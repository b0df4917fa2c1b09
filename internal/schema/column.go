package schema

import (
	"slices"
	"strings"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/internal/naming"
)

// Column describes one schema column.
type Column struct {
	// Name is the cleaned header name.
	Name string `yaml:"name"`
	// Type is the scalar kind of the column values.
	Type coerce.SemanticType `yaml:"type"`
	// IsArray marks comma-separated collections of Type.
	IsArray bool `yaml:"array,omitempty"`
	// Ordinal is the 0-based header position.
	Ordinal int `yaml:"ordinal"`
	// EnumType names the Go enum type of an enum column.
	EnumType string `yaml:"enum,omitempty"`
}

// FieldName returns the exported Go field name of the column.
func (c Column) FieldName() string {
	return naming.Exported(c.Name)
}

// EnumTypeName returns EnumType, defaulting to the field name.
func (c Column) EnumTypeName() string {
	if c.EnumType != "" {
		return c.EnumType
	}

	return c.FieldName()
}

// Schema is an ordered column list. It is never modified in place once
// built; reconciliation returns a new Schema.
type Schema []Column

// Clone returns a copy of the schema.
func (s Schema) Clone() Schema {
	return slices.Clone(s)
}

// Names returns the column names in ordinal order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}

	return names
}

// Lookup finds a column by exact name.
func (s Schema) Lookup(name string) (Column, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// EnumTypes returns the distinct enum type names referenced by the schema,
// in column order.
func (s Schema) EnumTypes() []string {
	var out []string

	for _, c := range s {
		if c.Type != coerce.TypeEnum {
			continue
		}

		if name := c.EnumTypeName(); !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}

// Validate checks the schema: legal and unique names, known
// types, and ordinals equal to 0..n-1 in order. Schemas produced by Reconcile
// always pass; persisted schemas edited by hand may not.
func (s Schema) Validate() error {
	seen := make(map[string]string, len(s))

	for i, c := range s {
		if err := ValidateIdentifier(c.Name); err != nil {
			return err
		}

		key := strings.ToLower(c.Name)
		if other, ok := seen[key]; ok {
			return errs.Newf(errs.KindInvalidHeaderIdentifier,
				"column %q collides with column %q (names are case-insensitive)", c.Name, other)
		}

		seen[key] = c.Name

		if !c.Type.IsValid() {
			return errs.Newf(errs.KindCoercionTypeMismatch, "column %q has invalid type %s", c.Name, c.Type)
		}

		if c.Ordinal != i {
			return errs.Newf(errs.KindInvalidConfig,
				"column %q has ordinal %d, expected %d", c.Name, c.Ordinal, i)
		}
	}

	return nil
}

// Diff reports the column names present only in next (added) and only in
// prev (dropped).
func Diff(prev, next Schema) (added, dropped []string) {
	for _, c := range next {
		if _, ok := prev.Lookup(c.Name); !ok {
			added = append(added, c.Name)
		}
	}

	for _, c := range prev {
		if _, ok := next.Lookup(c.Name); !ok {
			dropped = append(dropped, c.Name)
		}
	}

	return added, dropped
}
