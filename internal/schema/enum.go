package schema

import (
	"strings"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/internal/naming"
	"sheetgen/table"
)

// EnumMember is one named enum constant.
type EnumMember struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// EnumTable describes a table used to emit an enum type instead of a record.
type EnumTable struct {
	Name    string       `yaml:"name"`
	Members []EnumMember `yaml:"members"`
}

// TypeName is the Go type name of the enum. Enum columns refer to it through
// Column.EnumTypeName.
func (t EnumTable) TypeName() string {
	return naming.Exported(strings.TrimSpace(t.Name))
}

// Lookups converts the members for coercion lookups.
func (t EnumTable) Lookups() coerce.Members {
	out := make(coerce.Members, len(t.Members))
	for i, m := range t.Members {
		out[i] = coerce.Member{Name: m.Name, Value: m.Value}
	}

	return out
}

// BuildEnumTable reads enum members from the body rows of an enum table.
// The first column holds the member name. The second column, when present
// and non-empty, holds the member value; otherwise the value is the member's
// position in the list. Rows with a blank name are skipped.
func BuildEnumTable(name string, rows []table.RawRow) (EnumTable, error) {
	if err := ValidateIdentifier(name); err != nil {
		return EnumTable{}, err
	}

	out := EnumTable{Name: name}
	seen := make(map[string]struct{})

	for r, row := range rows {
		member := strings.TrimSpace(row.At(0).Text())
		if member == "" {
			continue
		}

		if err := ValidateIdentifier(member); err != nil {
			return EnumTable{}, errs.At(err, r, 0)
		}

		key := strings.ToLower(member)
		if _, dup := seen[key]; dup {
			return EnumTable{}, errs.At(errs.Newf(errs.KindInvalidHeaderIdentifier,
				"enum %s: duplicate member %q", name, member), r, 0)
		}

		seen[key] = struct{}{}

		value := int64(len(out.Members))

		if v := row.At(1); strings.TrimSpace(v.Text()) != "" {
			n, err := coerce.Int32(v)
			if err != nil {
				return EnumTable{}, errs.At(err, r, 1)
			}

			value = int64(n)
		}

		out.Members = append(out.Members, EnumMember{Name: member, Value: value})
	}

	return out, nil
}
