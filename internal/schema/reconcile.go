package schema

import (
	"fmt"
	"sort"
	"strings"

	"sheetgen/errs"
)

// Reconcile builds the schema for a freshly read header row.
//
// When prev is empty or fullReimport is set, every header is parsed fresh.
// Otherwise columns whose cleaned name exists in prev keep their previous
// type, array flag and enum type and only take their new position; new or
// renamed columns are parsed fresh, and columns missing from fresh are
// dropped. The result is sorted by ordinal and numbered 0..n-1.
//
// Every header is validated before anything is merged: on error the result is
// nil and prev is untouched.
func Reconcile(prev Schema, fresh []string, fullReimport bool) (Schema, error) {
	parsed := make(Schema, 0, len(fresh))

	for i, raw := range fresh {
		col, err := ParseHeader(raw, i)
		if err != nil {
			return nil, fmt.Errorf("header column %d: %w", i, err)
		}

		parsed = append(parsed, col)
	}

	if err := checkUnique(parsed); err != nil {
		return nil, err
	}

	if len(prev) == 0 || fullReimport {
		return parsed, nil
	}

	previous := make(map[string]Column, len(prev))
	for _, c := range prev {
		previous[c.Name] = c
	}

	merged := make(Schema, 0, len(parsed))

	for _, col := range parsed {
		if old, ok := previous[col.Name]; ok {
			col.Type = old.Type
			col.IsArray = old.IsArray
			col.EnumType = old.EnumType
		}

		merged = append(merged, col)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Ordinal < merged[j].Ordinal
	})

	for i := range merged {
		merged[i].Ordinal = i
	}

	return merged, nil
}

func checkUnique(s Schema) error {
	seen := make(map[string]string, len(s))

	for _, c := range s {
		key := strings.ToLower(c.Name)
		if other, ok := seen[key]; ok {
			return errs.Newf(errs.KindInvalidHeaderIdentifier,
				"duplicate column header %q (already used by %q, names are case-insensitive)", c.Name, other)
		}

		seen[key] = c.Name
	}

	return nil
}
