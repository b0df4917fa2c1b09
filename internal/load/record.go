// Package load materializes table rows into typed records without generated
// code, and writes them as the container asset the generated container type
// reads.
package load

import (
	"gopkg.in/yaml.v3"

	"sheetgen/coerce"
)

// Record is one coerced row: column values in ordinal order.
type Record struct {
	names  []string
	values []any
}

// Names returns the column names in order.
func (r Record) Names() []string {
	return r.names
}

// Get returns the value of column name.
func (r Record) Get(name string) (any, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}

	return nil, false
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.names)
}

func (r *Record) set(name string, v any) {
	r.names = append(r.names, name)
	r.values = append(r.values, v)
}

// MarshalYAML writes the record as a mapping that keeps column order. Enum
// members are written as their integer values.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for i, name := range r.names {
		var value yaml.Node
		if err := value.Encode(assetValue(r.values[i])); err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}

	return node, nil
}

func assetValue(v any) any {
	switch x := v.(type) {
	case coerce.Member:
		return x.Value
	case []coerce.Member:
		out := make([]int64, len(x))
		for i, m := range x {
			out[i] = m.Value
		}

		return out
	default:
		return v
	}
}
