package machine

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sheetgen/internal/naming"
	"sheetgen/source"
)

const filePerm = 0o644

// New returns a machine for table in the given source with default paths.
func New(spec source.Spec, tableName string) *Machine {
	m := &Machine{Source: spec, Table: tableName}
	ApplyDefaults(m)

	return m
}

// LoadFile loads and parses a YAML machine file from the given path.
func LoadFile(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Machine.
func Parse(data []byte) (*Machine, error) {
	var m Machine

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse machine YAML: %w", err)
	}

	ApplyDefaults(&m)

	return &m, nil
}

// ApplyDefaults fills in default values for optional fields.
func ApplyDefaults(m *Machine) {
	if m.Version == "" {
		m.Version = CurrentVersion
	}

	if m.Source.Kind == "" && m.Source.Locator != "" {
		m.Source.Kind = source.Detect(m.Source.Locator)
	}

	if m.Package == "" {
		m.Package = "data"
	}

	if m.Paths.Runtime == "" {
		m.Paths.Runtime = m.Package
	}

	if m.Paths.Editor == "" && !m.Paths.OnlyDataRecord {
		m.Paths.Editor = m.Paths.Runtime
	}

	if m.Paths.Asset == "" && !m.Paths.OnlyDataRecord && m.Table != "" {
		m.Paths.Asset = filepath.Join("assets", naming.Snake(m.Table)+".yaml")
	}
}

// Marshal serializes a Machine to YAML.
func Marshal(m *Machine) ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteFile writes a Machine to the given path, creating its directory.
func WriteFile(m *Machine, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal machine: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write machine file %s: %w", path, err)
	}

	return nil
}
