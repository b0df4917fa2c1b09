package machine

import (
	"sheetgen/internal/gen"
	"sheetgen/internal/schema"
	"sheetgen/source"
	"sheetgen/table"
)

// CurrentVersion is written to new machine files.
const CurrentVersion = "1"

// Machine is the persisted state of one table.
type Machine struct {
	Version string        `yaml:"version"`
	Source  source.Spec   `yaml:"source"`
	Table   string        `yaml:"table"`
	Columns schema.Schema `yaml:"columns,omitempty"`
	Paths   Paths         `yaml:"paths"`

	// Package is the package clause of the generated runtime code.
	Package string `yaml:"package,omitempty"`
	// EditorPackage is the package clause of the generated loader glue.
	EditorPackage string `yaml:"editor_package,omitempty"`
	// RuntimeImport is the import path of the runtime package.
	RuntimeImport string `yaml:"runtime_import,omitempty"`
}

// Paths is the flat path configuration of a table.
type Paths struct {
	Templates      string `yaml:"templates,omitempty"`
	Runtime        string `yaml:"runtime"`
	Editor         string `yaml:"editor,omitempty"`
	Asset          string `yaml:"asset,omitempty"`
	OnlyDataRecord bool   `yaml:"only_data_record,omitempty"`
}

// Identity returns the table identity the machine points at.
func (m *Machine) Identity() table.Identity {
	return table.Identity{Locator: m.Source.Locator, Table: m.Table}
}

// HasColumns reports whether a schema has been imported.
func (m *Machine) HasColumns() bool {
	return len(m.Columns) > 0
}

// GenConfig returns the generator configuration of the machine.
func (m *Machine) GenConfig() gen.Config {
	return gen.Config{
		TemplatePath:      m.Paths.Templates,
		RuntimePath:       m.Paths.Runtime,
		EditorPath:        m.Paths.Editor,
		AssetPath:         m.Paths.Asset,
		OnlyDataRecord:    m.Paths.OnlyDataRecord,
		PackageName:       m.Package,
		EditorPackage:     m.EditorPackage,
		RuntimeImportPath: m.RuntimeImport,
	}
}
