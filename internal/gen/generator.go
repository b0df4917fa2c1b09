package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/template"

	"sheetgen/errs"
	"sheetgen/internal/naming"
	"sheetgen/internal/schema"
	"sheetgen/table"
)

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Kind is the output kind the file was rendered from.
	Kind Kind
	// Dir is the output directory.
	Dir string
	// Filename is the name of the file (e.g., "items_data.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the output path of the file.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generator renders Go code from resolved schemas.
type Generator struct {
	config    Config
	templates map[Kind]*template.Template
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// fieldData is one column as seen by the templates.
type fieldData struct {
	Name    string
	Field   string
	GoType  string
	Ordinal int
	Coerce  string
}

// tableData feeds the data_record, container and editor_glue templates.
type tableData struct {
	Package        string
	Type           string
	Table          string
	AssetPath      string
	Columns        []fieldData
	Q              string
	RuntimeImport  string
	RuntimePackage string
}

type enumMemberData struct {
	Name  string
	Const string
	Value int64
}

type enumData struct {
	Type    string
	Table   string
	Var     string
	Members []enumMemberData
}

// enumsData feeds the enum_constants template.
type enumsData struct {
	Package string
	Enums   []enumData
}

// Generate renders the data record, and unless OnlyDataRecord is set the
// container and the loader glue, for one table. Configuration and schema
// problems are reported before anything is rendered.
func (g *Generator) Generate(s schema.Schema, id table.Identity) ([]GeneratedFile, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	typeName, err := typeIdentifier(id.Table)
	if err != nil {
		return nil, err
	}

	data, err := g.buildTableData(s, typeName, id.Table)
	if err != nil {
		return nil, err
	}

	if err := g.loadTemplates(); err != nil {
		return nil, err
	}

	base := naming.Snake(typeName)
	files := make([]GeneratedFile, 0, 3)

	record, err := g.render(KindDataRecord, g.config.RuntimePath, base+"_data.go", data)
	if err != nil {
		return nil, err
	}

	files = append(files, record)

	if g.config.OnlyDataRecord {
		return files, nil
	}

	container, err := g.render(KindContainer, g.config.RuntimePath, base+".go", data)
	if err != nil {
		return nil, err
	}

	files = append(files, container)

	glueData := *data
	glueData.Package = g.config.editorPackage()
	glueData.Q = g.config.runtimeQualifier()

	if glueData.Q != "" {
		glueData.RuntimeImport = g.config.RuntimeImportPath
		glueData.RuntimePackage = g.config.PackageName
	}

	glueData.Columns, err = g.glueColumns(s, glueData.Q)
	if err != nil {
		return nil, err
	}

	glue, err := g.render(KindEditorGlue, g.config.EditorPath, base+"_loader.go", &glueData)
	if err != nil {
		return nil, err
	}

	return append(files, glue), nil
}

// GenerateEnums renders one enums.go holding every enum table, sorted by
// name.
func (g *Generator) GenerateEnums(tables []schema.EnumTable) (GeneratedFile, error) {
	if g.config.RuntimePath == "" {
		return GeneratedFile{}, errs.New(errs.KindInvalidConfig, "runtime path is required")
	}

	if !token.IsIdentifier(g.config.PackageName) {
		return GeneratedFile{}, errs.Newf(errs.KindInvalidConfig,
			"package name %q is not a valid identifier", g.config.PackageName)
	}

	data := &enumsData{Package: g.config.PackageName}
	seen := make(map[string]string, len(tables))

	sorted := slices.Clone(tables)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, t := range sorted {
		e, err := buildEnumData(t)
		if err != nil {
			return GeneratedFile{}, err
		}

		if other, dup := seen[e.Type]; dup {
			return GeneratedFile{}, errs.Newf(errs.KindInvalidHeaderIdentifier,
				"enum tables %q and %q both map to type %s", other, t.Name, e.Type)
		}

		seen[e.Type] = t.Name
		data.Enums = append(data.Enums, e)
	}

	if err := g.loadTemplates(); err != nil {
		return GeneratedFile{}, err
	}

	return g.render(KindEnumConstants, g.config.RuntimePath, "enums.go", data)
}

func (g *Generator) loadTemplates() error {
	if g.templates != nil {
		return nil
	}

	templates, err := loadTemplates(g.config.TemplatePath)
	if err != nil {
		return err
	}

	g.templates = templates

	return nil
}

func (g *Generator) buildTableData(s schema.Schema, typeName, tableName string) (*tableData, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	data := &tableData{
		Package:   g.config.PackageName,
		Type:      typeName,
		Table:     tableName,
		AssetPath: filepath.ToSlash(g.config.AssetPath),
	}

	fields := make(map[string]string, len(s))

	for _, col := range s {
		field := col.FieldName()
		if !token.IsIdentifier(field) {
			return nil, errs.Newf(errs.KindInvalidHeaderIdentifier,
				"column %q does not produce a valid Go field name (%q)", col.Name, field)
		}

		if other, dup := fields[field]; dup {
			return nil, errs.Newf(errs.KindInvalidHeaderIdentifier,
				"columns %q and %q both map to field %s", other, col.Name, field)
		}

		fields[field] = col.Name

		t, err := goType(col, "")
		if err != nil {
			return nil, err
		}

		data.Columns = append(data.Columns, fieldData{
			Name:    col.Name,
			Field:   field,
			GoType:  t,
			Ordinal: col.Ordinal,
		})
	}

	return data, nil
}

func (g *Generator) glueColumns(s schema.Schema, qualifier string) ([]fieldData, error) {
	out := make([]fieldData, 0, len(s))

	for _, col := range s {
		expr, err := coerceExpr(col, fmt.Sprintf("row.At(%d)", col.Ordinal), qualifier)
		if err != nil {
			return nil, err
		}

		out = append(out, fieldData{
			Name:    col.Name,
			Field:   col.FieldName(),
			Ordinal: col.Ordinal,
			Coerce:  expr,
		})
	}

	return out, nil
}

func buildEnumData(t schema.EnumTable) (enumData, error) {
	typeName, err := typeIdentifier(t.Name)
	if err != nil {
		return enumData{}, err
	}

	e := enumData{
		Type:  typeName,
		Table: t.Name,
		Var:   naming.Unexported(typeName) + "Members",
	}

	consts := make(map[string]string, len(t.Members))

	for _, m := range t.Members {
		c := naming.Exported(m.Name)
		if !token.IsIdentifier(c) {
			return enumData{}, errs.Newf(errs.KindInvalidHeaderIdentifier,
				"enum %s: member %q does not produce a valid Go name", t.Name, m.Name)
		}

		if other, dup := consts[c]; dup {
			return enumData{}, errs.Newf(errs.KindInvalidHeaderIdentifier,
				"enum %s: members %q and %q both map to %s%s", t.Name, other, m.Name, typeName, c)
		}

		consts[c] = m.Name
		e.Members = append(e.Members, enumMemberData{Name: m.Name, Const: c, Value: m.Value})
	}

	return e, nil
}

// typeIdentifier turns a table name into an exported Go type name.
func typeIdentifier(tableName string) (string, error) {
	name := naming.Exported(strings.TrimSpace(tableName))
	if !token.IsIdentifier(name) || token.IsKeyword(strings.ToLower(name)) {
		return "", errs.Newf(errs.KindInvalidHeaderIdentifier,
			"table name %q does not produce a valid Go type name", tableName)
	}

	return name, nil
}

// render executes the template of kind and formats the result.
func (g *Generator) render(kind Kind, dir, filename string, data any) (GeneratedFile, error) {
	var buf bytes.Buffer
	if err := g.templates[kind].Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing %s template: %w", kind, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		_ = writeDebugUnformatted(dir, filename, buf.Bytes())

		return GeneratedFile{}, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return GeneratedFile{
		Kind:     kind,
		Dir:      dir,
		Filename: filename,
		Content:  formatted,
	}, nil
}
