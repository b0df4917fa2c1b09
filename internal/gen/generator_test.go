package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgen/coerce"
	"sheetgen/errs"
	"sheetgen/internal/schema"
	"sheetgen/table"
)

var itemsID = table.Identity{Locator: "testdata/game.xlsx", Table: "Items"}

func itemsSchema() schema.Schema {
	return schema.Schema{
		{Name: "Name", Type: coerce.TypeString, Ordinal: 0},
		{Name: "HP", Type: coerce.TypeInt32, Ordinal: 1},
		{Name: "Tags", Type: coerce.TypeString, IsArray: true, Ordinal: 2},
		{Name: "element", Type: coerce.TypeEnum, EnumType: "Element", Ordinal: 3},
	}
}

func testConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.RuntimePath = filepath.Join(dir, "data")
	cfg.EditorPath = filepath.Join(dir, "data")
	cfg.AssetPath = filepath.Join(dir, "assets", "items.yaml")

	return cfg
}

// squash collapses whitespace so assertions do not depend on gofmt alignment.
func squash(b []byte) string {
	return strings.Join(strings.Fields(string(b)), " ")
}

func byKind(t *testing.T, files []GeneratedFile, kind Kind) GeneratedFile {
	t.Helper()

	for _, f := range files {
		if f.Kind == kind {
			return f
		}
	}

	t.Fatalf("no %s file in %s", kind, spew.Sdump(files))

	return GeneratedFile{}
}

func TestGenerator_Generate(t *testing.T) {
	cfg := testConfig(t.TempDir())

	files, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.NoError(t, err)
	require.Len(t, files, 3)

	record := byKind(t, files, KindDataRecord)
	assert.Equal(t, "items_data.go", record.Filename)
	assert.Equal(t, cfg.RuntimePath, record.Dir)

	src := squash(record.Content)
	assert.Contains(t, src, "package data")
	assert.Contains(t, src, "type ItemsData struct {")
	assert.Contains(t, src, "Name string `yaml:\"Name\"`")
	assert.Contains(t, src, "HP int32 `yaml:\"HP\"`")
	assert.Contains(t, src, "Tags []string `yaml:\"Tags\"`")
	assert.Contains(t, src, "Element Element `yaml:\"element\"`")
	assert.Less(t, strings.Index(src, "Name string"), strings.Index(src, "HP int32"))

	container := squash(byKind(t, files, KindContainer).Content)
	assert.Contains(t, container, "DataArray []ItemsData `yaml:\"data_array\"`")
	assert.Contains(t, container, "func (c *Items) Identity() table.Identity")
	assert.Contains(t, container, "const ItemsAssetPath = ")

	glue := byKind(t, files, KindEditorGlue)
	assert.Equal(t, "items_loader.go", glue.Filename)

	body := squash(glue.Content)
	assert.Contains(t, body, "func LoadItems(ctx context.Context, r table.Reader) (*Items, []error, error)")
	assert.Contains(t, body, "if v, err := coerce.Int32(row.At(1)); err != nil")
	assert.Contains(t, body, "cellErrs = append(cellErrs, errs.At(err, i, 1))")
	assert.Contains(t, body, "rec.HP = v")
	assert.Contains(t, body, "coerce.Strings(row.At(2))")
	assert.Contains(t, body, "coerce.Enum(row.At(3), ParseElement)")
}

func TestGenerator_Generate_Idempotent(t *testing.T) {
	cfg := testConfig(t.TempDir())

	first, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.NoError(t, err)

	second, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerator_Generate_OnlyDataRecord(t *testing.T) {
	cfg := Config{PackageName: "data", RuntimePath: t.TempDir(), OnlyDataRecord: true}

	files, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, KindDataRecord, files[0].Kind)
}

func TestGenerator_Generate_EmptySchema(t *testing.T) {
	cfg := testConfig(t.TempDir())

	files, err := NewGenerator(cfg).Generate(schema.Schema{}, itemsID)
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Contains(t, squash(byKind(t, files, KindDataRecord).Content), "type ItemsData struct { }")

	glue := squash(byKind(t, files, KindEditorGlue).Content)
	assert.Contains(t, glue, "for range rows {")
	assert.NotContains(t, glue, "sheetgen/coerce")
}

func TestGenerator_Generate_SeparateGluePackage(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.EditorPath = filepath.Join(dir, "loader")
	cfg.EditorPackage = "loader"
	cfg.RuntimeImportPath = "example.com/game/data"

	files, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.NoError(t, err)

	glue := byKind(t, files, KindEditorGlue)
	assert.Equal(t, cfg.EditorPath, glue.Dir)

	body := squash(glue.Content)
	assert.Contains(t, body, "package loader")
	assert.Contains(t, body, `data "example.com/game/data"`)
	assert.Contains(t, body, "(*data.Items, []error, error)")
	assert.Contains(t, body, "var rec data.ItemsData")
	assert.Contains(t, body, "coerce.Enum(row.At(3), data.ParseElement)")
}

func TestGenerator_Generate_ConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "runtime path", mutate: func(c *Config) { c.RuntimePath = "" }},
		{name: "editor path", mutate: func(c *Config) { c.EditorPath = "" }},
		{name: "asset path", mutate: func(c *Config) { c.AssetPath = "" }},
		{name: "package name", mutate: func(c *Config) { c.PackageName = "my-data" }},
		{name: "glue elsewhere without import path", mutate: func(c *Config) {
			c.EditorPath = filepath.Join(dir, "loader")
		}},
		{name: "glue package differs in same dir", mutate: func(c *Config) { c.EditorPackage = "loader" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(dir)
			tt.mutate(&cfg)

			files, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidConfig(err), err.Error())
			assert.Nil(t, files)
		})
	}
}

func TestGenerator_Generate_SchemaErrors(t *testing.T) {
	cfg := testConfig(t.TempDir())
	g := NewGenerator(cfg)

	_, err := g.Generate(schema.Schema{{Name: "HP", Ordinal: 0}}, itemsID)
	assert.Equal(t, errs.KindCoercionTypeMismatch, errs.KindOf(err))

	_, err = g.Generate(schema.Schema{
		{Name: "npc_list", Type: coerce.TypeString, Ordinal: 0},
		{Name: "NpcList", Type: coerce.TypeString, Ordinal: 1},
	}, itemsID)
	assert.True(t, errs.IsInvalidHeader(err))

	_, err = g.Generate(itemsSchema(), table.Identity{Table: "1st"})
	assert.True(t, errs.IsInvalidHeader(err))
}

func TestGenerator_GenerateEnums(t *testing.T) {
	cfg := testConfig(t.TempDir())

	file, err := NewGenerator(cfg).GenerateEnums([]schema.EnumTable{
		{Name: "Rank", Members: []schema.EnumMember{{Name: "Low", Value: 0}, {Name: "High", Value: 1}}},
		{Name: "Element", Members: []schema.EnumMember{
			{Name: "Fire", Value: 10},
			{Name: "Water", Value: 1},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "enums.go", file.Filename)
	assert.Equal(t, KindEnumConstants, file.Kind)

	src := squash(file.Content)
	assert.Contains(t, src, "type Element int32")
	assert.Contains(t, src, "ElementFire Element = 10")
	assert.Contains(t, src, "ElementWater Element = 1")
	assert.Contains(t, src, "func ParseElement(s string) (Element, bool)")
	assert.Contains(t, src, "func (v Rank) String() string")
	assert.Less(t, strings.Index(src, "type Element"), strings.Index(src, "type Rank"))
}

func TestGenerator_GenerateEnums_Empty(t *testing.T) {
	file, err := NewGenerator(testConfig(t.TempDir())).GenerateEnums(nil)
	require.NoError(t, err)
	assert.Equal(t, "// Code generated by sheetgen. DO NOT EDIT. package data", squash(file.Content))
}

func TestGenerator_TemplateOverride(t *testing.T) {
	dir := t.TempDir()
	tmplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tmplDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "data_record.go.tmpl"),
		[]byte("package {{.Package}}\n\n// custom\ntype {{.Type}}Data struct{}\n"), 0o644))

	cfg := testConfig(dir)
	cfg.TemplatePath = tmplDir

	files, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.NoError(t, err)
	assert.Contains(t, string(byKind(t, files, KindDataRecord).Content), "// custom")
	assert.Contains(t, string(byKind(t, files, KindContainer).Content), "DO NOT EDIT")
}

func TestGenerator_BrokenTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data_record.go.tmpl"),
		[]byte("package {{.Package}}\n\ntype {{.Type}}Data struct {\n"), 0o644))

	cfg := testConfig(dir)
	cfg.TemplatePath = dir

	_, err := NewGenerator(cfg).Generate(itemsSchema(), itemsID)
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(cfg.RuntimePath, "items_data.unformatted.go"))
}
