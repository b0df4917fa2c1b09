package gen

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
)

// Kind names one generated output.
type Kind string

const (
	KindDataRecord    Kind = "data_record"
	KindContainer     Kind = "container"
	KindEditorGlue    Kind = "editor_glue"
	KindEnumConstants Kind = "enum_constants"
)

// Kinds lists every output kind in generation order.
var Kinds = []Kind{KindDataRecord, KindContainer, KindEditorGlue, KindEnumConstants}

const templateExt = ".go.tmpl"

//go:embed templates/*.go.tmpl
var builtinTemplates embed.FS

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

// loadTemplates parses the template of every kind, preferring overrides found
// in dir.
func loadTemplates(dir string) (map[Kind]*template.Template, error) {
	out := make(map[Kind]*template.Template, len(Kinds))

	for _, kind := range Kinds {
		name := string(kind) + templateExt

		text, err := readOverride(dir, name)
		if err != nil {
			return nil, err
		}

		if text == nil {
			text, err = builtinTemplates.ReadFile("templates/" + name)
			if err != nil {
				return nil, fmt.Errorf("reading built-in template %s: %w", name, err)
			}
		}

		tmpl, err := template.New(name).Funcs(templateFuncs).Parse(string(text))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		out[kind] = tmpl
	}

	return out, nil
}

func readOverride(dir, name string) ([]byte, error) {
	if dir == "" {
		return nil, nil
	}

	text, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading template override %s: %w", name, err)
	}

	return text, nil
}
