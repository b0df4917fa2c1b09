// Package source opens table readers by kind.
//
// Reader implementations live in sub-packages, one per kind, and register
// themselves from init():
//
//	import _ "sheetgen/source/xlsx"
//
//	r, err := source.Open(ctx, source.Spec{Kind: "xlsx", Locator: "game.xlsx"})
package source

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"sheetgen/errs"
	"sheetgen/table"
)

// Spec selects and configures one tabular source. It is persisted in the
// machine file.
type Spec struct {
	// Kind is the registered reader kind, e.g. "xlsx" or "gsheet".
	Kind string `yaml:"kind"`
	// Locator is a file path, a spreadsheet id, an object URL or a DSN.
	Locator string `yaml:"locator"`
	// Options carries kind specific settings such as credentials files.
	Options map[string]string `yaml:"options,omitempty"`
}

// Option returns the option key, or def when unset.
func (s Spec) Option(key, def string) string {
	if v, ok := s.Options[key]; ok && v != "" {
		return v
	}

	return def
}

// Opener opens a reader for spec.
type Opener func(ctx context.Context, spec Spec) (table.Reader, error)

// Info describes a registered kind.
type Info struct {
	Kind  string
	Label string
	// Local kinds read files from the local file system and can be watched
	// for changes; the others are polled.
	Local bool
}

type registration struct {
	info Info
	open Opener
}

var (
	registryMu sync.RWMutex
	registry   = map[string]registration{}
)

// Register makes a reader kind available to Open. Called from init() in each
// reader package.
func Register(info Info, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[info.Kind] = registration{info: info, open: open}
}

// Lookup returns the registered info of kind.
func Lookup(kind string) (Info, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	r, ok := registry[kind]

	return r.info, ok
}

// Kinds returns the registered kinds, sorted.
func Kinds() []Info {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Info, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.info)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })

	return out
}

// Open opens a reader for spec. An empty Kind is detected from the locator.
func Open(ctx context.Context, spec Spec) (table.Reader, error) {
	if spec.Kind == "" {
		spec.Kind = Detect(spec.Locator)
	}

	if spec.Locator == "" {
		return nil, errs.Newf(errs.KindInvalidConfig, "source %q: locator is required", spec.Kind)
	}

	registryMu.RLock()
	r, ok := registry[spec.Kind]
	registryMu.RUnlock()

	if !ok {
		return nil, errs.Newf(errs.KindInvalidConfig, "unknown source kind %q", spec.Kind)
	}

	return r.open(ctx, spec)
}

// Detect guesses the kind of a locator:
//
//	s3://bucket/key.xlsx        -> objstore
//	sqlite:, mysql:, postgres:  -> sql
//	*.xlsx, *.xlsm              -> xlsx
//	*.csv or a directory        -> csv
//	anything else               -> gsheet (a spreadsheet id)
func Detect(locator string) string {
	lower := strings.ToLower(locator)

	switch {
	case strings.HasPrefix(lower, "s3://"):
		return "objstore"
	case strings.HasPrefix(lower, "sqlite:"),
		strings.HasPrefix(lower, "mysql:"),
		strings.HasPrefix(lower, "postgres:"),
		strings.HasPrefix(lower, "postgresql:"):
		return "sql"
	}

	switch filepath.Ext(lower) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".csv":
		return "csv"
	}

	if strings.ContainsAny(locator, `/\`) || strings.HasPrefix(locator, ".") {
		return "csv"
	}

	return "gsheet"
}

// Unavailable wraps a reader failure as errs.KindSourceUnavailable.
func Unavailable(locator, op string, err error) error {
	return errs.Wrap(errs.KindSourceUnavailable, locator+": "+op, err)
}
