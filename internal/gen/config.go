package gen

import (
	"go/token"
	"path/filepath"

	"sheetgen/errs"
)

// Config holds the flat path configuration of one table.
type Config struct {
	// TemplatePath is searched for template overrides. Optional.
	TemplatePath string
	// RuntimePath is the output directory of data record, container and
	// enum code.
	RuntimePath string
	// EditorPath is the output directory of the loader glue.
	EditorPath string
	// AssetPath is where loaded container data is written.
	AssetPath string
	// OnlyDataRecord skips container and glue generation.
	OnlyDataRecord bool

	// PackageName is the package clause of runtime code.
	PackageName string
	// EditorPackage is the package clause of glue code. Defaults to
	// PackageName.
	EditorPackage string
	// RuntimeImportPath is the import path of the runtime package, needed
	// when glue lives in a different package.
	RuntimeImportPath string
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		PackageName: "data",
	}
}

func (c Config) editorPackage() string {
	if c.EditorPackage != "" {
		return c.EditorPackage
	}

	return c.PackageName
}

func (c Config) glueInRuntimeDir() bool {
	return filepath.Clean(c.EditorPath) == filepath.Clean(c.RuntimePath)
}

// runtimeQualifier is the prefix glue code puts in front of runtime names.
func (c Config) runtimeQualifier() string {
	if c.glueInRuntimeDir() {
		return ""
	}

	return c.PackageName + "."
}

// Validate reports the first configuration problem as errs.KindInvalidConfig.
func (c Config) Validate() error {
	if c.RuntimePath == "" {
		return errs.New(errs.KindInvalidConfig, "runtime path is required")
	}

	if !token.IsIdentifier(c.PackageName) {
		return errs.Newf(errs.KindInvalidConfig, "package name %q is not a valid identifier", c.PackageName)
	}

	if c.OnlyDataRecord {
		return nil
	}

	if c.EditorPath == "" {
		return errs.New(errs.KindInvalidConfig, "editor path is required unless only the data record is generated")
	}

	if c.AssetPath == "" {
		return errs.New(errs.KindInvalidConfig, "asset path is required unless only the data record is generated")
	}

	if !token.IsIdentifier(c.editorPackage()) {
		return errs.Newf(errs.KindInvalidConfig, "editor package name %q is not a valid identifier", c.editorPackage())
	}

	if c.glueInRuntimeDir() {
		if c.editorPackage() != c.PackageName {
			return errs.Newf(errs.KindInvalidConfig,
				"glue package %q must match %q when both share %s", c.editorPackage(), c.PackageName, c.RuntimePath)
		}

		return nil
	}

	if c.RuntimeImportPath == "" {
		return errs.Newf(errs.KindInvalidConfig,
			"runtime import path is required when glue is generated outside %s", c.RuntimePath)
	}

	return nil
}
