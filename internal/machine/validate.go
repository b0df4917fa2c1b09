package machine

import (
	"fmt"

	"sheetgen/errs"
	"sheetgen/internal/diagnostic"
)

// Validate checks a machine for structural problems. Path requirements are
// checked by the generator, which knows which outputs are wanted.
func Validate(m *Machine) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError("machine_is_nil", "machine is nil", "", "")
		return res
	}

	if m.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported machine version %q", m.Version), m.Table, "")
	}

	if m.Source.Locator == "" {
		res.AddError("missing_locator", "source locator is required", m.Table, "")
	}

	if m.Table == "" {
		res.AddError("missing_table", "table name is required", "", "")
	}

	if err := m.Columns.Validate(); err != nil {
		res.AddError(errs.KindOf(err).String(), err.Error(), m.Table, "")
	}

	return res
}

// Check runs Validate and returns its errors as one errs.KindInvalidConfig
// error.
func Check(m *Machine) error {
	if err := Validate(m).Error(); err != nil {
		return errs.Wrap(errs.KindInvalidConfig, "invalid machine", err)
	}

	return nil
}
