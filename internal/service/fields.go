package service

import (
	"fmt"

	"scheduling/internal/repository"
	"scheduling/internal/validation"
)

// text reads a field as a string, rendering non-string scalars the way they were sent.
func text(p validation.Payload, field string) string {
	switch v := p.Raw(field).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// identifier returns the caller supplied owner reference, "" when none was sent.
func identifier(p validation.Payload, field string) string {
	if !p.Truthy(field) {
		return ""
	}
	return text(p, field)
}

// setText copies a required text field. Empty values keep the stored one.
func setText(patch repository.Patch, p validation.Payload, fields ...string) {
	for _, f := range fields {
		if p.Truthy(f) {
			patch[f] = text(p, f)
		}
	}
}

// setOptionalText copies a text field that may be cleared by sending "" or null.
func setOptionalText(patch repository.Patch, p validation.Payload, fields ...string) {
	for _, f := range fields {
		if p.Has(f) {
			patch[f] = text(p, f)
		}
	}
}
