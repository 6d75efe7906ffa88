package forms

import (
	"github.com/goliatone/go-formlib/pkg/validation"
)

// IsValid runs validation on first call and reports whether the form is
// bound and every field passed. The result is sticky: repeat calls never
// re-run the pass.
func (f *Form) IsValid() bool {
	f.fullClean()
	if !f.bound {
		return false
	}
	return f.result.Valid() && len(f.formErrs) == 0
}

// CleanedData returns the coerced values for fields that passed validation.
// It is empty until IsValid has run and for unbound forms.
func (f *Form) CleanedData() map[string]any {
	f.fullClean()
	return f.result.Values
}

// Errors returns validation messages keyed by field name. Empty until
// IsValid has run.
func (f *Form) Errors() map[string][]string {
	f.fullClean()
	return f.result.Errors
}

// FormErrors returns form-level messages recorded through AddFormError.
func (f *Form) FormErrors() []string {
	return f.formErrs
}

func (f *Form) fullClean() {
	if f.validated {
		return
	}
	f.validated = true

	if !f.bound {
		return
	}

	f.result = validation.CleanValues(f.schema.Fields, f.data, f.files, f.prefix)
	f.runCleaners()
}

// runCleaners applies per-field custom cleaners to values that passed the
// declared checks. A cleaner error demotes the value to a field error.
func (f *Form) runCleaners() {
	if len(f.cleaners) == 0 {
		return
	}
	for name, clean := range f.cleaners {
		value, ok := f.result.Values[name]
		if !ok {
			continue
		}
		cleaned, err := clean(value)
		if err != nil {
			delete(f.result.Values, name)
			if f.result.Errors == nil {
				f.result.Errors = make(map[string][]string)
			}
			f.result.Errors[name] = append(f.result.Errors[name], err.Error())
			continue
		}
		f.result.Values[name] = cleaned
	}
}
