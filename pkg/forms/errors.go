package forms

import "fmt"

// ConfigError reports a fatal construction problem: conflicting argument
// names, wrong argument types, or a nil declaration. It always indicates a
// programming error in the caller, never bad user input.
type ConfigError struct {
	// Name is the offending argument or option name, when one applies.
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("forms: config error for %q: %s", e.Name, e.Reason)
	}
	return "forms: config error: " + e.Reason
}
