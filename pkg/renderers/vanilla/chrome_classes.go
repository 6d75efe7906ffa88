package vanilla

// ChromeClass is a typed identifier for the semantic chrome CSS classes the
// built-in templates emit.
type ChromeClass string

const (
	ClassForm     ChromeClass = "formlib-form"
	ClassField    ChromeClass = "formlib-field"
	ClassLabel    ChromeClass = "formlib-label"
	ClassHelp     ChromeClass = "formlib-help"
	ClassErrors   ChromeClass = "formlib-errors"
	ClassActions  ChromeClass = "formlib-actions"
	ClassRequired ChromeClass = "formlib-required"
)

// Default submit label used when neither the schema nor the render options
// provide one.
const DefaultSubmitText = "Submit"
