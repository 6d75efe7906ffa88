package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/widgets/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want to
// extend the built-in form rendering.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
