package render

import (
	"context"

	"github.com/goliatone/go-formlib/pkg/model"
)

// Renderer converts a form schema plus per-request state into a byte
// representation (HTML for the built-in renderer, prompt-collected values for
// the TUI one).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema model.Schema, options RenderOptions) ([]byte, error)
}
