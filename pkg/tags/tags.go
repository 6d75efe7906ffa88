// Package tags renders forms out of a template rendering context, the way a
// template tag would: look the form up by name, verify it can render itself,
// and emit the complete markup with an optional trailing fragment.
package tags

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultKey is the context key consulted when no explicit key is given.
const DefaultKey = "form"

// FullRenderer is the contract a context entry must satisfy to be rendered.
// *forms.Form and anything embedding it qualify.
type FullRenderer interface {
	RenderFull(ctx context.Context, extra string) ([]byte, error)
}

// LookupError reports a missing form key in the rendering context.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("tags: no form under key %q in rendering context", e.Key)
}

// TypeError reports a context entry that does not implement FullRenderer.
type TypeError struct {
	Key   string
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("tags: context entry %q is %T, not a renderable form", e.Key, e.Value)
}

type Option func(*config)

type config struct {
	key    string
	body   string
	policy *bluemonday.Policy
}

// WithKey overrides the context key the form is looked up under.
func WithKey(key string) Option {
	return func(cfg *config) {
		if key != "" {
			cfg.key = key
		}
	}
}

// WithBody sets the captured tag body appended inside the form after the
// declared fields. It is sanitized before embedding.
func WithBody(body string) Option {
	return func(cfg *config) {
		cfg.body = body
	}
}

// WithPolicy overrides the sanitizer applied to the tag body. The default
// is bluemonday's UGC policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Render looks up a form in the rendering context and renders its complete
// markup. A missing key yields *LookupError; an entry that cannot render
// itself yields *TypeError.
func Render(ctx context.Context, viewContext map[string]any, options ...Option) ([]byte, error) {
	cfg := config{key: DefaultKey}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	value, ok := viewContext[cfg.key]
	if !ok {
		return nil, &LookupError{Key: cfg.key}
	}
	form, ok := value.(FullRenderer)
	if !ok {
		return nil, &TypeError{Key: cfg.key, Value: value}
	}

	extra := cfg.body
	if extra != "" {
		policy := cfg.policy
		if policy == nil {
			policy = bluemonday.UGCPolicy()
		}
		extra = policy.Sanitize(extra)
	}

	return form.RenderFull(ctx, extra)
}
