package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys formlib reads when deriving default styling.
const (
	ThemeTokenFieldClass  = "forms.field.class"
	ThemeTokenFormClass   = "forms.form.class"
	ThemeTokenSubmitClass = "forms.submit.class"
)

// BuildThemeConfig folds a go-theme selection into the renderer-facing
// configuration: variant tokens overlay the manifest tokens, tokens become
// CSS variables, variant templates overlay manifest templates as partials,
// and asset lookups resolve through the manifest prefix.
func BuildThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStringMaps(manifest.Tokens, nil)
	partials := mergeStringMaps(manifest.Templates, nil)
	assets := mergeStringMaps(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStringMaps(tokens, variant.Tokens)
		partials = mergeStringMaps(partials, variant.Templates)
		assets = mergeStringMaps(assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars(tokens),
		Partials: partials,
	}
	cfg.AssetURL = assetResolver(prefix, assets)
	return cfg
}

// ThemeFieldClasses returns the default field class names a theme declares,
// falling back to the provided defaults when the theme carries none.
func ThemeFieldClasses(cfg *theme.RendererConfig, fallback []string) []string {
	if cfg == nil {
		return fallback
	}
	raw := strings.TrimSpace(cfg.Tokens[ThemeTokenFieldClass])
	if raw == "" {
		return fallback
	}
	return strings.Fields(raw)
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.ReplaceAll(strings.TrimSpace(key), ".", "-")
		if name == "" {
			continue
		}
		out["--"+name] = value
	}
	return out
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		if key == "" {
			return ""
		}
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
