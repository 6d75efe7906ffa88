package vanilla

import (
	"html"
	"sort"
	"strings"
)

// attrString serialises field presentation attributes into escaped HTML
// attribute pairs with a leading space. The "widget" key is a resolution
// hint, not markup, so it never reaches the output.
func attrString(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		key = strings.TrimSpace(key)
		if key == "" || key == "widget" {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(key))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attrs[key]))
		builder.WriteByte('"')
	}
	return builder.String()
}

// cssVarsStyle renders theme CSS variables as an inline style declaration.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+vars[name])
	}
	return strings.Join(parts, "; ")
}
