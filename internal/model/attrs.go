package model

import "strings"

// MergeClasses unions the given class names into an existing space-separated
// class list. Existing tokens keep their order; missing names append in the
// order supplied. Merging the same names again is a no-op, so repeated
// renders produce identical class lists.
func MergeClasses(existing string, names ...string) string {
	tokens := strings.Fields(existing)
	seen := make(map[string]struct{}, len(tokens)+len(names))
	for _, token := range tokens {
		seen[token] = struct{}{}
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, token := range strings.Fields(name) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, " ")
}

// MergeAttrClass folds the given class names into the field's class
// attribute in place.
func (f *Field) MergeAttrClass(names ...string) {
	if f == nil || len(names) == 0 {
		return
	}
	merged := MergeClasses(f.Attrs["class"], names...)
	if merged == "" {
		return
	}
	if f.Attrs == nil {
		f.Attrs = make(map[string]string, 1)
	}
	f.Attrs["class"] = merged
}

// ApplyFieldClasses merges the default class names into every field's class
// attribute. The merge is a set union, so applying the same defaults on every
// render leaves the schema unchanged after the first pass.
func (s *Schema) ApplyFieldClasses(names ...string) {
	if s == nil || len(names) == 0 {
		return
	}
	for i := range s.Fields {
		s.Fields[i].MergeAttrClass(names...)
	}
}
