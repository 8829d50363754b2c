package tally

import (
	"regexp"
	"strings"
)

var (
	tagPattern = regexp.MustCompile(`\{[a-zA-Z0-9_]+\}`)
	tagToken   = regexp.MustCompile(`^\{[a-zA-Z0-9_]+\}$`)
)

// resolve expands template strings in entries into widget instances.
// Instance-local variables win over the registry; unknown tags stay
// literal so a typo renders visibly instead of failing. nil entries are
// dropped and ready widgets pass through, which makes resolve safe to
// re-run over an already resolved sequence after a late Register call.
func (b *Bar) resolve(entries []any) []any {
	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case nil:
			continue
		case Widget:
			out = append(out, v)
		case string:
			for _, item := range splitTemplate(v) {
				if name, ok := tagName(item); ok {
					if w, ok := b.vars[name]; ok {
						out = append(out, w)
						continue
					}
					if w, ok := b.registry.Widget(name); ok {
						out = append(out, w)
						continue
					}
				}
				out = append(out, item)
			}
		default:
			// left for compose to report as a type error
			out = append(out, entry)
		}
	}
	return out
}

// splitTemplate cuts a template into literal fragments and {tag} tokens,
// preserving order.
func splitTemplate(s string) []string {
	var parts []string
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			parts = append(parts, s[last:loc[0]])
		}
		parts = append(parts, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		parts = append(parts, s[last:])
	}
	return parts
}

// tagName extracts the lowercased tag from a "{tag}" token.
func tagName(s string) (string, bool) {
	if !tagToken.MatchString(s) {
		return "", false
	}
	return strings.ToLower(s[1 : len(s)-1]), true
}
