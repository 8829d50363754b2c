package tally

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// compose lays the resolved widget sequence into a line of b.size cells.
// Literal text and fixed widgets consume their measured width first;
// whatever remains is split between expanding widgets, each taking the
// ceiling of an equal share so the last one resolved absorbs the
// rounding remainder. Widths are measured in terminal cells, not bytes.
func (b *Bar) compose(entries []any) (string, error) {
	space := b.size
	frags := make([]string, len(entries))
	var pending []int // indices of expanding widgets, in appearance order

	for i, entry := range entries {
		switch v := entry.(type) {
		case string:
			frags[i] = v
			space -= runewidth.StringWidth(v)
		case Widget:
			if ex, ok := v.(Expander); ok && ex.Expanding() {
				pending = append(pending, i)
				continue
			}
			text := v.Render(b, 0)
			frags[i] = text
			space -= runewidth.StringWidth(text)
		default:
			return "", fmt.Errorf("%w: %T", ErrBadWidget, entry)
		}
	}

	for n := len(pending); n > 0; n-- {
		width := (space + n - 1) / n
		if width < 0 {
			width = 0
		}
		idx := pending[len(pending)-n]
		text := entries[idx].(Widget).Render(b, width)
		frags[idx] = text
		space -= runewidth.StringWidth(text)
	}

	return strings.Join(frags, ""), nil
}
