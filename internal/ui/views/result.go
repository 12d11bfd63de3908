package views

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"quickbar/internal/domain"
)

// ResultRenderer handles rendering of result rows
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// RenderResult renders one row exactly width cells wide. keyboard marks a
// selection made with the keyboard, which also gets a cursor glyph.
func (r *ResultRenderer) RenderResult(res domain.SearchResult, selected, keyboard bool, query string, width int) string {
	if width < 8 {
		width = 8
	}
	kind := Classify(res)

	base := lipgloss.NewStyle()
	if selected {
		base = r.styles.Selected
	}

	marker := "  "
	if selected && keyboard {
		marker = "› "
	}

	iconCell := runewidth.FillRight(kind.Icon, 2)
	avail := width - runewidth.StringWidth(marker) - 2

	title := runewidth.Truncate(res.Title, avail, "…")
	avail -= runewidth.StringWidth(title)

	subtitle := ""
	if res.Subtitle != "" && res.Subtitle != res.Title && avail > 6 {
		subtitle = runewidth.Truncate("  "+res.Subtitle, avail, "…")
		avail -= runewidth.StringWidth(subtitle)
	}

	var b strings.Builder
	b.WriteString(r.styles.Cursor.Inherit(base).Render(marker))
	b.WriteString(r.styles.Kind.Inherit(base).Render(iconCell))
	b.WriteString(Highlight(title, query, r.styles.Title.Inherit(base), r.styles.Match.Inherit(base)))
	if subtitle != "" {
		b.WriteString(r.styles.Subtitle.Inherit(base).Render(subtitle))
	}
	if avail > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", avail)))
	}
	return b.String()
}

// Highlight renders text with every case-insensitive occurrence of query
// in matchStyle
func Highlight(text, query string, normalStyle, matchStyle lipgloss.Style) string {
	ranges := MatchRanges(text, query)
	if len(ranges) == 0 {
		return normalStyle.Render(text)
	}

	runes := []rune(text)
	var b strings.Builder
	pos := 0
	for _, rg := range ranges {
		if rg[0] > pos {
			b.WriteString(normalStyle.Render(string(runes[pos:rg[0]])))
		}
		b.WriteString(matchStyle.Render(string(runes[rg[0]:rg[1]])))
		pos = rg[1]
	}
	if pos < len(runes) {
		b.WriteString(normalStyle.Render(string(runes[pos:])))
	}
	return b.String()
}

// MatchRanges returns the non-overlapping rune ranges of text that match
// query, ignoring case
func MatchRanges(text, query string) [][2]int {
	q := []rune(strings.TrimSpace(query))
	if len(q) == 0 {
		return nil
	}
	t := []rune(text)
	for i := range q {
		q[i] = unicode.ToLower(q[i])
	}

	var out [][2]int
	for i := 0; i+len(q) <= len(t); {
		if runesEqualFold(t[i:i+len(q)], q) {
			out = append(out, [2]int{i, i + len(q)})
			i += len(q)
			continue
		}
		i++
	}
	return out
}

func runesEqualFold(a, lowered []rune) bool {
	for i := range lowered {
		if unicode.ToLower(a[i]) != lowered[i] {
			return false
		}
	}
	return true
}
