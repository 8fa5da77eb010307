package importer

import (
	"strings"
	"unicode"
)

// sanitize strips the invisible characters that leak in from the source
// export: BOM, non-breaking space, zero-width space, plus any control or
// otherwise non-printable rune. The result is trimmed.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\ufeff', '\u00a0', '\u200b':
			continue
		}
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// stripBOM removes a leading byte-order mark. Applied to the first header
// and the first cell of every row, where exports tend to carry it.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
