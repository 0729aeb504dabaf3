package casepdf

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// TimestampLayout is appended to generated filenames.
	TimestampLayout = "20060102_150405"

	fallbackTitle = "case"
	maxTitleRunes = 100
)

// unsafeRunes cannot appear in a filename on Windows, and '/' not on Unix.
const unsafeRunes = `<>:"/\|?*`

// Filename derives an output filename from a page title and a timestamp,
// e.g. "G.R._No._123456_20260102_150405.pdf".
func Filename(title string, now time.Time) string {
	base := sanitizeTitle(title)
	if base == "" {
		base = fallbackTitle
	}
	return base + "_" + now.Format(TimestampLayout) + ".pdf"
}

// sanitizeTitle folds diacritics to their base letters, replaces unsafe
// characters and whitespace with single underscores, and caps the length.
func sanitizeTitle(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	sep := true
	n := 0
	for _, r := range folded {
		if n >= maxTitleRunes {
			break
		}
		if r == '_' || unicode.IsSpace(r) || !unicode.IsPrint(r) || strings.ContainsRune(unsafeRunes, r) {
			if !sep {
				b.WriteByte('_')
				sep = true
				n++
			}
			continue
		}
		b.WriteRune(r)
		sep = false
		n++
	}
	return strings.Trim(b.String(), "_. ")
}
