package casepdf

import (
	"fmt"
	"regexp"
	"strings"
)

// citationPattern matches the "G.R. No." label in any dotting, spacing, or
// case, an optional "L-" prefix used by pre-1970 dockets, and the digits.
var citationPattern = regexp.MustCompile(`(?i)\bg\s*\.?\s*r\s*\.?\s*nos?\s*\.?\s*(?:l\s*-\s*)?(\d+)`)

// Citation is a Supreme Court citation reduced to its docket number.
type Citation struct {
	// Raw is the input exactly as given, trimmed of surrounding space.
	Raw string
	// Number is the numeric G.R. identifier, digits only.
	Number string
}

// ParseCitation extracts the G.R. number from s. It returns [ErrNoCitation]
// when s contains no recognisable citation.
func ParseCitation(s string) (Citation, error) {
	raw := strings.TrimSpace(s)
	m := citationPattern.FindStringSubmatch(raw)
	if m == nil {
		return Citation{}, fmt.Errorf("%w: %q", ErrNoCitation, raw)
	}
	return Citation{Raw: raw, Number: m[1]}, nil
}

// String returns the canonical "G.R. No. n" form.
func (c Citation) String() string {
	return "G.R. No. " + c.Number
}
