package main

import (
	"errors"
	"os"
	"strings"

	casepdf "github.com/porticus-lab/go-casepdf"
)

// inContainer detects Docker and similar runtimes.
var inContainer = func() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// hintFor returns an actionable "hint:" line for common failures, or "".
func hintFor(err error) string {
	var hints []string
	switch {
	case errors.Is(err, casepdf.ErrBrowserStart):
		if os.Geteuid() == 0 || inContainer() || os.Getenv("CI") != "" {
			hints = append(hints, "use --no-sandbox when running as root or in Docker/CI")
		}
		hints = append(hints, "install Chrome/Chromium, pass --chrome-path, or use --auto-download")
	case errors.Is(err, casepdf.ErrNoCitation):
		hints = append(hints, `expected a citation like "G.R. No. 123456"`)
	case errors.Is(err, casepdf.ErrSearch), errors.Is(err, casepdf.ErrNoMatch):
		hints = append(hints, "try --engine duckduckgo or --no-headless to inspect the results page, or pass --url directly")
	case errors.Is(err, casepdf.ErrNavigate):
		hints = append(hints, "for slow connections raise --timeout")
	}
	if len(hints) == 0 {
		return ""
	}
	return "hint: " + strings.Join(hints, "; ")
}
