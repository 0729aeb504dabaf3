package casepdf

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser downloads a compatible Chromium binary if one is not
// already cached and returns the path to the executable. The binary is
// stored in ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
func resolveBrowser() (string, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("%w: downloading browser: %v", ErrBrowserStart, err)
	}
	return path, nil
}

// lookBrowser returns a Chrome/Chromium executable found on this system,
// or "" when none is installed.
func lookBrowser() string {
	path, ok := launcher.LookPath()
	if !ok {
		return ""
	}
	return path
}
