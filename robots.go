package casepdf

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsChecker decides whether the archive's robots.txt lets us fetch a
// page. It is consulted at most once per render, so nothing is cached.
type robotsChecker struct {
	client    *http.Client
	userAgent string
}

func newRobotsChecker(userAgent string, timeout time.Duration) *robotsChecker {
	return &robotsChecker{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// allowed reports whether rawURL may be fetched. An unreachable or
// unparsable robots.txt allows everything.
func (r *robotsChecker) allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return true, nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return true, nil
	}
	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, productToken(r.userAgent)), nil
}

// productToken reduces a full User-Agent header to the name robots.txt
// groups are keyed by, e.g. "casepdf/1.0 (+url)" -> "casepdf".
func productToken(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return "*"
	}
	return strings.Split(parts[0], "/")[0]
}
