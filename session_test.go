package casepdf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if lookBrowser() == "" {
		t.Skip("skipping: Chrome/Chromium not found")
	}
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	skipIfNoChrome(t)
	s, err := NewSession(append([]Option{WithNoSandbox()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

const casePage = `<!DOCTYPE html><html><head><title>G.R. No. 123456</title></head>
<body><h1>Republic of the Philippines</h1><h2>SUPREME COURT</h2>
<p>G.R. No. 123456, January 1, 2020</p><p>DECISION</p></body></html>`

// archiveServer fakes both the search engine and the case archive.
func archiveServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if strings.Contains(q, "555555") {
			fmt.Fprint(w, `<html><body><p>Our systems have detected unusual traffic.</p></body></html>`)
			return
		}
		if strings.Contains(q, "999999") {
			fmt.Fprint(w, `<html><body><a href="/statutes/ra_1.html">Statute</a><a href="/judjuris/">Index</a></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body>
<a href="/about">About</a>
<a href="/statutes/repacts/ra2020/ra_11469_2020.html">RA 11469</a>
<a href="/judjuris/juri2020/jan2020/gr_123456_2020.html">G.R. No. 123456</a>
<a href="/judjuris/juri2019/gr_654321_2019.html">G.R. No. 654321</a>
</body></html>`)
	})
	mux.HandleFunc("/judjuris/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, casePage)
	})
	mux.HandleFunc("/hang", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /judjuris/blocked/\n")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func localEngine(srv *httptest.Server) SearchEngine {
	return SearchEngine{Name: "local", QueryURL: srv.URL + "/search?q={query}"}
}

func assertPDFFile(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"), "file does not start with the PDF signature")
}

func TestLocate_FirstMatchingLink(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithSearchEngine(localEngine(srv)))

	got, err := s.Locate(context.Background(), "G.R. No. 123456")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/judjuris/juri2020/jan2020/gr_123456_2020.html", got)
}

func TestLocate_NoMatch(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithSearchEngine(localEngine(srv)))

	_, err := s.Locate(context.Background(), "G.R. No. 999999")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLocate_SearchTimeout(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithSearchEngine(localEngine(srv)), WithSearchTimeout(time.Second))

	start := time.Now()
	_, err := s.Locate(context.Background(), "G.R. No. 555555")
	require.ErrorIs(t, err, ErrSearch)
	assert.Less(t, time.Since(start), 15*time.Second)
}

func TestLocate_BadCitation(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Locate(context.Background(), "People v. Cruz")
	assert.ErrorIs(t, err, ErrNoCitation)
}

func TestRender_WritesPDF(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t)

	out := filepath.Join(t.TempDir(), "decision.pdf")
	res, err := s.Render(context.Background(), srv.URL+"/judjuris/juri2020/gr_123456_2020.html", out)
	require.NoError(t, err)
	assert.Equal(t, out, res.Path)
	assert.Equal(t, "G.R. No. 123456", res.Title)
	assertPDFFile(t, out)
}

func TestRender_GeneratedFilename(t *testing.T) {
	srv := archiveServer(t)
	dir := t.TempDir()
	now := time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)
	s := newTestSession(t, WithOutputDir(dir), withClock(func() time.Time { return now }))

	res, err := s.Render(context.Background(), srv.URL+"/judjuris/juri2020/gr_123456_2020.html", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "G.R._No._123456_20260102_150405.pdf"), res.Path)
	assertPDFFile(t, res.Path)
}

func TestRender_TimeoutLeavesNoFile(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithTimeout(time.Second))

	dir := t.TempDir()
	out := filepath.Join(dir, "never.pdf")
	start := time.Now()
	_, err := s.Render(context.Background(), srv.URL+"/hang", out)
	require.ErrorIs(t, err, ErrNavigate)
	assert.Less(t, time.Since(start), 15*time.Second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRender_CallerCancel(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithTimeout(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := s.Render(ctx, srv.URL+"/hang", filepath.Join(t.TempDir(), "x.pdf"))
	assert.ErrorIs(t, err, ErrNavigate)
}

func TestRender_RobotsDisallowed(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithRobotsCheck(true))

	out := filepath.Join(t.TempDir(), "blocked.pdf")
	_, err := s.Render(context.Background(), srv.URL+"/judjuris/blocked/gr_1.html", out)
	assert.ErrorIs(t, err, ErrDisallowed)
	assert.NoFileExists(t, out)
}

func TestFetch_ByCitation(t *testing.T) {
	srv := archiveServer(t)
	s := newTestSession(t, WithSearchEngine(localEngine(srv)))

	out := filepath.Join(t.TempDir(), "case.pdf")
	res, err := s.Fetch(context.Background(), Request{Citation: "g.r. no. 123456", Output: out})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/judjuris/juri2020/jan2020/gr_123456_2020.html", res.URL)
	assertPDFFile(t, out)
}

func TestFetch_PackageLevel(t *testing.T) {
	skipIfNoChrome(t)
	srv := archiveServer(t)

	out := filepath.Join(t.TempDir(), "case.pdf")
	_, err := Fetch(context.Background(), Request{URL: srv.URL + "/judjuris/x.html", Output: out}, WithNoSandbox())
	require.NoError(t, err)
	assertPDFFile(t, out)
}

func TestFetch_RequestValidation(t *testing.T) {
	s := &Session{}
	_, err := s.Fetch(context.Background(), Request{Citation: "G.R. No. 1", URL: "https://lawphil.net/"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = s.Fetch(context.Background(), Request{URL: "  "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorContains(t, err, "required")
}

func TestSession_CloseIdempotent(t *testing.T) {
	skipIfNoChrome(t)

	s, err := NewSession(WithNoSandbox())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestSession_UsedAfterClose(t *testing.T) {
	skipIfNoChrome(t)

	s, err := NewSession(WithNoSandbox())
	require.NoError(t, err)
	_ = s.Close()

	_, err = s.Render(context.Background(), "https://lawphil.net/", "")
	assert.True(t, errors.Is(err, ErrClosed))
	_, err = s.Locate(context.Background(), "G.R. No. 1")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestValidateURL(t *testing.T) {
	for _, ok := range []string{
		"https://lawphil.net/judjuris/juri2020/gr_1_2020.html",
		"http://127.0.0.1:8080/x.html",
	} {
		assert.NoError(t, validateURL(ok), ok)
	}
	for _, bad := range []string{"", "not a url", "lawphil.net/x.html", "file:///etc/passwd", "ftp://host/x", "https:///nohost"} {
		assert.ErrorIs(t, validateURL(bad), ErrInvalidURL, bad)
	}
}
