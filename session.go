package casepdf

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/porticus-lab/go-casepdf/internal/pdfcheck"
)

// Session owns one browser process used to locate and render cases.
//
// A Session is safe for concurrent use, though the command-line tool runs
// exactly one locate-then-render per process. Call [Session.Close] when done;
// it terminates the browser on every exit path.
type Session struct {
	cfg           sessionConfig
	robots        *robotsChecker
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Request selects what [Session.Fetch] retrieves. Exactly one of Citation
// and URL must be set.
type Request struct {
	Citation string
	URL      string
	// Output is the destination path; empty derives it from the page title.
	Output string
}

// Outcome describes a saved decision.
type Outcome struct {
	URL    string
	Title  string
	Path   string
	Pages  int
	Result *Result
}

// NewSession starts a browser with the given options.
//
// The browser is started eagerly so errors surface here rather than on the
// first request. The caller must call [Session.Close] when finished.
func NewSession(opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	execPath := cfg.chromePath
	if execPath == "" && cfg.autoDownload && lookBrowser() == "" {
		p, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		execPath = p
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if cfg.userAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(cfg.userAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserStart, err)
	}
	cfg.logger.Debug("browser started", "headless", cfg.headless, "exec", execPath)

	ua := cfg.userAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Session{
		cfg:           cfg,
		robots:        newRobotsChecker(ua, cfg.searchTimeout),
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close terminates the browser process. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.browserCancel()
	s.allocCancel()
	s.cfg.logger.Debug("browser closed")
	return nil
}

// Fetch locates the case when req carries a citation, then renders it.
func (s *Session) Fetch(ctx context.Context, req Request) (*Outcome, error) {
	hasCitation := strings.TrimSpace(req.Citation) != ""
	hasURL := strings.TrimSpace(req.URL) != ""
	switch {
	case hasCitation && hasURL:
		return nil, fmt.Errorf("%w: citation and URL are mutually exclusive", ErrInvalidRequest)
	case !hasCitation && !hasURL:
		return nil, fmt.Errorf("%w: a citation or a URL is required", ErrInvalidRequest)
	}

	target := strings.TrimSpace(req.URL)
	if hasCitation {
		found, err := s.Locate(ctx, req.Citation)
		if err != nil {
			return nil, err
		}
		target = found
	}
	return s.Render(ctx, target, req.Output)
}

// Locate searches for citation on the configured site and returns the
// first result that is a case-document URL.
func (s *Session) Locate(ctx context.Context, citation string) (string, error) {
	if err := s.checkClosed(); err != nil {
		return "", err
	}
	c, err := ParseCitation(citation)
	if err != nil {
		return "", err
	}

	searchURL := s.cfg.engine.URL(BuildQuery(c.Raw, s.cfg.site))
	base, err := url.Parse(searchURL)
	if err != nil {
		return "", fmt.Errorf("%w: engine %s produced %q: %v", ErrSearch, s.cfg.engine.Name, searchURL, err)
	}
	log := s.cfg.logger.With("citation", c.String(), "engine", s.cfg.engine.Name)
	log.Info("searching", "url", searchURL)

	tabCtx, cancel := s.newTab(ctx, s.cfg.searchTimeout)
	defer cancel()

	var doc string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("a[href]", chromedp.ByQuery),
		chromedp.OuterHTML("html", &doc, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSearch, c, err)
	}

	links, err := ExtractLinks(strings.NewReader(doc), base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSearch, err)
	}
	log.Debug("results scanned", "links", len(links))

	found, ok := FirstCaseLink(links, s.cfg.match)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, c)
	}
	log.Info("case located", "url", found)
	return found, nil
}

// Render loads targetURL and saves it as a PDF. When output is empty the
// filename is derived from the page title and the current time.
//
// Navigation, load wait and printing share one timeout; on any failure no
// file is written.
func (s *Session) Render(ctx context.Context, targetURL, output string) (*Outcome, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}
	if err := validateURL(targetURL); err != nil {
		return nil, err
	}
	log := s.cfg.logger.With("url", targetURL)

	if s.cfg.checkRobots {
		ok, err := s.robots.allowed(ctx, targetURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNavigate, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, targetURL)
		}
	}

	tabCtx, cancel := s.newTab(ctx, s.cfg.timeout)
	defer cancel()

	log.Info("loading page")
	var title string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
	); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigate, targetURL, err)
	}

	var buf []byte
	params := s.cfg.page.printParams()
	if err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = params.Do(ctx)
		return err
	})); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, targetURL, err)
	}

	info, err := pdfcheck.Verify(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	path := output
	if path == "" {
		path = filepath.Join(s.cfg.outputDir, Filename(title, s.cfg.now()))
	}
	res := &Result{data: buf}
	if err := res.WriteToFile(path, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	log.Info("saved", "path", path, "bytes", info.Size, "pages", info.Pages, "pdf", info.Version)

	return &Outcome{
		URL:    targetURL,
		Title:  title,
		Path:   path,
		Pages:  info.Pages,
		Result: res,
	}, nil
}

// newTab opens a browser tab bounded by timeout and by the caller's ctx.
// The returned cancel closes the tab.
func (s *Session) newTab(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	stop := context.AfterFunc(ctx, tabCancel)

	runCtx, runCancel := context.WithTimeout(tabCtx, timeout)
	return runCtx, func() {
		stop()
		runCancel()
		tabCancel()
	}
}

func (s *Session) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w %q: want an http(s) URL", ErrInvalidURL, raw)
	}
	return nil
}

// --- Package-level convenience functions ---

// Fetch runs one request with a temporary [Session], tearing the browser
// down before it returns.
func Fetch(ctx context.Context, req Request, opts ...Option) (*Outcome, error) {
	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Fetch(ctx, req)
}
