package casepdf

import (
	"io"
	"log/slog"
	"time"
)

// DefaultUserAgent identifies the tool to robots.txt. The browser keeps its
// own User-Agent unless [WithUserAgent] is given.
const DefaultUserAgent = "casepdf/1.0"

// sessionConfig holds internal configuration for a Session.
type sessionConfig struct {
	chromePath    string
	autoDownload  bool
	timeout       time.Duration
	searchTimeout time.Duration
	noSandbox     bool
	headless      bool
	engine        SearchEngine
	site          string
	match         MatchRule
	userAgent     string
	checkRobots   bool
	outputDir     string
	page          PageConfig
	logger        *slog.Logger
	now           func() time.Time
}

func defaultConfig() sessionConfig {
	return sessionConfig{
		timeout:       30 * time.Second,
		searchTimeout: 10 * time.Second,
		headless:      true,
		engine:        Google,
		site:          DefaultSite,
		match:         DefaultMatchRule,
		page:          DefaultPageConfig(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
	}
}

// Option configures a [Session].
type Option func(*sessionConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *sessionConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload fetches a known-good Chromium build when no executable
// is configured or installed.
func WithAutoDownload() Option {
	return func(c *sessionConfig) {
		c.autoDownload = true
	}
}

// WithTimeout bounds navigation, load wait and printing of the case page.
// Defaults to 30 seconds. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *sessionConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSearchTimeout bounds the wait for search result links to appear.
// Defaults to 10 seconds. Non-positive values are ignored.
func WithSearchTimeout(d time.Duration) Option {
	return func(c *sessionConfig) {
		if d > 0 {
			c.searchTimeout = d
		}
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *sessionConfig) {
		c.noSandbox = true
	}
}

// WithHeadless toggles headless mode. Pass false to watch the browser work.
func WithHeadless(headless bool) Option {
	return func(c *sessionConfig) {
		c.headless = headless
	}
}

// WithSearchEngine selects the engine used by [Session.Locate].
func WithSearchEngine(e SearchEngine) Option {
	return func(c *sessionConfig) {
		c.engine = e
	}
}

// WithSite scopes searches to a different host. An empty site searches
// the whole web.
func WithSite(site string) Option {
	return func(c *sessionConfig) {
		c.site = site
	}
}

// WithMatchRule changes which result links count as case documents.
func WithMatchRule(r MatchRule) Option {
	return func(c *sessionConfig) {
		c.match = r
	}
}

// WithUserAgent overrides the browser User-Agent and the robots.txt agent.
func WithUserAgent(ua string) Option {
	return func(c *sessionConfig) {
		c.userAgent = ua
	}
}

// WithRobotsCheck makes [Session.Render] refuse pages the target host's
// robots.txt disallows.
func WithRobotsCheck(enabled bool) Option {
	return func(c *sessionConfig) {
		c.checkRobots = enabled
	}
}

// WithOutputDir sets the directory generated filenames are placed in.
// Explicit output paths are used as given.
func WithOutputDir(dir string) Option {
	return func(c *sessionConfig) {
		c.outputDir = dir
	}
}

// WithPageConfig replaces the default page layout.
func WithPageConfig(p PageConfig) Option {
	return func(c *sessionConfig) {
		c.page = p
	}
}

// WithLogger sets the logger for progress and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// withClock replaces time.Now for filename generation in tests.
func withClock(now func() time.Time) Option {
	return func(c *sessionConfig) {
		c.now = now
	}
}
