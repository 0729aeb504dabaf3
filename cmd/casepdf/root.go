package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	casepdf "github.com/porticus-lab/go-casepdf"
	"github.com/porticus-lab/go-casepdf/internal/config"
)

// fetcher is the part of *casepdf.Session the command drives.
type fetcher interface {
	Fetch(ctx context.Context, req casepdf.Request) (*casepdf.Outcome, error)
	Close() error
}

// deps are the collaborators swapped out in tests.
type deps struct {
	newSession func(opts ...casepdf.Option) (fetcher, error)
	stderr     io.Writer
}

func defaultDeps() deps {
	return deps{
		newSession: func(opts ...casepdf.Option) (fetcher, error) {
			return casepdf.NewSession(opts...)
		},
		stderr: os.Stderr,
	}
}

type rootFlags struct {
	configPath string
	citation   string
	url        string
	output     string
	noHeadless bool
}

// viperFlags maps config keys to the flags that override them.
var viperFlags = map[string]string{
	"engine":         "engine",
	"site":           "site",
	"timeout":        "timeout",
	"search_timeout": "search-timeout",
	"chrome_path":    "chrome-path",
	"auto_download":  "auto-download",
	"no_sandbox":     "no-sandbox",
	"check_robots":   "check-robots",
	"user_agent":     "user-agent",
	"output_dir":     "output-dir",
	"paper":          "paper",
	"margin":         "margin",
	"footer":         "footer",
	"verbose":        "verbose",
}

func newRootCmd(d deps) *cobra.Command {
	var f rootFlags
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "casepdf [citation | url]",
		Short: "Save a Philippine Supreme Court decision as PDF",
		Long: `casepdf finds a Supreme Court decision on LawPhil (lawphil.net) and saves
it as PDF using headless Chrome.

Give either a citation, which is searched for through a web search engine,
or the URL of the decision page. A single positional argument is treated
as a URL when it starts with http:// or https://, otherwise as a citation.

Configuration precedence (highest first): flags, CASEPDF_* environment
variables, the config file, built-in defaults.`,
		Example: `  casepdf --citation "G.R. No. 123456"
  casepdf "G.R. No. 123456" -o decision.pdf
  casepdf --url https://lawphil.net/judjuris/juri2020/jan2020/gr_123456_2020.html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(f, args)
			if err != nil {
				return err
			}
			cfg, used, err := config.Load(v, f.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("no-headless") {
				cfg.Headless = !f.noHeadless
			}

			logger := setupLogger(d.stderr, cfg.Verbose)
			if used != "" {
				logger.Debug("using config file", "path", used)
			}
			opts, err := sessionOptions(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), d, req, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.citation, "citation", "c", "", `case citation, e.g. "G.R. No. 123456"`)
	flags.StringVarP(&f.url, "url", "u", "", "URL of the decision page, skipping the search")
	flags.StringVarP(&f.output, "output", "o", "", "output file (default: <title>_<timestamp>.pdf)")
	flags.BoolVar(&f.noHeadless, "no-headless", false, "show the browser window")

	d0 := config.Default()
	flags.String("engine", d0.Engine, "search engine: "+strings.Join(casepdf.EngineNames(), ", "))
	flags.String("site", d0.Site, "site the search is scoped to")
	flags.Duration("timeout", d0.Timeout, "limit for loading and printing the decision")
	flags.Duration("search-timeout", d0.SearchTimeout, "limit for search results to appear")
	flags.String("chrome-path", "", "Chrome/Chromium executable")
	flags.Bool("auto-download", false, "download Chromium when none is installed")
	flags.Bool("no-sandbox", false, "disable the Chrome sandbox (needed as root or in Docker)")
	flags.Bool("check-robots", false, "refuse pages disallowed by the site's robots.txt")
	flags.String("user-agent", "", "browser User-Agent override")
	flags.String("output-dir", "", "directory for generated filenames")
	flags.String("paper", d0.Paper, "paper size: a4, folio, legal, letter")
	flags.Float64("margin", d0.Margin, "page margin in inches")
	flags.Bool("footer", false, "print source URL and page numbers in the footer")
	flags.BoolVarP(new(bool), "verbose", "v", false, "verbose logging")
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	cmd.MarkFlagsMutuallyExclusive("citation", "url")
	for key, name := range viperFlags {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(newConfigCmd(&f.configPath), newVerifyCmd(), newVersionCmd())
	return cmd
}

// buildRequest resolves the flags and optional positional argument into
// exactly one citation or URL.
func buildRequest(f rootFlags, args []string) (casepdf.Request, error) {
	req := casepdf.Request{Citation: f.citation, URL: f.url, Output: f.output}
	if len(args) == 1 {
		if req.Citation != "" || req.URL != "" {
			return casepdf.Request{}, errors.New("give the citation or URL either as an argument or as a flag, not both")
		}
		arg := strings.TrimSpace(args[0])
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			req.URL = arg
		} else {
			req.Citation = arg
		}
	}
	if strings.TrimSpace(req.Citation) == "" && strings.TrimSpace(req.URL) == "" {
		return casepdf.Request{}, errors.New("a citation (--citation) or a URL (--url) is required")
	}
	if req.Citation != "" {
		// Reject unparsable citations before paying for a browser start.
		if _, err := casepdf.ParseCitation(req.Citation); err != nil {
			return casepdf.Request{}, err
		}
	}
	return req, nil
}

// sessionOptions translates the merged configuration into session options.
func sessionOptions(cfg config.Config, logger *slog.Logger) ([]casepdf.Option, error) {
	engine, err := casepdf.LookupEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	paper, err := casepdf.LookupPaper(cfg.Paper)
	if err != nil {
		return nil, err
	}
	page := casepdf.DefaultPageConfig()
	page.Paper = paper
	page.Margin = cfg.Margin
	page.Footer = cfg.Footer

	opts := []casepdf.Option{
		casepdf.WithLogger(logger),
		casepdf.WithSearchEngine(engine),
		casepdf.WithSite(cfg.Site),
		casepdf.WithTimeout(cfg.Timeout),
		casepdf.WithSearchTimeout(cfg.SearchTimeout),
		casepdf.WithHeadless(cfg.Headless),
		casepdf.WithRobotsCheck(cfg.CheckRobots),
		casepdf.WithOutputDir(cfg.OutputDir),
		casepdf.WithPageConfig(page),
	}
	if cfg.ChromePath != "" {
		opts = append(opts, casepdf.WithChromePath(cfg.ChromePath))
	}
	if cfg.AutoDownload {
		opts = append(opts, casepdf.WithAutoDownload())
	}
	if cfg.NoSandbox {
		opts = append(opts, casepdf.WithNoSandbox())
	}
	if cfg.UserAgent != "" {
		opts = append(opts, casepdf.WithUserAgent(cfg.UserAgent))
	}
	return opts, nil
}

// run starts the browser, performs one fetch and always tears it down.
func run(ctx context.Context, stdout io.Writer, d deps, req casepdf.Request, opts []casepdf.Option) error {
	s, err := d.newSession(opts...)
	if err != nil {
		return withHint(err)
	}
	defer s.Close()

	res, err := s.Fetch(ctx, req)
	if err != nil {
		return withHint(err)
	}
	fmt.Fprintf(stdout, "Saved %s (%d bytes) from %s\n", res.Path, res.Result.Len(), res.URL)
	return nil
}

// withHint appends an actionable hint line to err when one applies.
func withHint(err error) error {
	if h := hintFor(err); h != "" {
		return fmt.Errorf("%w\n  %s", err, h)
	}
	return err
}
