// Package casepdf retrieves Philippine Supreme Court decisions from the
// LawPhil archive and saves them as PDF using headless Chrome.
//
// A citation such as "G.R. No. 123456" is searched for on a general-purpose
// search engine, scoped to lawphil.net; the first result that is a decision
// page is loaded and printed to PDF through the browser.
//
// For a single download use the package-level helper, which starts and
// stops the browser:
//
//	res, err := casepdf.Fetch(ctx, casepdf.Request{Citation: "G.R. No. 123456"})
//
// To reuse a browser, create a [Session]:
//
//	s, err := casepdf.NewSession(casepdf.WithTimeout(time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	u, err := s.Locate(ctx, "G.R. No. 123456")
//	res, err := s.Render(ctx, u, "decision.pdf")
//
// Every failure wraps one of the sentinel errors in this package, so callers
// can tell a bad citation ([ErrNoCitation]) from a search that found nothing
// ([ErrNoMatch]) or a page that never loaded ([ErrNavigate]).
//
// Chrome or Chromium must be installed, or use [WithAutoDownload].
package casepdf
