package casepdf

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultSite is the archive the search is scoped to.
const DefaultSite = "lawphil.net"

// SearchEngine describes a general-purpose web search engine reachable by
// a GET request. QueryURL must contain the "{query}" placeholder.
type SearchEngine struct {
	Name     string
	QueryURL string
}

// Built-in engines.
var (
	Google     = SearchEngine{Name: "google", QueryURL: "https://www.google.com/search?q={query}"}
	DuckDuckGo = SearchEngine{Name: "duckduckgo", QueryURL: "https://html.duckduckgo.com/html/?q={query}"}
	Bing       = SearchEngine{Name: "bing", QueryURL: "https://www.bing.com/search?q={query}"}
)

var engines = map[string]SearchEngine{
	Google.Name:     Google,
	DuckDuckGo.Name: DuckDuckGo,
	Bing.Name:       Bing,
}

// LookupEngine returns the built-in engine registered under name.
func LookupEngine(name string) (SearchEngine, error) {
	e, ok := engines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return SearchEngine{}, fmt.Errorf("%w: unknown search engine %q (available: %s)",
			ErrSearch, name, strings.Join(EngineNames(), ", "))
	}
	return e, nil
}

// EngineNames lists the built-in engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for n := range engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// URL returns the search results URL for query.
func (e SearchEngine) URL(query string) string {
	return strings.ReplaceAll(e.QueryURL, "{query}", url.QueryEscape(query))
}

// BuildQuery scopes citation to site using the "site:" operator.
func BuildQuery(citation, site string) string {
	citation = strings.Join(strings.Fields(citation), " ")
	if site == "" {
		return citation
	}
	return "site:" + site + " " + citation
}

// MatchRule decides whether a result link points at a case document.
// Both fields are matched case-insensitively against the whole URL.
type MatchRule struct {
	// PathMarker identifies the judicial-document section of the archive.
	PathMarker string
	// Extension is the document-file extension of a decision page.
	Extension string
}

// DefaultMatchRule matches LawPhil decision pages, which live under
// /judjuris/ and are served as .html files.
var DefaultMatchRule = MatchRule{PathMarker: "/judjuris/", Extension: ".html"}

// IsCaseURL reports whether u satisfies both markers of rule.
func IsCaseURL(u string, rule MatchRule) bool {
	lower := strings.ToLower(u)
	return strings.Contains(lower, strings.ToLower(rule.PathMarker)) &&
		strings.Contains(lower, strings.ToLower(rule.Extension))
}

// FirstCaseLink scans links in order and returns the first case URL.
func FirstCaseLink(links []string, rule MatchRule) (string, bool) {
	for _, l := range links {
		if IsCaseURL(l, rule) {
			return l, true
		}
	}
	return "", false
}

// ExtractLinks returns the absolute http(s) targets of every anchor in the
// document, in document order. Relative hrefs are resolved against base and
// search-engine redirect links are unwrapped to their destination.
func ExtractLinks(r io.Reader, base *url.URL) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var links []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if href := attr(n, "href"); href != "" {
				if u, ok := resolveLink(href, base); ok {
					links = append(links, u)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// resolveLink makes href absolute and unwraps engine redirects.
func resolveLink(href string, base *url.URL) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if target, ok := unwrapRedirect(u); ok {
		u = target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}

// unwrapRedirect extracts the destination of a tracked result link:
// Google's /url?q= (or url=), DuckDuckGo's /l/?uddg= and Bing's /ck/a?u=.
func unwrapRedirect(u *url.URL) (*url.URL, bool) {
	q := u.Query()
	var dest string
	switch {
	case u.Path == "/url":
		dest = q.Get("q")
		if dest == "" {
			dest = q.Get("url")
		}
	case strings.HasPrefix(u.Path, "/l/") || u.Path == "/l":
		dest = q.Get("uddg")
	case u.Path == "/ck/a":
		dest = bingTarget(q.Get("u"))
	}
	if dest == "" {
		return nil, false
	}
	target, err := url.Parse(dest)
	if err != nil || !target.IsAbs() {
		return nil, false
	}
	return target, true
}

// bingTarget decodes Bing's u parameter: "a1" followed by the destination
// in unpadded base64url.
func bingTarget(v string) string {
	enc, ok := strings.CutPrefix(v, "a1")
	if !ok {
		return ""
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(enc, "="))
	if err != nil {
		return ""
	}
	return string(b)
}
