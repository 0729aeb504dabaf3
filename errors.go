package casepdf

import "errors"

// Sentinel errors returned by the library. Callers should test for them
// with [errors.Is]; most are wrapped with the failing URL or citation.
var (
	// ErrClosed is returned when attempting to use a closed [Session].
	ErrClosed = errors.New("casepdf: session is closed")

	// ErrInvalidRequest means a [Request] names neither or both of a
	// citation and a URL.
	ErrInvalidRequest = errors.New("casepdf: invalid request")

	// ErrNoCitation means the input has no G.R. number the parser recognises.
	ErrNoCitation = errors.New("casepdf: no G.R. number found in citation")

	// ErrSearch covers failures driving the search engine page.
	ErrSearch = errors.New("casepdf: search failed")

	// ErrNoMatch means the search results held no case-document link.
	ErrNoMatch = errors.New("casepdf: no matching case link in search results")

	// ErrInvalidURL is returned for a target that is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("casepdf: invalid URL")

	// ErrNavigate covers navigation and page-load wait failures.
	ErrNavigate = errors.New("casepdf: page did not load")

	// ErrRender covers failures of the print-to-PDF command.
	ErrRender = errors.New("casepdf: print to PDF failed")

	// ErrInvalidPDF means the browser returned bytes that are not a PDF.
	ErrInvalidPDF = errors.New("casepdf: rendered output is not a valid PDF")

	// ErrWrite covers failures persisting the PDF to disk.
	ErrWrite = errors.New("casepdf: writing PDF failed")

	// ErrDisallowed is returned when robots.txt forbids fetching the target.
	ErrDisallowed = errors.New("casepdf: disallowed by robots.txt")

	// ErrBrowserStart is returned when the browser process cannot be started.
	ErrBrowserStart = errors.New("casepdf: starting browser failed")
)
