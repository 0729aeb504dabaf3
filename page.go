package casepdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chromedp/cdproto/page"
)

// PaperSize is a sheet size in inches, the unit the print command uses.
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

// Standard paper sizes. Folio is the 8.5 x 13 in "long bond" used by
// Philippine courts.
var (
	Letter = PaperSize{Name: "letter", Width: 8.5, Height: 11}
	Legal  = PaperSize{Name: "legal", Width: 8.5, Height: 14}
	Folio  = PaperSize{Name: "folio", Width: 8.5, Height: 13}
	A4     = PaperSize{Name: "a4", Width: 8.27, Height: 11.69}
)

var papers = map[string]PaperSize{
	Letter.Name: Letter,
	Legal.Name:  Legal,
	Folio.Name:  Folio,
	A4.Name:     A4,
}

// LookupPaper returns the paper size registered under name.
func LookupPaper(name string) (PaperSize, error) {
	p, ok := papers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		names := make([]string, 0, len(papers))
		for n := range papers {
			names = append(names, n)
		}
		sort.Strings(names)
		return PaperSize{}, fmt.Errorf("casepdf: unknown paper size %q (available: %s)", name, strings.Join(names, ", "))
	}
	return p, nil
}

// footerTemplate prints the source URL and page numbers in the bottom margin.
const footerTemplate = `<div style="font-size:7px;width:100%;padding:0 0.4in;display:flex;justify-content:space-between;">` +
	`<span class="url"></span><span><span class="pageNumber"></span>/<span class="totalPages"></span></span></div>`

// PageConfig is the page layout every decision is printed with.
//
// A nil PageConfig or zero-value fields fall back to [DefaultPageConfig]:
// Letter paper, portrait, 0.4 in margins, scale 1.0, backgrounds printed.
type PageConfig struct {
	Paper PaperSize

	// Margin applies to all four sides, in inches.
	Margin float64

	// Scale of the webpage rendering, between 0.1 and 2.0.
	Scale float64

	Landscape       bool
	PrintBackground bool

	// Footer adds the source URL and page numbers to every page.
	Footer bool
}

// DefaultPageConfig returns the fixed layout used when none is configured.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Paper:           Letter,
		Margin:          0.4,
		Scale:           1.0,
		PrintBackground: true,
	}
}

// resolved returns a copy with zero values replaced by defaults.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Paper.Width <= 0 || r.Paper.Height <= 0 {
		r.Paper = d.Paper
	}
	if r.Margin <= 0 {
		r.Margin = d.Margin
	}
	if r.Scale <= 0 {
		r.Scale = d.Scale
	}
	return r
}

// printParams builds the print-to-PDF command for this layout.
func (p *PageConfig) printParams() *page.PrintToPDFParams {
	r := p.resolved()
	w, h := r.Paper.Width, r.Paper.Height
	if r.Landscape {
		w, h = h, w
	}
	params := page.PrintToPDF().
		WithPaperWidth(w).
		WithPaperHeight(h).
		WithMarginTop(r.Margin).
		WithMarginRight(r.Margin).
		WithMarginBottom(r.Margin).
		WithMarginLeft(r.Margin).
		WithScale(r.Scale).
		WithPrintBackground(r.PrintBackground).
		WithLandscape(r.Landscape)
	if r.Footer {
		params = params.
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(footerTemplate)
	}
	return params
}
