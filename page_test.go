package casepdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPageConfig(t *testing.T) {
	d := DefaultPageConfig()
	assert.Equal(t, Letter, d.Paper)
	assert.False(t, d.Landscape)
	assert.Equal(t, 1.0, d.Scale)
	assert.Equal(t, 0.4, d.Margin)
	assert.True(t, d.PrintBackground)
	assert.False(t, d.Footer)
}

func TestPageConfigResolved_Nil(t *testing.T) {
	var pc *PageConfig
	assert.Equal(t, DefaultPageConfig(), pc.resolved())
}

func TestPageConfigResolved_ZeroValues(t *testing.T) {
	r := (&PageConfig{}).resolved()
	assert.Equal(t, Letter, r.Paper)
	assert.Equal(t, 1.0, r.Scale)
	assert.Equal(t, 0.4, r.Margin)
	// An explicit struct keeps its PrintBackground choice.
	assert.False(t, r.PrintBackground)
}

func TestPageConfigResolved_PreservesExplicit(t *testing.T) {
	pc := &PageConfig{Paper: Folio, Margin: 1, Scale: 0.5, Landscape: true}
	r := pc.resolved()
	assert.Equal(t, Folio, r.Paper)
	assert.Equal(t, 1.0, r.Margin)
	assert.Equal(t, 0.5, r.Scale)
	assert.True(t, r.Landscape)
}

func TestPrintParams_Portrait(t *testing.T) {
	pc := DefaultPageConfig()
	p := pc.printParams()
	assert.Equal(t, 8.5, p.PaperWidth)
	assert.Equal(t, 11.0, p.PaperHeight)
	assert.Equal(t, 0.4, p.MarginTop)
	assert.Equal(t, 0.4, p.MarginLeft)
	assert.True(t, p.PrintBackground)
	assert.False(t, p.DisplayHeaderFooter)
}

func TestPrintParams_LandscapeSwapsDimensions(t *testing.T) {
	pc := &PageConfig{Paper: Legal, Landscape: true}
	p := pc.printParams()
	assert.Equal(t, 14.0, p.PaperWidth)
	assert.Equal(t, 8.5, p.PaperHeight)
	assert.True(t, p.Landscape)
}

func TestPrintParams_Footer(t *testing.T) {
	pc := &PageConfig{Footer: true}
	p := pc.printParams()
	assert.True(t, p.DisplayHeaderFooter)
	assert.Contains(t, p.FooterTemplate, "pageNumber")
}

func TestLookupPaper(t *testing.T) {
	p, err := LookupPaper(" Folio ")
	require.NoError(t, err)
	assert.Equal(t, Folio, p)

	_, err = LookupPaper("b5")
	assert.ErrorContains(t, err, "a4, folio, legal, letter")
}
