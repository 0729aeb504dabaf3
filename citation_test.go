package casepdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCitation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical", "G.R. No. 123456", "123456"},
		{"lowercase", "g.r. no. 123456", "123456"},
		{"no dots", "GR No 123456", "123456"},
		{"extra whitespace", "   G. R.  No.   98765  ", "98765"},
		{"plural label", "G.R. Nos. 225568", "225568"},
		{"old docket prefix", "G.R. No. L-23456", "23456"},
		{"embedded in caption", "People v. Cruz, G.R. No. 234567, March 1, 2020", "234567"},
		{"mixed case", "g.R. NO. 111", "111"},
		{"tab separated", "G.R.\tNo.\t4242", "4242"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCitation(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Number)
		})
	}
}

func TestParseCitation_NotFound(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"People v. Cruz",
		"A.M. No. 12-3-45-SC",
		"G.R. No. pending",
	}
	for _, in := range inputs {
		_, err := ParseCitation(in)
		if !errors.Is(err, ErrNoCitation) {
			t.Errorf("ParseCitation(%q) error = %v, want ErrNoCitation", in, err)
		}
	}
}

func TestParseCitation_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		_, err := ParseCitation("no citation here")
		assert.ErrorIs(t, err, ErrNoCitation)
	}
}

func TestCitation_String(t *testing.T) {
	c, err := ParseCitation("  gr no 5555 ")
	require.NoError(t, err)
	assert.Equal(t, "G.R. No. 5555", c.String())
	assert.Equal(t, "gr no 5555", c.Raw)
}
