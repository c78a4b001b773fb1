package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiatorMatch(t *testing.T) {
	n, err := NewNegotiator("uk", []string{"uk", "en"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: "uk"},
		{name: "exact english", header: "en", want: "en"},
		{name: "regional english", header: "en-GB,en;q=0.8", want: "en"},
		{name: "ukrainian preferred", header: "uk-UA,uk;q=0.9,en;q=0.5", want: "uk"},
		{name: "unsupported falls back to default", header: "ja", want: "uk"},
		{name: "garbage header", header: ";;;", want: "uk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Match(tt.header))
		})
	}
}

func TestNegotiatorDefaultFirst(t *testing.T) {
	n, err := NewNegotiator("en", []string{"uk", "en"})
	require.NoError(t, err)
	assert.Equal(t, "en", n.Default())
	assert.Equal(t, "en", n.Match("fr"))
}

func TestParseLocale(t *testing.T) {
	_, err := ParseLocale("zh-Hans")
	assert.NoError(t, err)

	_, err = ParseLocale("not a locale!")
	assert.Error(t, err)

	_, err = NewNegotiator("uk", []string{"uk", "###"})
	assert.Error(t, err)
}
