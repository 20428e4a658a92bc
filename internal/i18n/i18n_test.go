package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPath(t *testing.T) {
	cases := []struct {
		path     string
		wantLang string
		wantRest string
		wantOK   bool
	}{
		{"/en", "en", "/", true},
		{"/en/properties", "en", "/properties", true},
		{"/ar/properties/villa-1", "ar", "/properties/villa-1", true},
		{"/kur", "kur", "/", true},
		{"/properties", "", "/properties", false},
		{"/", "", "/", false},
		{"/fr/properties", "", "/fr/properties", false},
	}

	for _, tc := range cases {
		lang, rest, ok := FromPath(tc.path)
		assert.Equal(t, tc.wantOK, ok, tc.path)
		assert.Equal(t, tc.wantLang, lang, tc.path)
		assert.Equal(t, tc.wantRest, rest, tc.path)
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "/en", Prefix("en", "/"))
	assert.Equal(t, "/ar/properties", Prefix("ar", "/properties"))
	assert.Equal(t, "/kur/about", Prefix("kur", "about"))
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"ar", "ar"},
		{"ar-IQ,ar;q=0.9", "ar"},
		{"ckb", "kur"},
		{"en-US,en;q=0.8", "en"},
		{"fr-FR,fr;q=0.9", "en"},
		{"garbage;;;", "en"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Negotiate(tc.header), "header %q", tc.header)
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("ar"))
	assert.True(t, IsSupported("kur"))
	assert.False(t, IsSupported("ckb"))
	assert.False(t, IsSupported(""))
}
