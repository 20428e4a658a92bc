package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmitsEveryLanguage(t *testing.T) {
	routes := []Route{{Path: "/properties", ChangeFreq: "daily", Priority: "0.9"}}

	body, err := Generate("https://aimrealty.com", routes, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, "<loc>https://aimrealty.com/en/properties</loc>")
	assert.Contains(t, xml, "<loc>https://aimrealty.com/ar/properties</loc>")
	assert.Contains(t, xml, "<loc>https://aimrealty.com/kur/properties</loc>")
	assert.Equal(t, 3, strings.Count(xml, "<url>"))
}

func TestGenerateHreflangAlternates(t *testing.T) {
	routes := []Route{{Path: "/", ChangeFreq: "daily", Priority: "1.0"}}

	body, err := Generate("https://aimrealty.com/", routes, time.Now())
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, `hreflang="en" href="https://aimrealty.com/en"`)
	assert.Contains(t, xml, `hreflang="ar" href="https://aimrealty.com/ar"`)
	assert.Contains(t, xml, `hreflang="kur" href="https://aimrealty.com/kur"`)

	// x-default points at the English form, once per emitted URL.
	assert.Equal(t, 3, strings.Count(xml, `hreflang="x-default" href="https://aimrealty.com/en"`))
}

func TestGenerateMetadata(t *testing.T) {
	routes := []Route{{Path: "/about", ChangeFreq: "monthly", Priority: "0.4"}}

	body, err := Generate("https://aimrealty.com", routes, time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)

	xml := string(body)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, "<lastmod>2026-08-30</lastmod>")
	assert.Contains(t, xml, "<changefreq>monthly</changefreq>")
	assert.Contains(t, xml, "<priority>0.4</priority>")
	assert.Contains(t, xml, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}
