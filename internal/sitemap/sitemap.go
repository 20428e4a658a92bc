// Package sitemap renders the public route table as a search-engine
// sitemap. Every route is emitted once per supported language, each entry
// cross-linked to its siblings through hreflang alternates plus an
// x-default pointing at the English form.
package sitemap

import (
	"encoding/xml"
	"strings"
	"time"

	"aimrealty.com/estateapi/internal/i18n"
)

const xhtmlNamespace = "http://www.w3.org/1999/xhtml"

// Route is one language-independent page path.
type Route struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// DefaultRoutes lists the static pages of the site. Property detail pages
// are appended by callers that have database access.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", ChangeFreq: "daily", Priority: "1.0"},
		{Path: "/properties", ChangeFreq: "daily", Priority: "0.9"},
		{Path: "/properties/sale", ChangeFreq: "daily", Priority: "0.8"},
		{Path: "/properties/rent", ChangeFreq: "daily", Priority: "0.8"},
		{Path: "/agents", ChangeFreq: "weekly", Priority: "0.6"},
		{Path: "/about", ChangeFreq: "monthly", Priority: "0.4"},
		{Path: "/contact", ChangeFreq: "monthly", Priority: "0.4"},
	}
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Xhtml   string   `xml:"xmlns:xhtml,attr"`
	URLs    []urlEntry
}

type urlEntry struct {
	XMLName    xml.Name        `xml:"url"`
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq string          `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []alternateLink `xml:"xhtml:link"`
}

type alternateLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Generate renders the sitemap XML for the given routes. One <url> per
// route per language, alternates spanning all languages of that route.
func Generate(baseURL string, routes []Route, now time.Time) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	lastMod := now.UTC().Format("2006-01-02")

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		Xhtml: xhtmlNamespace,
	}

	for _, route := range routes {
		alternates := alternatesFor(base, route.Path)
		for _, lang := range i18n.Supported() {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        base + i18n.Prefix(lang, route.Path),
				LastMod:    lastMod,
				ChangeFreq: route.ChangeFreq,
				Priority:   route.Priority,
				Alternates: alternates,
			})
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func alternatesFor(base, path string) []alternateLink {
	links := make([]alternateLink, 0, len(i18n.Supported())+1)
	for _, lang := range i18n.Supported() {
		links = append(links, alternateLink{
			Rel:      "alternate",
			Hreflang: lang,
			Href:     base + i18n.Prefix(lang, path),
		})
	}
	links = append(links, alternateLink{
		Rel:      "alternate",
		Hreflang: "x-default",
		Href:     base + i18n.Prefix(i18n.DefaultLanguage, path),
	})
	return links
}
