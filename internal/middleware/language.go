package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"aimrealty.com/estateapi/internal/i18n"
)

// ContextLanguageKey is where the resolved language lands on the gin context.
const ContextLanguageKey = "language"

// ResolveLanguage canonicalizes page URLs around a language path prefix.
//
//   - ?lang=xx redirects permanently to the path-prefixed equivalent and
//     stops processing.
//   - A recognized path prefix sets the active language; the URL always
//     wins over any prior session state.
//   - No language anywhere: negotiate from Accept-Language and redirect
//     to the prefixed path.
func ResolveLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if queryLang := c.Query("lang"); queryLang != "" && i18n.IsSupported(queryLang) {
			_, rest, _ := i18n.FromPath(path)
			target := i18n.Prefix(queryLang, rest)

			query := c.Request.URL.Query()
			query.Del("lang")
			if encoded := query.Encode(); encoded != "" {
				target += "?" + encoded
			}

			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}

		if lang, _, ok := i18n.FromPath(path); ok {
			c.Set(ContextLanguageKey, lang)
			c.Next()
			return
		}

		lang := i18n.Negotiate(c.GetHeader("Accept-Language"))
		target := i18n.Prefix(lang, path)
		if raw := c.Request.URL.RawQuery; raw != "" {
			target += "?" + raw
		}

		c.Redirect(http.StatusMovedPermanently, target)
		c.Abort()
	}
}

// Language reads the resolved language off the context.
func Language(c *gin.Context) string {
	if lang, exists := c.Get(ContextLanguageKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return i18n.DefaultLanguage
}

// CanonicalURL rebuilds the language-prefixed URL for a page, used by the
// sitemap and hreflang annotations.
func CanonicalURL(base, lang, path string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + i18n.Prefix(lang, path)
	}
	u.Path = i18n.Prefix(lang, path)
	return u.String()
}
