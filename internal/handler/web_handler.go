package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aimrealty.com/estateapi/internal/i18n"
	"aimrealty.com/estateapi/internal/middleware"
	"aimrealty.com/estateapi/internal/sitemap"
)

// WebHandler serves the language-prefixed page entry points and the
// sitemap. Pages themselves are rendered by the dashboard frontend; the
// entry endpoint hands it the resolved language context.
type WebHandler struct {
	baseURL string
}

func NewWebHandler(baseURL string) *WebHandler {
	return &WebHandler{baseURL: baseURL}
}

func (h *WebHandler) Entry(c *gin.Context) {
	lang := middleware.Language(c)

	page := c.Param("page")
	if page == "" {
		page = "/"
	}

	c.JSON(http.StatusOK, gin.H{
		"language":  lang,
		"languages": i18n.Supported(),
		"canonical": middleware.CanonicalURL(h.baseURL, lang, page),
	})
}

func (h *WebHandler) Sitemap(c *gin.Context) {
	body, err := sitemap.Generate(h.baseURL, sitemap.DefaultRoutes(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sitemap generation failed"})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
