package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The property service is left nil on purpose: a payload that fails
// validation must be rejected before the handler touches it.
func newPropertyValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewPropertyHandler(nil, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
	})
	router.POST("/api/properties", h.Create)
	router.PUT("/api/properties/:id", h.Update)
	return router
}

func TestUpdateRejectsUnsupportedLanguage(t *testing.T) {
	router := newPropertyValidationRouter()

	payload, _ := json.Marshal(map[string]string{"language": "fr"})
	req := httptest.NewRequest(http.MethodPut, "/api/properties/"+uuid.New().String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Language")
}

func TestUpdateRejectsUnknownEnumValues(t *testing.T) {
	router := newPropertyValidationRouter()

	cases := []map[string]string{
		{"listing_type": "lease"},
		{"status": "archived"},
		{"type": "castle"},
	}

	for _, payload := range cases {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPut, "/api/properties/"+uuid.New().String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %v", payload)
	}
}

func TestCreateRequiresMandatoryFields(t *testing.T) {
	router := newPropertyValidationRouter()

	payload, _ := json.Marshal(map[string]interface{}{"title": "Villa"})
	req := httptest.NewRequest(http.MethodPost, "/api/properties", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRejectsMalformedID(t *testing.T) {
	router := newPropertyValidationRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/properties/not-a-uuid", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
