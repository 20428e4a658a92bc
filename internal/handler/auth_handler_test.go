package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/service"
)

type fakeSessionStore struct{}

func (f *fakeSessionStore) Create(ctx context.Context, userID string) (string, error) {
	return "session-1", nil
}
func (f *fakeSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}
func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error { return nil }
func (f *fakeSessionStore) TTL() time.Duration                                 { return time.Hour }

type fakeAuthService struct {
	user *model.User
}

func (f *fakeAuthService) Register(ctx context.Context, input dto.RegisterInput) (*model.User, string, error) {
	return f.user, "session-1", nil
}

func (f *fakeAuthService) Login(ctx context.Context, input dto.LoginInput) (*model.User, string, error) {
	if input.Password != "correct-password" {
		return nil, "", errors.New("invalid credentials")
	}
	return f.user, "session-1", nil
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error { return nil }

func (f *fakeAuthService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "session-1" {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeAuthService) IssueAPIToken(ctx context.Context, userID string) (string, int64, error) {
	return "token", time.Now().Add(time.Hour).Unix(), nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := &fakeAuthService{user: &model.User{Username: "jwan", Email: "jwan@example.com"}}
	h := NewAuthHandler(svc, &fakeSessionStore{})

	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/logout", h.Logout)
	router.GET("/api/auth/user", h.CurrentUser)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/auth/login", dto.LoginInput{
		Email:    "jwan@example.com",
		Password: "correct-password",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var hasCookie bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == service.SessionCookieName {
			hasCookie = true
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, "session-1", cookie.Value)
		}
	}
	assert.True(t, hasCookie, "expected %s cookie", service.SessionCookieName)

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "jwan", resp.User.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/auth/login", dto.LoginInput{
		Email:    "jwan@example.com",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidatesInput(t *testing.T) {
	router := newAuthRouter()

	// Missing password.
	w := postJSON(router, "/api/auth/register", map[string]string{
		"username": "jwan",
		"email":    "jwan@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUserWithoutSessionIsNull(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.User)
}

func TestCurrentUserWithSession(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "session-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "jwan", resp.User.Username)
}

func TestLogoutExpiresCookie(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(router, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == service.SessionCookieName {
			cleared = true
			assert.LessOrEqual(t, cookie.MaxAge, 0)
			assert.Empty(t, cookie.Value)
		}
	}
	assert.True(t, cleared, "expected cookie to be cleared")
}
