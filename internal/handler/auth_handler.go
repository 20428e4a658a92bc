package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/service"
	"aimrealty.com/estateapi/pkg/response"
	"aimrealty.com/estateapi/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
	cookieTTL   int
	secure      bool
}

func NewAuthHandler(authService service.AuthService, sessions service.SessionStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieTTL:   int(sessions.TTL().Seconds()),
		secure:      os.Getenv("APP_ENV") == "production",
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, sessionID, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.setSessionCookie(c, sessionID)
	c.JSON(http.StatusCreated, dto.SessionResponse{User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, sessionID, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.setSessionCookie(c, sessionID)
	c.JSON(http.StatusOK, dto.SessionResponse{User: user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(service.SessionCookieName)
	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		response.ResponseError(c, err)
		return
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.SessionCookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CurrentUser answers the session identity. An anonymous caller gets a
// null user with 200, never an error.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	sessionID, _ := c.Cookie(service.SessionCookieName)

	user, err := h.authService.CurrentUser(c.Request.Context(), sessionID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{User: user})
}

// IssueToken mints a bearer API token for service integrations.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	token, expiresAt, err := h.authService.IssueAPIToken(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.SessionCookieName, sessionID, h.cookieTTL, "/", "", h.secure, true)
}
