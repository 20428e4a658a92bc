package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/internal/service"
)

type AuthMiddleware struct {
	sessions service.SessionStore
	userRepo repository.UserRepository
	secret   string
}

func NewAuthMiddleware(sessions service.SessionStore, userRepo repository.UserRepository) *AuthMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	return &AuthMiddleware{
		sessions: sessions,
		userRepo: userRepo,
		secret:   secret,
	}
}

// resolveUserID identifies the caller from the session cookie or, for
// integrations that cannot carry cookies, a bearer API token.
func (m *AuthMiddleware) resolveUserID(c *gin.Context) string {
	if cookie, err := c.Cookie(service.SessionCookieName); err == nil && cookie != "" {
		userID, err := m.sessions.Get(c.Request.Context(), cookie)
		if err == nil && userID != "" {
			return userID
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ""
	}

	return claims.Subject
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := m.resolveUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth attaches the user when a session exists but never rejects.
// Anonymous browsing is a normal state, not an error.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := m.resolveUserID(c); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.requireRole(model.RoleAdmin)
}

// RequireAgent allows listing management for agents and admins.
func (m *AuthMiddleware) RequireAgent() gin.HandlerFunc {
	return m.requireRole(model.RoleAgent, model.RoleAdmin)
}

func (m *AuthMiddleware) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role.Name == role {
				c.Set("user", user)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}
