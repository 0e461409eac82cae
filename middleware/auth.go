// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/token"
)

// Context keys set by the middleware.
const (
	UserIDKey    = "userID"
	RoleKey      = "role"
	RequestIDKey = "requestID"
)

// ExtractToken reads a bearer token from the Authorization header, falling back
// to the token query parameter used by websocket clients.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, models.Envelope{Success: false, Message: msg})
}

// AuthGuard rejects requests without a valid token and stores the subject and
// role in the context.
func AuthGuard(maker token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c.Request)
		if raw == "" {
			abort(c, http.StatusUnauthorized, "authorization token is required")
			return
		}
		payload, err := maker.VerifyToken(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, token.ErrExpiredToken) {
				msg = "token has expired"
			}
			abort(c, http.StatusUnauthorized, msg)
			return
		}
		c.Set(UserIDKey, payload.Subject)
		c.Set(RoleKey, payload.Role)
		c.Next()
	}
}

// RequireAdmin must run after AuthGuard.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != string(models.RoleAdmin) {
			abort(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}
