package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "lablend/internal/pkg/jwt"
	"lablend/internal/pkg/response"
)

// JWTAuth guards mutating and history routes. A missing or malformed
// Authorization header is 401; a token that fails verification,
// including an expired one, is 403.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "Access Denied: No token provided")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Access Denied: No token provided")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "Access Denied: No token provided")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwtsvc.ErrExpired) {
				response.Error(c, http.StatusForbidden, "Session expired, please log in again")
			} else {
				response.Error(c, http.StatusForbidden, "Invalid Token")
			}
			c.Abort()
			return
		}

		c.Set("username", claims.Username)

		c.Next()
	}
}
