package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/sheet-auth/pkg/helpers"
	"github.com/oksasatya/sheet-auth/pkg/response"
)

const CtxClaimsKey = "claims"

const (
	MsgTokenRequired = "token required"
	MsgTokenInvalid  = "invalid or expired token"
)

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// JWTAuth validates the bearer token and injects its claims into context
func JWTAuth(m *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, MsgTokenRequired, nil)
			return
		}
		claims, err := m.ParseToken(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "expired"
			}
			c.Set("auth_failure", reason)
			response.Error(c, http.StatusUnauthorized, MsgTokenInvalid, nil)
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims set by JWTAuth.
func ClaimsFrom(c *gin.Context) (*helpers.Claims, bool) {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	return claims, ok
}
