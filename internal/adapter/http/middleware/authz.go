package middleware

import (
	"net/http"
	"strings"

	"github.com/aq2208/gstore-api/internal/security"
	"github.com/gin-gonic/gin"
)

const ctxClaims = "claims"

type Authz struct {
	tokens *security.Tokens
}

func NewAuthz(tokens *security.Tokens) *Authz {
	return &Authz{tokens: tokens}
}

// Require rejects requests without a valid session token.
func (a *Authz) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauth(c, "invalid_request", "missing bearer token")
			return
		}

		claims, err := a.tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			unauth(c, "invalid_token", "invalid jwt")
			return
		}
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims Require stored on c.
func ClaimsFrom(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*security.Claims)
	return cl, ok
}

func unauth(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code, "error_description": desc})
}
