// Package auth guards run routes with bearer run tokens.
package auth

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/mazelab/service"
	"github.com/beka-birhanu/mazelab/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextRunClaims is the key used to store run token claims in the Gin context.
	ContextRunClaims = "runClaims"

	// QueryToken carries the token for clients that cannot set headers, such as browser websockets.
	QueryToken = "token"
)

// Authoriz validates the run token and, when the route has an ID parameter,
// requires the token to be issued for that run.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if id := c.Param("ID"); id != "" {
			runID, _ := claims[service.ClaimRunID].(string)
			if runID != id {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		// Attach run claims to the request context for further use.
		c.Set(ContextRunClaims, claims)
		c.Next()
	}
}

// bearer extracts the token from the Authorization header, falling back to the token query parameter.
func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(QueryToken)
		return token, token != ""
	}

	// Split the "Bearer" prefix from the token.
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
