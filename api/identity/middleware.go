package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehunt/mazehunt-api/service/i"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		// Extract the token part.
		token := parts[1]

		// Validate the token using the barrier service.
		claims, err := ts.Decode(token)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// UserIDFromContext extracts the authenticated user's ID from the claims
// the authorization middleware attached.
func UserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, errors.New("no user claims in context")
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("malformed user claims")
	}

	idString, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, errors.New("no user id claim")
	}

	return uuid.Parse(idString)
}
