package middleware

import (
	"log"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
)

// GetAdminID extracts the caller's ID (sub claim) from the validated JWT in
// the request context. Admin routes are the only authenticated surface; the
// webhook is trusted at the network layer by the chat gateway.
func GetAdminID(c *gin.Context) (string, bool) {
	claims, exists := c.Request.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !exists {
		log.Printf("No admin claims found in context")
		return "", false
	}

	return claims.RegisteredClaims.Subject, true
}
