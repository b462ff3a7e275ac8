package middleware

import (
	"net/http"

	"taller_str/internal/infrastructure/token"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

const (
	AdminCookie  = "str_admin_session"
	ClientCookie = "str_client_token"

	// ClaimsKey is the gin context key holding verified portal claims.
	ClaimsKey = "clientClaims"
)

var (
	errNoSession      = pkg.NewDomainErrorSimple("UNAUTHORIZED", "No autorizado", http.StatusUnauthorized)
	errSessionExpired = pkg.NewDomainErrorSimple("SESSION_EXPIRED", "Sesión expirada", http.StatusUnauthorized)
)

// RequireAdmin aborts requests without a valid admin session cookie.
func RequireAdmin(signer *token.SessionSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(AdminCookie)
		if err != nil || tok == "" {
			c.AbortWithStatusJSON(errNoSession.HTTPStatus, errNoSession.ToHTTPError())
			return
		}
		if !signer.Validate(tok) {
			c.AbortWithStatusJSON(errSessionExpired.HTTPStatus, errSessionExpired.ToHTTPError())
			return
		}
		c.Next()
	}
}

// RequireClientToken verifies the portal cookie and stashes its claims. The
// order binding itself is checked per handler against the requested resource.
func RequireClientToken(signer *token.ClientSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(ClientCookie)
		if err != nil || tok == "" {
			c.AbortWithStatusJSON(errNoSession.HTTPStatus, errNoSession.ToHTTPError())
			return
		}
		claims, ok := signer.Verify(tok)
		if !ok {
			c.AbortWithStatusJSON(errSessionExpired.HTTPStatus, errSessionExpired.ToHTTPError())
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the portal claims set by RequireClientToken.
func ClaimsFrom(c *gin.Context) (token.ClientClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return token.ClientClaims{}, false
	}
	claims, ok := v.(token.ClientClaims)
	return claims, ok
}
