package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okisetiana/blog-api/internal/domain/access"
	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/pkg/helpers"
	"github.com/okisetiana/blog-api/pkg/response"
)

const ctxPrincipalKey = "principal"

// Principal resolves the Authorization bearer token into an
// access.Principal and stores it in the Gin context. Absent or invalid
// tokens leave the principal nil; read paths then proceed anonymously.
// The single uniform parse failure means callers can't tell expired from
// forged.
func Principal(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			c.Next()
			return
		}
		role, ok := entity.ParseRole(claims.Role)
		if !ok {
			c.Next()
			return
		}
		p := &access.Principal{
			UserID:   claims.UserID,
			Username: claims.Subject,
			Role:     role,
		}
		if claims.IssuedAt != nil {
			p.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			p.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Set(ctxPrincipalKey, p)
		c.Next()
	}
}

// RequireAuth aborts with 401 when no verified principal is present. It
// assumes Principal ran earlier in the chain.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if PrincipalFrom(c) == nil {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the request's verified principal, or nil for an
// anonymous caller.
func PrincipalFrom(c *gin.Context) *access.Principal {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
