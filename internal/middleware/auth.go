package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/pkg/auth"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
)

// Context keys set by Authenticate.
const (
	ContextActorID    = "actor_id"
	ContextActorEmail = "actor_email"
	ContextActorRole  = "actor_role"
)

type AuthMiddleware struct {
	jwtSvc *auth.JWTService
}

func NewAuthMiddleware(jwtSvc *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and sets the actor identity in the
// request context. Every failure mode reads the same to the client.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(c)
			return
		}

		claims, err := m.jwtSvc.ValidateAccessToken(parts[1])
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextActorID, claims.UserID)
		c.Set(ContextActorEmail, claims.Email)
		c.Set(ContextActorRole, claims.Role)
		c.Next()
	}
}

// RequireAnyRole is the authorization gate: the actor passes if their role
// matches at least one of the allowed roles. Run after Authenticate.
func (m *AuthMiddleware) RequireAnyRole(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := ActorRole(c)
		if !ok {
			abortUnauthenticated(c)
			return
		}
		if !model.HasAnyRole(role, allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": apperrors.MsgForbidden})
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated user's id from the request context.
func ActorID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextActorID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// ActorRole returns the authenticated user's role from the request context.
func ActorRole(c *gin.Context) (model.Role, bool) {
	v, exists := c.Get(ContextActorRole)
	if !exists {
		return "", false
	}
	role, ok := v.(model.Role)
	return role, ok
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": apperrors.MsgNotAuthenticated})
}
