package middleware

import (
	"context"
	"crypto/rsa"
	"log/slog"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gatherly/event-manager/pkg/token/helper"
	"github.com/gin-gonic/gin"
)

func NewAuthentication(logger *slog.Logger, publicKey *rsa.PublicKey, sessions sessionVerifier) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		logger:    logger,
		publicKey: publicKey,
		sessions:  sessions,
	}
}

type sessionVerifier interface {
	IsActiveSession(ctx context.Context, userID uint, tokenID string) (bool, error)
}

type AuthenticationMiddleware struct {
	logger    *slog.Logger
	publicKey *rsa.PublicKey
	sessions  sessionVerifier
}

// TokenAuthentication verifies the bearer token signature and that the token
// has not been revoked, then makes the authenticated user available to
// handlers. It runs before any service logic on protected routes.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	signed, err := handler.GetTokenFromHttpAuthHeader(c)
	if err != nil {
		m.abort(c, err)
		return
	}

	user, tokenID, err := helper.ParseSessionToken(signed, m.publicKey)
	if err != nil {
		m.abort(c, err)
		return
	}

	ctx := c.Request.Context()
	active, err := m.sessions.IsActiveSession(ctx, user.ID, tokenID)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	if !active {
		m.abort(c, errdef.NewUnauthorized("session has been revoked"))
		return
	}

	// Extra precaution to ensure that no errors has occurred, and it's safe to call c.Next()
	if len(c.Errors.Errors()) > 0 {
		c.Abort()
		return
	}

	c.Set("user", user)
	c.Request = c.Request.WithContext(model.NewContextWithUser(ctx, user))
	c.Next()
}

func (m AuthenticationMiddleware) abort(c *gin.Context, err error) {
	m.logger.WarnContext(c.Request.Context(), "Token not valid", "error", err)
	_ = c.Error(errdef.NewUnauthorized("token not valid"))
	c.Abort()
}
