package token

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log/slog"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gatherly/event-manager/pkg/token/helper"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository repository, privateKey *rsa.PrivateKey) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		privateKey: privateKey,
	}
}

type repository interface {
	AddSession(userID uint, tokenID string) error
	RemoveSession(userID uint, tokenID string) error
	ClearSessions(userID uint) error
	HasSession(userID uint, tokenID string) (bool, error)
}

type Service struct {
	logger     *slog.Logger
	repository repository
	privateKey *rsa.PrivateKey
}

// IssueToken signs a session token for the user and registers it in the
// user's active session set so it can later be revoked per device.
func (s Service) IssueToken(ctx context.Context, user *model.User) (string, error) {
	signed, tokenID, err := helper.GenerateSessionToken(user, s.privateKey)
	if err != nil {
		return "", fmt.Errorf("error generating session token for user %d: %v", user.ID, err)
	}

	if err := s.repository.AddSession(user.ID, tokenID); err != nil {
		return "", fmt.Errorf("error storing session for user %d: %v", user.ID, err)
	}

	return signed, nil
}

// RevokeSession removes exactly the session matching the given token. It is
// idempotent, revoking an already absent session is not an error.
func (s Service) RevokeSession(ctx context.Context, userID uint, tokenString string) error {
	_, tokenID, err := helper.ParseSessionToken(tokenString, &s.privateKey.PublicKey)
	if err != nil {
		s.logger.WarnContext(ctx, "Unable to parse token on logout", "error", err)
		return errdef.NewBadRequest("unable to parse session token")
	}

	if err := s.repository.RemoveSession(userID, tokenID); err != nil {
		return fmt.Errorf("error removing session for user %d: %v", userID, err)
	}

	return nil
}

// RevokeAllSessions clears the user's entire active session set, logging the
// user out of every device.
func (s Service) RevokeAllSessions(ctx context.Context, userID uint) error {
	if err := s.repository.ClearSessions(userID); err != nil {
		return fmt.Errorf("error clearing sessions for user %d: %v", userID, err)
	}
	return nil
}

// IsActiveSession reports whether the token id is still a member of the
// user's active session set.
func (s Service) IsActiveSession(ctx context.Context, userID uint, tokenID string) (bool, error) {
	return s.repository.HasSession(userID, tokenID)
}
