package token

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"testing"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gatherly/event-manager/pkg/token/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct{ mock.Mock }

func (m *mockRepository) AddSession(userID uint, tokenID string) error {
	called := m.Called(userID, tokenID)
	return called.Error(0)
}

func (m *mockRepository) RemoveSession(userID uint, tokenID string) error {
	called := m.Called(userID, tokenID)
	return called.Error(0)
}

func (m *mockRepository) ClearSessions(userID uint) error {
	called := m.Called(userID)
	return called.Error(0)
}

func (m *mockRepository) HasSession(userID uint, tokenID string) (bool, error) {
	called := m.Called(userID, tokenID)
	return called.Bool(0), called.Error(1)
}

func newTestService(t *testing.T, repository repository) (*Service, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repository, key), key
}

func TestIssueToken_RegistersSession(t *testing.T) {
	repository := &mockRepository{}
	repository.
		On("AddSession", uint(42), mock.AnythingOfType("string")).
		Return(nil)
	service, key := newTestService(t, repository)
	user := &model.User{ID: 42, Email: "ann@example.com"}

	signed, err := service.IssueToken(context.Background(), user)

	require.NoError(t, err)
	parsed, tokenID, err := helper.ParseSessionToken(signed, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed.ID)
	repository.AssertCalled(t, "AddSession", uint(42), tokenID)
}

func TestRevokeSession_RemovesOnlyMatchingToken(t *testing.T) {
	repository := &mockRepository{}
	repository.
		On("RemoveSession", uint(42), mock.AnythingOfType("string")).
		Return(nil)
	service, key := newTestService(t, repository)
	user := &model.User{ID: 42}

	signed, tokenID, err := helper.GenerateSessionToken(user, key)
	require.NoError(t, err)

	err = service.RevokeSession(context.Background(), user.ID, signed)

	require.NoError(t, err)
	repository.AssertCalled(t, "RemoveSession", uint(42), tokenID)
	repository.AssertNumberOfCalls(t, "RemoveSession", 1)
}

func TestRevokeSession_UnparsableToken(t *testing.T) {
	repository := &mockRepository{}
	service, _ := newTestService(t, repository)

	err := service.RevokeSession(context.Background(), 42, "garbage")

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
	repository.AssertNotCalled(t, "RemoveSession", mock.Anything, mock.Anything)
}

func TestRevokeAllSessions(t *testing.T) {
	repository := &mockRepository{}
	repository.
		On("ClearSessions", uint(7)).
		Return(nil)
	service, _ := newTestService(t, repository)

	err := service.RevokeAllSessions(context.Background(), 7)

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestIsActiveSession(t *testing.T) {
	repository := &mockRepository{}
	repository.
		On("HasSession", uint(7), "token-id").
		Return(true, nil)
	service, _ := newTestService(t, repository)

	active, err := service.IsActiveSession(context.Background(), 7, "token-id")

	require.NoError(t, err)
	assert.True(t, active)
}
