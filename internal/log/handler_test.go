package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestContextHandlerAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&buf, nil)))

	ctx := middleware.NewContextWithCorrelationID(context.Background(), "abc-123")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), `"correlationId":"abc-123"`)
}

func TestContextHandlerAddsUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&buf, nil)))

	ctx := model.NewContextWithUser(context.Background(), &model.User{ID: 9})
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), `"user":9`)
}

func TestContextHandlerWithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&buf, nil)))

	logger.Info("hello")

	assert.NotContains(t, buf.String(), "correlationId")
	assert.NotContains(t, buf.String(), `"user"`)
}
