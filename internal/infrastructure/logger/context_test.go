package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())

	require.NotNil(t, logger)
	// Must be safe to use without a logger in context.
	logger.Info("no-op")
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, enriched, FromContext(ctx))

	enriched.Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithUserID(context.Background(), logger, "user-42")

	assert.Equal(t, "user-42", GetUserID(ctx))

	enriched.Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "user-42", logs.All()[0].ContextMap()["user_id"])
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "", GetUserID(context.Background()))
}
