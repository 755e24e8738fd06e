package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studiumhq/studium-api/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	testCases := []string{"debug", "info", "warn", "error", "DEBUG", "", "bogus"}

	for _, level := range testCases {
		log := Setup(config.ServerConfig{LogLevel: level})
		assert.NotNil(t, log, "level %q", level)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	attached := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), attached)

	assert.Same(t, attached, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil ctx tolerated on purpose
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	attached := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), attached)
	assert.Same(t, attached, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
