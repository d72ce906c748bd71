package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case level", logLevel: "DeBuG"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
		{name: "empty level falls back to info", logLevel: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Setup(tt.logLevel)
			require.NotNil(t, logger)
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	// Without a stored logger the default is returned
	assert.NotNil(t, FromContext(context.Background()))

	// With a stored logger that logger is returned
	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContext(ctx))

	// A nil context still yields a usable logger
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // exercising nil handling
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	injected := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Context logger wins over the injected default
	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, injected))

	// Injected default is used when the context carries no logger
	assert.Same(t, injected, FromContextOrDefault(context.Background(), injected))

	// Process default is the last resort
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
