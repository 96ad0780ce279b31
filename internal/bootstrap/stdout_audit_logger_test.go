package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"go-agency/internal/bootstrap"
	"go-agency/internal/config"
	"go-agency/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "LEAVE_AGENCY_APPROVED",
		Message: "leave accepted",
		Meta:    map[string]any{"leave_id": "l-1"},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "LEAVE_AGENCY_APPROVED", fields["action"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestServerConfigFrom(t *testing.T) {
	cfg := bootstrap.ServerConfigFrom(config.AppConfig{
		Port:         "8080",
		ReadTimeout:  time.Second,
		WriteTimeout: 2 * time.Second,
		IdleTimeout:  3 * time.Second,
	})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.WriteTimeout)
}
