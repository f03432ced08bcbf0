//go:build unit

package service

import (
	"context"
	"io"

	"go-sites-app/internal/config"
	"go-sites-app/internal/data"
	"go-sites-app/internal/logger"
)

// stubRecorder captures audit calls without touching storage.
type stubRecorder struct {
	actions []string
}

func (r *stubRecorder) Record(ctx context.Context, userID int64, action, entityType string, entityID int64, details data.JSONMap) {
	r.actions = append(r.actions, action+":"+entityType)
}

func testLogger() logger.Logger {
	return logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)
}
