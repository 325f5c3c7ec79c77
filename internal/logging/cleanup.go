package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"gorm.io/gorm"
)

const cleanupInterval = 24 * time.Hour

// StartCleanup prunes system_logs older than retentionDays once at start and
// then daily until ctx is cancelled. A non-positive retention disables it.
func StartCleanup(ctx context.Context, db *gorm.DB, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	go func() {
		pruneSystemLogs(ctx, db, retentionDays)

		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pruneSystemLogs(ctx, db, retentionDays)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func pruneSystemLogs(ctx context.Context, db *gorm.DB, retentionDays int) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	switch {
	case result.Error != nil && ctx.Err() == nil:
		slog.Warn("system log cleanup failed", "error", result.Error)
	case result.RowsAffected > 0:
		slog.Info("system log cleanup completed", "deleted", result.RowsAffected, "retention_days", retentionDays)
	}
}
