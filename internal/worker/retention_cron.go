package worker

// retention_cron.go
// Background goroutine that periodically removes stale unapplied
// suggestions so the table does not grow without bound. Applied
// suggestions are kept as a price-change audit trail.

import (
	"context"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/repository"

	"github.com/rs/zerolog/log"
)

const retentionTickInterval = time.Hour

// StartRetentionCron launches a background goroutine that ticks hourly and
// deletes unapplied suggestions older than retentionDays. It respects the
// context for graceful shutdown.
func StartRetentionCron(ctx context.Context, repo repository.SuggestionRepository, retentionDays int) {
	go func() {
		ticker := time.NewTicker(retentionTickInterval)
		defer ticker.Stop()

		log.Info().Int("retention_days", retentionDays).Msg("retention_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retention_cron: shutting down")
				return
			case <-ticker.C:
				purgeStale(ctx, repo, retentionDays)
			}
		}
	}()
}

func purgeStale(ctx context.Context, repo repository.SuggestionRepository, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := repo.DeleteUnappliedBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("retention_cron: failed to delete stale suggestions")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("retention_cron: purged stale suggestions")
	}
}
