package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxJobAttempts is the number of times a job is attempted before being
// moved to the dead letter queue.
const MaxJobAttempts = 3

// Handler processes a single job payload. A returned error triggers a
// retry; after MaxJobAttempts the job moves to the DLQ.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Handlers maps each queue to its job handler.
type Handlers struct {
	Optimize Handler
	Email    Handler
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueOptimize, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var handler Handler
	switch queue {
	case QueueOptimize:
		handler = handlers.Optimize
	case QueueEmail:
		handler = handlers.Email
	}
	if handler == nil {
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Int("attempts", job.Attempts).Msg("processing job")

	if err := handler.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= MaxJobAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, mErr := json.Marshal(job)
		if mErr != nil {
			log.Error().Err(mErr).Str("queue", queue).Msg("failed to re-enqueue job")
			return
		}
		if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
			log.Error().Err(pErr).Str("queue", queue).Msg("failed to re-enqueue job")
			return
		}
		log.Warn().Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).Err(err).Msg("job failed, re-enqueued")
	}
}
