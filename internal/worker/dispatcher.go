package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	QueueOptimize = "jobs:optimize"
	QueueEmail    = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Attempts int             `json:"attempts"`
	Payload  json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueOptimize pushes a bulk price-optimization job to Redis.
func (d *Dispatcher) EnqueueOptimize(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueOptimize, "optimize", payload)
}

// EnqueueEmail pushes an email notification job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
