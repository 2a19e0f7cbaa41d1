package worker

// optimize_worker.go
// Processes bulk price-optimization jobs from QueueOptimize.
// Runs the optimization over the selected products and, when a notify
// address is set, enqueues a summary email with the resulting suggestions.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/service"

	"github.com/rs/zerolog/log"
)

// OptimizeJobPayload is the job envelope sent to QueueOptimize.
type OptimizeJobPayload struct {
	ProductIDs  []string `json:"product_ids,omitempty"`
	Category    string   `json:"category,omitempty"`
	All         bool     `json:"all,omitempty"`
	NotifyEmail string   `json:"notify_email,omitempty"`
}

// OptimizeWorker runs bulk optimizations in the background.
type OptimizeWorker struct {
	svc        service.OptimizeService
	dispatcher *Dispatcher
}

func NewOptimizeWorker(svc service.OptimizeService, dispatcher *Dispatcher) *OptimizeWorker {
	return &OptimizeWorker{svc: svc, dispatcher: dispatcher}
}

// Process runs one bulk-optimization job and optionally enqueues the
// summary email.
func (w *OptimizeWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload OptimizeJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("optimize_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	resp, err := w.svc.Optimize(ctx, dto.OptimizeRequest{
		ProductIDs: payload.ProductIDs,
		Category:   payload.Category,
		All:        payload.All,
	})
	if err != nil {
		log.Error().Err(err).Msg("optimize_worker: optimization failed")
		return err
	}

	log.Info().Int("count", len(resp.Results)).Msg("optimize_worker: run complete")

	if payload.NotifyEmail == "" {
		return nil
	}

	emailPayload := EmailJobPayload{
		ToEmail: payload.NotifyEmail,
		Subject: fmt.Sprintf("Price optimization complete: %d suggestion(s)", len(resp.Results)),
		Body:    summaryBody(resp.Results),
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailPayload); err != nil {
		log.Error().Err(err).Msg("optimize_worker: failed to enqueue summary email")
	}
	return nil
}

func summaryBody(results []dto.OptimizationItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Optimization run produced %d suggestion(s).\n\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&b, "%s (%s): $%s -> $%s (revenue %s%%, margin %s%%)\n  %s\n",
			r.ProductName, r.SKU,
			r.CurrentPrice.StringFixed(2), r.SuggestedPrice.StringFixed(2),
			r.ExpectedRevenueChangePct.StringFixed(1), r.ExpectedMarginChangePct.StringFixed(1),
			r.Reason)
	}
	return b.String()
}
