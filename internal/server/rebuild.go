package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/edufinder/campus-search/internal/engine"
	"github.com/edufinder/campus-search/pkg/kafka"
)

// RebuildMessage is the payload published on the rebuild topic. Reason is
// informational only; any message triggers a full rebuild.
type RebuildMessage struct {
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requestedAt,omitempty"`
}

// NewRebuildHandler returns the Kafka message handler that rebuilds the
// snapshot and drops the response cache. A rebuild failure is returned so
// the message is not committed and will be retried.
func NewRebuildHandler(eng *engine.Engine, cache *ResponseCache) kafka.MessageHandler {
	log := slog.Default().With("component", "rebuild-consumer")
	return func(ctx context.Context, key, value []byte) error {
		msg, err := kafka.DecodeJSON[RebuildMessage](value)
		if err != nil {
			// A malformed trigger still means someone wants a rebuild.
			log.Warn("malformed rebuild message, rebuilding anyway", "error", err)
		}
		log.Info("rebuild triggered", "reason", msg.Reason)

		if err := eng.Build(ctx); err != nil {
			return err
		}
		if cache != nil {
			if err := cache.Invalidate(ctx); err != nil {
				log.Error("cache invalidation after rebuild failed", "error", err)
			}
		}
		return nil
	}
}
