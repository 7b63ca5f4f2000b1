// posthog_client.go wraps posthog.Client so callers need not care whether analytics is configured.
package utils

import (
	"context"
	"log/slog"

	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper is a nil-safe posthog client.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

var _ portssvc.TransitionTracker = (*PosthogClientWrapper)(nil)

func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctId string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctId), slog.String("event", event))
	}
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctId,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// TrackTransition sends an "<entity>_<action>" event for a committed status change.
func (w *PosthogClientWrapper) TrackTransition(_ context.Context, e portssvc.TransitionEvent) {
	w.Enqueue(e.Actor.UserID, string(e.Entity)+"_"+string(e.Action), map[string]any{
		"entity_id": e.EntityID,
		"from":      e.From,
		"to":        e.To,
		"role":      e.Actor.Role.String(),
		"at":        e.At,
	})
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	w.posthogClient.Close()
}
