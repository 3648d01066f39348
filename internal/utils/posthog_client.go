// posthog_client.go wraps posthog.Client so callers need not care whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is used when no endpoint is configured.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// EventSink receives analytics events.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogClientWrapper is an EventSink that does nothing without an API key.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

var _ EventSink = (*PosthogClientWrapper)(nil)

// InitializePosthogClient returns a wrapper. An empty apiKey or a client
// error yields a no-op wrapper.
func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics events are disabled")
		return &PosthogClientWrapper{}
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		w.logger.Warn("Failed to enqueue event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.posthogClient.Close(); err != nil {
		w.logger.Warn("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
