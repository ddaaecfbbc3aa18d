package metrics

import (
	"log/slog"
	"time"

	"github.com/posthog/posthog-go"
)

// PosthogSink forwards metrics to PostHog. When construction fails or no API
// key is configured, callers should fall back to Noop.
type PosthogSink struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogSink initializes a PostHog-backed sink. Returns nil when the API
// key is empty.
func NewPosthogSink(apiKey, endpoint string, logger *slog.Logger) *PosthogSink {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, metrics sink not initialized.")
		return nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return nil
	}
	return &PosthogSink{client: client, logger: logger}
}

func (s *PosthogSink) Count(event string, value int, properties map[string]any) {
	props := map[string]any{"value": value}
	for k, v := range properties {
		props[k] = v
	}
	s.enqueue(event, props)
}

func (s *PosthogSink) Timing(event string, d time.Duration, properties map[string]any) {
	props := map[string]any{"duration_ms": d.Milliseconds()}
	for k, v := range properties {
		props[k] = v
	}
	s.enqueue(event, props)
}

func (s *PosthogSink) enqueue(event string, props map[string]any) {
	if err := s.client.Enqueue(posthog.Capture{
		DistinctId: "backend",
		Event:      event,
		Properties: props,
	}); err != nil && s.logger != nil {
		s.logger.Warn("Failed to enqueue metric", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (s *PosthogSink) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

var _ Sink = (*PosthogSink)(nil)
