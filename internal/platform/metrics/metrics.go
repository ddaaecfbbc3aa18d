// Package metrics defines the sink the sync orchestrator and budget
// evaluator report to. The sink is injected; the core carries no
// process-wide metrics state.
package metrics

import "time"

// Sink receives operational metrics. Implementations must be safe for
// concurrent use.
type Sink interface {
	// Count records an occurrence counter, e.g. "sync.transactions_new".
	Count(event string, value int, properties map[string]any)

	// Timing records a duration, e.g. "sync.cycle_duration".
	Timing(event string, d time.Duration, properties map[string]any)
}

// Noop discards all metrics. Used when no telemetry backend is configured
// and as the default in tests.
type Noop struct{}

func (Noop) Count(string, int, map[string]any)            {}
func (Noop) Timing(string, time.Duration, map[string]any) {}

var _ Sink = Noop{}
