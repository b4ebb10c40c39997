package gain

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/iburimskiy/surround-panner/internal/gain"

// Metrics counts gain queries and their outcomes.
type Metrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	stale    metric.Int64Counter
}

// NewMetrics creates the counters on meter. A nil meter uses the global
// provider, which is a no-op unless one has been installed.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	requests, err := meter.Int64Counter("panner.gain.requests",
		metric.WithDescription("Gain queries issued"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("panner.gain.failures",
		metric.WithDescription("Gain queries that failed or returned a malformed body"))
	if err != nil {
		return nil, err
	}
	stale, err := meter.Int64Counter("panner.gain.stale",
		metric.WithDescription("Gain responses discarded because a newer one was applied"))
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, failures: failures, stale: stale}, nil
}

func (m *Metrics) request() {
	if m != nil {
		m.requests.Add(context.Background(), 1)
	}
}

func (m *Metrics) failure() {
	if m != nil {
		m.failures.Add(context.Background(), 1)
	}
}

func (m *Metrics) staleResponse() {
	if m != nil {
		m.stale.Add(context.Background(), 1)
	}
}
