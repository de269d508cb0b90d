package sim

import (
	"context"
	"fmt"

	"github.com/oomph-ac/subsim/buoyancy"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/oomph-ac/subsim/sim"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics are recorded against the global OTel meter provider, which is a no-op
// unless the host configures one.
type metrics struct {
	attrs       metric.MeasurementOption
	ticks       metric.Int64Counter
	transitions metric.Int64Counter
	fraction    metric.Float64Histogram
}

func newMetrics(body string) (*metrics, error) {
	m := meter()
	mt := &metrics{attrs: metric.WithAttributes(attribute.String("body", body))}

	var err error
	mt.ticks, err = m.Int64Counter(
		"subsim.ticks",
		metric.WithDescription("Total simulation ticks run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	mt.transitions, err = m.Int64Counter(
		"subsim.water.transitions",
		metric.WithDescription("Total times a body entered or left the water"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transition counter: %w", err)
	}

	mt.fraction, err = m.Float64Histogram(
		"subsim.submerged_fraction",
		metric.WithDescription("Submerged fraction of a body per tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fraction histogram: %w", err)
	}
	return mt, nil
}

func (m *metrics) record(fraction float64, tr buoyancy.Transition) {
	ctx := context.Background()
	m.ticks.Add(ctx, 1, m.attrs)
	m.fraction.Record(ctx, fraction, m.attrs)
	if tr != buoyancy.TransitionNone {
		m.transitions.Add(ctx, 1, m.attrs, metric.WithAttributes(attribute.String("kind", tr.String())))
	}
}
