package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/securekit/component"
)

// Telemetry owns the tracer and meter providers of a process.
// It implements component.Component so a registry can start and stop it.
type Telemetry struct {
	cfg         Config
	serviceName string
	version     string
	environment string

	mu sync.Mutex
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)

// NewTelemetry creates a telemetry component. Nothing is exported until Start.
func NewTelemetry(cfg Config, serviceName, version, environment string) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{cfg: cfg, serviceName: serviceName, version: version, environment: environment}
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs OTLP tracer and meter providers when export is enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	tp, err := InitTracer(ctx, t.cfg.TracerConfig(t.serviceName, t.version, t.environment))
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	mp, err := InitMeter(ctx, t.cfg.MeterConfig(t.serviceName, t.version, t.environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("telemetry: %w", err)
	}
	t.tp, t.mp = tp, mp
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
		t.tp = nil
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
		t.mp = nil
	}
	return errors.Join(errs...)
}

// Health implements component.Component.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	switch {
	case !t.cfg.Enabled:
		h.Message = "export disabled"
	case t.tp == nil:
		h.Status = component.StatusDegraded
		h.Message = "not started"
	}
	return h
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	d := component.Description{Name: "Telemetry", Type: "telemetry"}
	if t.cfg.Enabled {
		d.Details = []string{
			fmt.Sprintf("otlp http %s", t.cfg.Endpoint),
			fmt.Sprintf("sample=%.2f interval=%s", t.cfg.SampleRate, t.cfg.Interval),
		}
	} else {
		d.Details = []string{"export disabled"}
	}
	return d
}

// Metrics returns instruments on the global meter provider.
func (t *Telemetry) Metrics() (*Metrics, error) {
	return NewMetrics(Meter(defaultTracerName))
}
