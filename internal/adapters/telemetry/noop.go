package telemetry

import (
	"context"

	"go.trai.ch/drift/internal/core/ports"
)

// Noop is a no-op implementation of ports.Telemetry, used when no UI is
// attached to the engine.
type Noop struct{}

// NewNoop creates a Noop telemetry.
func NewNoop() *Noop { return &Noop{} }

// Record returns the context unchanged and a vertex that does nothing.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, NoopVertex{}
}

// NoopVertex is a no-op implementation of ports.Vertex.
type NoopVertex struct{}

// Log does nothing.
func (NoopVertex) Log(string) {}

// Cached does nothing.
func (NoopVertex) Cached() {}

// Complete does nothing.
func (NoopVertex) Complete(error) {}
