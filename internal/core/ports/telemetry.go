package ports

import "context"

// Telemetry records the progress of long-running engine work for UIs.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a new vertex for one unit of work, e.g. a graph build.
	Record(ctx context.Context, name string) (context.Context, Vertex)
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Log appends a progress line to the vertex output.
	Log(msg string)
	// Cached marks the vertex as served from cache.
	Cached()
	// Complete finishes the vertex, recording err when non-nil.
	Complete(err error)
}

type vertexKey struct{}

// ContextWithVertex attaches a vertex to the context so nested work can
// report progress against it.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, or nil.
func VertexFromContext(ctx context.Context) Vertex {
	v, _ := ctx.Value(vertexKey{}).(Vertex)
	return v
}
