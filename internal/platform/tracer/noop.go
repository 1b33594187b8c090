package tracer

import "context"

// NoopTracer is a tracer that does nothing.
type NoopTracer struct{}

func NewNoop() *NoopTracer {
	return &NoopTracer{}
}

func (t *NoopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(_ error)                       {}
func (noopSpan) SetAttributes(_ ...Attribute)      {}
func (noopSpan) AddEvent(_ string, _ ...Attribute) {}

var (
	_ Tracer = (*NoopTracer)(nil)
	_ Span   = noopSpan{}
)
