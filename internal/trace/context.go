package trace

import "context"

// binding is what a context carries: the tracer and the span new spans
// should hang under.
type binding struct {
	tracer Tracer
	parent uint64
}

type bindingKey struct{}

func bound(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(bindingKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return bound(ctx).tracer
}

// WithTracer attaches t to ctx, keeping the current parent span.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	b := bound(ctx)
	b.tracer = t
	return context.WithValue(ctx, bindingKey{}, b)
}

// Parent returns the ID of the span opened by the nearest BeginContext, or 0.
func Parent(ctx context.Context) uint64 {
	return bound(ctx).parent
}

// BeginContext opens a span under the context's parent and returns a context
// in which it is the parent. A span filtered out by the level leaves the
// parent unchanged.
func BeginContext(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	b := bound(ctx)
	span := Begin(b.tracer, scope, name, b.parent)
	if span.ID() == 0 {
		return span, ctx
	}
	b.parent = span.ID()
	return span, context.WithValue(ctx, bindingKey{}, b)
}
