package gateway

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"github.com/vovakirdan/tetris-net/internal/telemetry"
)

// UpstreamError reports which collaborator call failed.
type UpstreamError struct {
	Step string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Step, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// call runs one collaborator step inside its own span and wraps a failure
// in an UpstreamError.
func call[T any](ctx context.Context, step string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "gateway."+step)
	defer span.End()

	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var zero T
		return zero, &UpstreamError{Step: step, Err: err}
	}
	return v, nil
}
