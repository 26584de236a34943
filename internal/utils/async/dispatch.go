package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/easeaico/virtual-companion/internal/logging"
)

// Dispatch runs handler in a new goroutine on a context detached from ctx's
// cancellation but carrying its logger. Errors and panics are logged.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.WithoutCancel(ctx)
	bgCtx = logging.With(bgCtx, logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
