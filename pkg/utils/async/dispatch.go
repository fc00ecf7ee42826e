package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/docfront/pkg/utils/errs"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine. The handler gets a context that keeps
// the logger and Sentry hub of ctx but is not cancelled with it. Returned errors
// and recovered panics are reported through errs.Handle.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				err := goerr.New(fmt.Sprintf("panic: %v", r),
					goerr.V("task", name),
					goerr.V("stack", string(debug.Stack())),
				)
				errs.Handle(newCtx, "panic in async handler", err)
			}
		}()

		if err := handler(newCtx); err != nil {
			errs.Handle(newCtx, "error in async handler", goerr.Wrap(err, "async task failed", goerr.V("task", name)))
		}
	}()
}

// newBackgroundContext creates a new background context preserving the logger
// and the Sentry hub
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = logging.With(newCtx, logging.From(ctx))
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		newCtx = sentry.SetHubOnContext(newCtx, hub)
	}
	return newCtx
}
