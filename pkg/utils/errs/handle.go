package errs

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

// Handle logs err and sends it to Sentry when a Sentry client is configured.
// Values attached with goerr.V are recorded as log attributes and Sentry extras.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	values := map[string]any{}
	if ge := goerr.Unwrap(err); ge != nil {
		for k, v := range ge.Values() {
			values[k] = v
		}
	}

	attrs := []any{slog.Any("error", err)}
	for k, v := range values {
		attrs = append(attrs, slog.Any(k, v))
	}
	logging.From(ctx).Error(msg, attrs...)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetExtras(values)
		scope.SetTag("message", msg)
		hub.CaptureException(err)
	})
}
