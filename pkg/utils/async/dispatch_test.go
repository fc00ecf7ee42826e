package async_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/docfront/pkg/utils/async"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

// recordHandler forwards every record to a channel so tests can wait for
// logs written from the dispatched goroutine
type recordHandler struct {
	records chan slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.records <- r
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func newRecordingContext(t *testing.T) (context.Context, chan slog.Record) {
	t.Helper()
	records := make(chan slog.Record, 4)
	logger := slog.New(&recordHandler{records: records})
	return logging.With(context.Background(), logger), records
}

func waitRecord(t *testing.T, records chan slog.Record) slog.Record {
	t.Helper()
	select {
	case r := <-records:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no log record from dispatched task")
	}
	return slog.Record{}
}

func attrsOf(r slog.Record) map[string]slog.Value {
	attrs := map[string]slog.Value{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	return attrs
}

func TestDispatch_HandlerError(t *testing.T) {
	ctx, records := newRecordingContext(t)

	errListen := errors.New("address already in use")
	async.Dispatch(ctx, "http-server", func(ctx context.Context) error {
		return goerr.Wrap(errListen, "failed to start server", goerr.V("addr", "127.0.0.1:8080"))
	})

	r := waitRecord(t, records)
	gt.Equal(t, r.Level, slog.LevelError)
	gt.Equal(t, r.Message, "error in async handler")

	attrs := attrsOf(r)
	gt.Equal(t, attrs["task"].String(), "http-server")
	gt.Equal(t, attrs["addr"].String(), "127.0.0.1:8080")

	loggedErr, ok := attrs["error"].Any().(error)
	gt.True(t, ok)
	gt.True(t, errors.Is(loggedErr, errListen))
}

func TestDispatch_Panic(t *testing.T) {
	ctx, records := newRecordingContext(t)

	async.Dispatch(ctx, "http-server", func(ctx context.Context) error {
		panic("listener closed twice")
	})

	r := waitRecord(t, records)
	gt.Equal(t, r.Message, "panic in async handler")

	attrs := attrsOf(r)
	gt.Equal(t, attrs["task"].String(), "http-server")
	gt.String(t, attrs["stack"].String()).Contains("runtime/debug.Stack")

	loggedErr, ok := attrs["error"].Any().(error)
	gt.True(t, ok)
	gt.String(t, loggedErr.Error()).Contains("panic: listener closed twice")
}

func TestDispatch_NoLogOnSuccess(t *testing.T) {
	ctx, records := newRecordingContext(t)

	done := make(chan struct{})
	async.Dispatch(ctx, "http-server", func(ctx context.Context) error {
		defer close(done)
		return nil
	})

	<-done
	select {
	case r := <-records:
		t.Fatalf("unexpected log record: %s", r.Message)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatch_BackgroundContext(t *testing.T) {
	type observed struct {
		hub       *sentry.Hub
		logger    *slog.Logger
		cancelErr error
	}

	logger := slog.New(&recordHandler{records: make(chan slog.Record, 1)})
	hub := sentry.NewHub(nil, sentry.NewScope())

	ctx, cancel := context.WithCancel(logging.With(context.Background(), logger))
	ctx = sentry.SetHubOnContext(ctx, hub)

	start := make(chan struct{})
	result := make(chan observed, 1)
	async.Dispatch(ctx, "http-server", func(ctx context.Context) error {
		<-start
		result <- observed{
			hub:       sentry.GetHubFromContext(ctx),
			logger:    logging.From(ctx),
			cancelErr: ctx.Err(),
		}
		return nil
	})

	// The task outlives the caller's context
	cancel()
	close(start)

	select {
	case got := <-result:
		gt.True(t, got.hub == hub)
		gt.True(t, got.logger == logger)
		gt.NoError(t, got.cancelErr)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatched task did not run")
	}
}
