package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

func TestFrom_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("render_id", "r-1")

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("rendered")

	gt.String(t, buf.String()).Contains("render_id=r-1").Contains("msg=rendered")
}

func TestFrom_FallsBackToDefault(t *testing.T) {
	gt.Equal(t, logging.From(context.Background()), slog.Default())
}
