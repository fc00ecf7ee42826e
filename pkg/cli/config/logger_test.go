package config_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/cli/config"
)

func decodeJSONLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		gt.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_Configure_Level(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{level: "debug", want: []string{"render", "publish", "retry", "failed"}},
		{level: "INFO", want: []string{"publish", "retry", "failed"}},
		{level: "Warn", want: []string{"retry", "failed"}},
		{level: "error", want: []string{"failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := (&config.Logger{Level: tt.level, JSON: true, Writer: &buf}).Configure()
			gt.NoError(t, err)

			logger.Debug("render")
			logger.Info("publish")
			logger.Warn("retry")
			logger.Error("failed")

			var got []string
			for _, entry := range decodeJSONLines(t, &buf) {
				got = append(got, entry["msg"].(string))
			}
			gt.A(t, got).Equal(tt.want)
		})
	}
}

func TestLogger_Configure_InvalidLevel(t *testing.T) {
	for _, level := range []string{"", "verbose", "fatal"} {
		t.Run("level "+level, func(t *testing.T) {
			logger, err := (&config.Logger{Level: level}).Configure()
			gt.Error(t, err).Contains("invalid log level")
			gt.True(t, logger == nil)

			ge := goerr.Unwrap(err)
			gt.NotNil(t, ge)
			gt.Equal(t, ge.Values()["level"], any(level))
		})
	}
}

func TestLogger_Configure_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "info", Writer: &buf}).Configure()
	gt.NoError(t, err)

	logger.Info("Rendered landing page", "mode", "development")

	gt.String(t, buf.String()).Contains("Rendered landing page").Contains("development")
	gt.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestLogger_Configure_ErrorValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "info", JSON: true, Writer: &buf}).Configure()
	gt.NoError(t, err)

	uploadErr := goerr.New("failed to upload page",
		goerr.V("bucket", "docs-site"),
		goerr.V("object", "stable/index.html"),
	)
	logger.Error("Publish failed", slog.Any("error", uploadErr))

	gt.String(t, buf.String()).
		Contains(`"bucket":"docs-site"`).
		Contains(`"object":"stable/index.html"`).
		Contains("failed to upload page")
}

func TestLogger_Configure_RedactsSentryDSN(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "info", JSON: true, Writer: &buf}).Configure()
	gt.NoError(t, err)

	sentryCfg := config.Sentry{DSN: "https://public@sentry.example.com/1", Env: "staging"}
	logger.Info("Starting server", slog.Any("sentry", sentryCfg))

	gt.String(t, buf.String()).
		NotContains("public@sentry.example.com").
		Contains("staging")
}

func TestLogger_Flags_EnvSources(t *testing.T) {
	t.Setenv("DOCFRONT_LOG_LEVEL", "warn")
	t.Setenv("DOCFRONT_LOG_JSON", "true")

	var cfg config.Logger
	cmd := &cli.Command{
		Name:  "docfront",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), []string{"docfront"}))

	gt.Equal(t, cfg.Level, "warn")
	gt.True(t, cfg.JSON)
}
