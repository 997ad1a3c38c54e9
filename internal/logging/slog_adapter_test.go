// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Warn("service restarting",
		slog.String("service", "http"),
		slog.Int("attempt", 2),
		slog.Duration("backoff", time.Second),
		slog.Any("err", errors.New("listener closed")),
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"http"`,
		`"attempt":2`,
		`"err":"listener closed"`,
		"service restarting",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With(slog.String("supervisor", "root")).
		WithGroup("event")

	logger.Info("terminated", slog.String("name", "api"))

	output := buf.String()
	if !strings.Contains(output, `"supervisor":"root"`) {
		t.Errorf("expected pre-configured attr in output: %s", output)
	}
	if !strings.Contains(output, `"event.name":"api"`) {
		t.Errorf("expected grouped key in output: %s", output)
	}
}

func TestSlogHandler_NestedGroupAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))
	logger.Info("nested", slog.Group("svc", slog.String("id", "7")))

	if !strings.Contains(buf.String(), `"svc.id":"7"`) {
		t.Errorf("expected flattened group key: %s", buf.String())
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn-level logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
