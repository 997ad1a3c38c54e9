// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRequestID()
	id2 := GenerateRequestID()
	if id1 == id2 {
		t.Error("request IDs should be unique")
	}
	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("request ID %q is not a UUID: %v", id1, err)
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want req-123", got)
	}

	ctx = ContextWithNewRequestID(context.Background())
	if RequestIDFromContext(ctx) == "" {
		t.Error("expected generated request ID")
	}
}

func TestUserKeyContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithUserKey(context.Background(), "alice")
	if got := UserKeyFromContext(ctx); got != "alice" {
		t.Errorf("UserKeyFromContext() = %q, want alice", got)
	}
	if got := UserKeyFromContext(context.Background()); got != "" {
		t.Errorf("expected empty user key, got %q", got)
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-456")
	ctx = ContextWithUserKey(ctx, "bob")

	Ctx(ctx).Info().Msg("profile saved")

	output := buf.String()
	for _, want := range []string{`"request_id":"req-456"`, `"user_key":"bob"`, "profile saved"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestLoggerFromContext_NoLogger(t *testing.T) {
	t.Parallel()

	logger := LoggerFromContext(context.Background())
	if logger.GetLevel() != Logger().GetLevel() {
		t.Error("expected global logger when none is stored in context")
	}
}
