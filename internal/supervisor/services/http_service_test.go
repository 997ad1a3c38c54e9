// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// mockHTTPServer blocks in ListenAndServe until Shutdown unless failWith
// is set.
type mockHTTPServer struct {
	failWith      error
	shutdownErr   error
	started       chan struct{}
	stop          chan struct{}
	shutdownCalls atomic.Int32
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.started <- struct{}{}
	if m.failWith != nil {
		return m.failWith
	}
	<-m.stop
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCalls.Add(1)
	close(m.stop)
	return m.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newMockHTTPServer()
	svc := NewHTTPServerService(srv, ":0", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if n := srv.shutdownCalls.Load(); n != 1 {
		t.Errorf("Shutdown calls = %d, want 1", n)
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	t.Parallel()

	srv := newMockHTTPServer()
	srv.failWith = errors.New("address already in use")
	svc := NewHTTPServerService(srv, ":0", 0)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.failWith) {
		t.Errorf("Serve() error = %v, want wrapped listen error", err)
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("default shutdown timeout = %v", svc.shutdownTimeout)
	}
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	t.Parallel()

	srv := newMockHTTPServer()
	srv.shutdownErr = errors.New("connections still open")
	svc := NewHTTPServerService(srv, ":0", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	<-srv.started
	cancel()

	if err := <-done; !errors.Is(err, srv.shutdownErr) {
		t.Errorf("Serve() error = %v, want shutdown error", err)
	}
}

func TestHTTPServerService_String(t *testing.T) {
	t.Parallel()

	if got := NewHTTPServerService(newMockHTTPServer(), ":8080", 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}
