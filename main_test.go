package main

import (
	"context"
	"net"
	"testing"

	"TodoWebService/store"
)

type closeRecorder struct {
	*store.MemoryStore
	closed bool
}

func (s *closeRecorder) Close() error {
	s.closed = true
	return nil
}

// TestRunReturnsStartupErrors checks that a failing dependency is reported by
// run instead of exiting the process with the store still open.
func TestRunReturnsStartupErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Error reserving port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_ADDR", addr)
	t.Setenv("KAFKA_BROKER", "")

	st := &closeRecorder{MemoryStore: store.NewMemoryStore()}
	prev := openStore
	openStore = func(ctx context.Context, cfg store.Config) (store.Store, error) { return st, nil }
	defer func() { openStore = prev }()

	if err := run(); err == nil {
		t.Fatal("Expected run to fail when redis is unreachable")
	}
	if !st.closed {
		t.Error("Expected the store to be closed")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	if err := run(); err == nil {
		t.Fatal("Expected run to fail for an invalid log level")
	}
}
