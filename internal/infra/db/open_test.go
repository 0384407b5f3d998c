package db

import (
	"context"
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpen(t *testing.T) {
	conn, err := Open(context.Background(), "sqlite", ":memory:", Pool{MaxOpen: 1})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer conn.Close()
	if got := conn.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "nope", "", DefaultPool); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
