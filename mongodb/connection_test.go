package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
)

func testConnection(t *testing.T) *Connection {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewConnection(logger)
}

func TestIsLegacyServer(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{"2.x", "2.6.12", true},
		{"3.x", "3.4.24", true},
		{"3.6", "3.6.23", true},
		{"4.x", "4.0.28", false},
		{"5.x", "5.0.2", false},
		{"unknown", "unknown", false},
		{"not connected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := testConnection(t)
			conn.serverVersion = tt.version

			if got := conn.IsLegacyServer(); got != tt.want {
				t.Errorf("IsLegacyServer() with version %q = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestConnectionZeroState(t *testing.T) {
	conn := testConnection(t)

	if conn.Connected() {
		t.Error("New connection should not report connected")
	}
	if conn.ServerVersion() != "" {
		t.Errorf("ServerVersion = %q, want empty", conn.ServerVersion())
	}
	if _, err := conn.Client(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Client() error = %v, want ErrNotConnected", err)
	}
}

func TestConnectionCloseBeforeConnect(t *testing.T) {
	conn := testConnection(t)

	// Safe and idempotent with no handle.
	conn.Close(context.Background())
	conn.Close(context.Background())

	if conn.Connected() {
		t.Error("Connection should remain closed")
	}
}
