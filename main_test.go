package main

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/olgasafonova/legacy-mongodb-mcp-server/tools"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want slog.Level
	}{
		{"debug", "DEBUG", slog.LevelDebug},
		{"debug lowercase", "debug", slog.LevelDebug},
		{"info", "INFO", slog.LevelInfo},
		{"warn", "WARN", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "ERROR", slog.LevelError},
		{"unknown defaults to info", "TRACE", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logLevel(tt.in); got != tt.want {
				t.Errorf("logLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInstructionsListsAllTools(t *testing.T) {
	text := instructions()

	for _, spec := range tools.AllTools {
		if !strings.Contains(text, spec.Name) {
			t.Errorf("instructions missing tool %q", spec.Name)
		}
	}
}

func TestInstructionsListsEnvVars(t *testing.T) {
	text := instructions()

	for _, env := range []string{
		"MDB_MCP_CONNECTION_STRING",
		"MDB_MCP_READ_ONLY",
		"MDB_MCP_INDEX_CHECK",
		"MDB_MCP_MAX_DOCUMENTS_PER_QUERY",
		"MDB_MCP_MAX_BYTES_PER_QUERY",
		"MDB_MCP_LOG_LEVEL",
	} {
		if !strings.Contains(text, env) {
			t.Errorf("instructions missing environment variable %q", env)
		}
	}
}
