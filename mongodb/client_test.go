package mongodb

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// testClient builds an unconnected client with fixed limits for unit tests.
func testClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	config := &Config{
		ConnectionString:     "mongodb://localhost:27017",
		ReadOnly:             true,
		MaxDocumentsPerQuery: 100,
		MaxBytesPerQuery:     16 * 1024 * 1024,
		LogLevel:             "INFO",
		DefaultSampleSize:    DefaultSampleSize,
		DefaultLimit:         DefaultFindLimit,
	}
	return NewClient(config, logger)
}

func TestEffectiveLimit(t *testing.T) {
	client := testClient(t)

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero uses default", 0, 10},
		{"negative uses default", -5, 10},
		{"within ceiling", 50, 50},
		{"at ceiling", 100, 100},
		{"above ceiling is capped", 10000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.effectiveLimit(tt.requested); got != tt.want {
				t.Errorf("effectiveLimit(%d) = %d, want %d", tt.requested, got, tt.want)
			}
		})
	}
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name     string
		spec     []any
		wantName string
		wantArgs map[string]any
		wantErr  bool
	}{
		{
			name:     "name only",
			spec:     []any{"find"},
			wantName: "find",
			wantArgs: map[string]any{},
		},
		{
			name:     "name with args",
			spec:     []any{"find", map[string]any{"filter": map[string]any{"a": float64(1)}}},
			wantName: "find",
			wantArgs: map[string]any{"filter": map[string]any{"a": float64(1)}},
		},
		{
			name:    "empty spec",
			spec:    []any{},
			wantErr: true,
		},
		{
			name:    "nil spec",
			spec:    nil,
			wantErr: true,
		},
		{
			name:    "non-string name",
			spec:    []any{float64(42)},
			wantErr: true,
		},
		{
			name:    "empty string name",
			spec:    []any{""},
			wantErr: true,
		},
		{
			name:     "non-map args ignored",
			spec:     []any{"aggregate", "not a map"},
			wantName: "aggregate",
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := parseOperation(tt.spec, "Method")

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				var argErr *ArgumentError
				if !errors.As(err, &argErr) {
					t.Errorf("Expected *ArgumentError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if op.name != tt.wantName {
				t.Errorf("name = %q, want %q", op.name, tt.wantName)
			}
			if len(op.args) != len(tt.wantArgs) {
				t.Errorf("args = %v, want %v", op.args, tt.wantArgs)
			}
		})
	}
}

func TestOperationIntArg(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"float64 from JSON", float64(25), 25},
		{"int", 7, 7},
		{"int64", int64(9), 9},
		{"string is ignored", "12", 0},
		{"missing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}
			if tt.value != nil {
				args["limit"] = tt.value
			}
			op := operation{name: "find", args: args}
			if got := op.intArg("limit"); got != tt.want {
				t.Errorf("intArg = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOperationPipelineArg(t *testing.T) {
	op := operation{name: "aggregate", args: map[string]any{
		"pipeline": []any{
			map[string]any{"$match": map[string]any{"a": float64(1)}},
			"not a stage",
			map[string]any{"$limit": float64(5)},
		},
	}}

	stages := op.pipelineArg()

	if len(stages) != 2 {
		t.Fatalf("Expected 2 stages, got %d", len(stages))
	}
	if _, ok := stages[0]["$match"]; !ok {
		t.Error("First stage should be $match")
	}
	if _, ok := stages[1]["$limit"]; !ok {
		t.Error("Second stage should be $limit")
	}
}

func TestToSortDoc(t *testing.T) {
	doc := toSortDoc(map[string]any{
		"zeta":  float64(-1),
		"alpha": float64(1),
		"mid":   float64(1),
	})

	want := bson.D{
		{Key: "alpha", Value: float64(1)},
		{Key: "mid", Value: float64(1)},
		{Key: "zeta", Value: float64(-1)},
	}

	if len(doc) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(doc))
	}
	for i := range want {
		if doc[i].Key != want[i].Key || doc[i].Value != want[i].Value {
			t.Errorf("Entry %d = %+v, want %+v", i, doc[i], want[i])
		}
	}
}

func TestClientAccessors(t *testing.T) {
	client := testClient(t)

	if client.Config() == nil {
		t.Error("Config() should not be nil")
	}
	if client.Connection() == nil {
		t.Error("Connection() should not be nil")
	}
	if client.Connection().Connected() {
		t.Error("Unconnected client should report Connected() == false")
	}
}
