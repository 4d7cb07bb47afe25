package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestGetServerConfigNeverFails(t *testing.T) {
	client := testClient(t)

	payload, err := client.GetServerConfig(context.Background(), GetServerConfigArgs{})
	if err != nil {
		t.Fatalf("GetServerConfig must not fail: %v", err)
	}

	var result ServerConfigResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if result.Connected {
		t.Error("Unconnected client should report connected = false")
	}
	if !result.ReadOnlyMode {
		t.Error("Expected read-only mode from test config")
	}
	if strings.Contains(payload, "s3cret") {
		t.Error("Config payload must never carry credentials")
	}
}

func TestClampLogLimit(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name      string
		requested *int
		want      int
	}{
		{"nil uses default", nil, 50},
		{"zero clamps to one", intp(0), 1},
		{"negative clamps to one", intp(-7), 1},
		{"within range", intp(200), 200},
		{"above max clamps", intp(5000), 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampLogLimit(tt.requested); got != tt.want {
				t.Errorf("clampLogLimit = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToolsRequireConnection(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"ListDatabases": func() error {
			_, err := client.ListDatabases(ctx, ListDatabasesArgs{})
			return err
		},
		"ListCollections": func() error {
			_, err := client.ListCollections(ctx, ListCollectionsArgs{Database: "db"})
			return err
		},
		"Find": func() error {
			_, err := client.Find(ctx, FindArgs{Database: "db", Collection: "c"})
			return err
		},
		"Count": func() error {
			_, err := client.Count(ctx, CountArgs{Database: "db", Collection: "c"})
			return err
		},
		"Aggregate": func() error {
			_, err := client.Aggregate(ctx, AggregateArgs{Database: "db", Collection: "c"})
			return err
		},
		"CollectionIndexes": func() error {
			_, err := client.CollectionIndexes(ctx, CollectionIndexesArgs{Database: "db", Collection: "c"})
			return err
		},
		"CollectionSchema": func() error {
			_, err := client.CollectionSchema(ctx, CollectionSchemaArgs{Database: "db", Collection: "c"})
			return err
		},
		"CollectionStorageSize": func() error {
			_, err := client.CollectionStorageSize(ctx, CollectionStorageSizeArgs{Database: "db", Collection: "c"})
			return err
		},
		"DBStats": func() error {
			_, err := client.DBStats(ctx, DBStatsArgs{Database: "db"})
			return err
		},
		"Explain": func() error {
			_, err := client.Explain(ctx, ExplainArgs{Database: "db", Collection: "c", Method: []any{"find"}})
			return err
		},
		"ExportData": func() error {
			_, err := client.ExportData(ctx, ExportDataArgs{Database: "db", Collection: "c", ExportTitle: "t", ExportTarget: []any{"find"}})
			return err
		},
		"MongoDBLogs": func() error {
			_, err := client.MongoDBLogs(ctx, MongoDBLogsArgs{})
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrNotConnected) {
				t.Errorf("Expected ErrNotConnected, got %v", err)
			}
		})
	}
}
