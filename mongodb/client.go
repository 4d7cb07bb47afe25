package mongodb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/olgasafonova/legacy-mongodb-mcp-server/metrics"
	"go.mongodb.org/mongo-driver/bson"
)

// Client composes the configuration and connection handle behind every tool.
// It holds no per-call state; tool calls are independent and safe to dispatch
// concurrently over the single handle.
type Client struct {
	config *Config
	conn   *Connection
	logger *slog.Logger
}

// NewClient creates a tool client with an unconnected connection manager.
// Call Connect on the manager before dispatching tools.
func NewClient(config *Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{config: config, conn: NewConnection(logger), logger: logger}
}

// Config returns the immutable server configuration.
func (c *Client) Config() *Config {
	return c.config
}

// Connection returns the connection manager.
func (c *Client) Connection() *Connection {
	return c.conn
}

// effectiveLimit resolves a requested document limit against the default and
// the configured ceiling. Requests above the ceiling are capped silently.
func (c *Client) effectiveLimit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = c.config.DefaultLimit
	}
	if limit > c.config.MaxDocumentsPerQuery {
		limit = c.config.MaxDocumentsPerQuery
	}
	return limit
}

// operation is a parsed [name, argsMap] tool argument, used by explain and
// export_data.
type operation struct {
	name string
	args map[string]any
}

// parseOperation accepts [name] or [name, argsMap]. A non-map second element
// is ignored and treated as empty arguments.
func parseOperation(spec []any, what string) (operation, error) {
	if len(spec) == 0 {
		return operation{}, &ArgumentError{
			Code:    ArgsCodeMissingMethod,
			Message: what + " is required",
		}
	}
	name, ok := spec[0].(string)
	if !ok || name == "" {
		return operation{}, &ArgumentError{
			Code:    ArgsCodeMissingMethod,
			Message: what + " name must be a string",
		}
	}
	args := map[string]any{}
	if len(spec) > 1 {
		if m, ok := spec[1].(map[string]any); ok {
			args = m
		}
	}
	return operation{name: name, args: args}, nil
}

func (op operation) docArg(key string) map[string]any {
	if m, ok := op.args[key].(map[string]any); ok {
		return m
	}
	return nil
}

func (op operation) intArg(key string) int {
	switch v := op.args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (op operation) pipelineArg() []map[string]any {
	raw, ok := op.args["pipeline"].([]any)
	if !ok {
		return nil
	}
	stages := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if stage, ok := entry.(map[string]any); ok {
			stages = append(stages, stage)
		}
	}
	return stages
}

// toSortDoc converts a JSON sort map to an ordered driver document. Keys are
// sorted for a deterministic order; JSON objects do not preserve one.
func toSortDoc(sortSpec map[string]any) bson.D {
	keys := make([]string, 0, len(sortSpec))
	for k := range sortSpec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: sortSpec[k]})
	}
	return doc
}

// marshalJSON renders a fixed-shape result as plain JSON.
func marshalJSON(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	return string(out), nil
}

// observeCommand records command latency and outcome metrics.
func observeCommand(command string, start time.Time, err error) {
	metrics.RecordDatabaseCommand(command, time.Since(start).Seconds(), err == nil)
}
