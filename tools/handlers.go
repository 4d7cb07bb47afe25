package tools

import (
	"context"
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/legacy-mongodb-mcp-server/metrics"
	"github.com/olgasafonova/legacy-mongodb-mcp-server/mongodb"
	"github.com/olgasafonova/legacy-mongodb-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *mongodb.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *mongodb.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{client: client, logger: logger}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "ListDatabases":
		register(h, server, tool, spec, h.client.ListDatabases)
	case "ListCollections":
		register(h, server, tool, spec, h.client.ListCollections)
	case "Find":
		register(h, server, tool, spec, h.client.Find)
	case "Count":
		register(h, server, tool, spec, h.client.Count)
	case "Aggregate":
		register(h, server, tool, spec, h.client.Aggregate)
	case "CollectionIndexes":
		register(h, server, tool, spec, h.client.CollectionIndexes)
	case "CollectionSchema":
		register(h, server, tool, spec, h.client.CollectionSchema)
	case "CollectionStorageSize":
		register(h, server, tool, spec, h.client.CollectionStorageSize)
	case "DBStats":
		register(h, server, tool, spec, h.client.DBStats)
	case "Explain":
		register(h, server, tool, spec, h.client.Explain)
	case "ExportData":
		register(h, server, tool, spec, h.client.ExportData)
	case "MongoDBLogs":
		register(h, server, tool, spec, h.client.MongoDBLogs)
	case "GetServerConfig":
		register(h, server, tool, spec, h.client.GetServerConfig)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register wraps a client method with panic recovery, metrics, tracing, and
// logging. Every tool returns a single JSON text blob; failures become the
// in-band {"error": ...} payload and never surface as MCP protocol errors.
func register[Args any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (string, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (result *mcp.CallToolResult, _ any, _ error) {
		requestID := uuid.NewString()
		defer h.recoverPanic(spec.Name, requestID, &result)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(
			attribute.String("mcp.request.id", requestID),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)
		if database, collection := databaseTarget(args); database != "" || collection != "" {
			tracing.AddDatabaseAttributes(span, database, collection)
		}

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		payload, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Error("Tool failed",
				"tool", spec.Name,
				"request_id", requestID,
				"error", err,
			)
			return textResult(mongodb.ErrorPayload(err)), nil, nil
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logger.Info("Tool executed",
			"tool", spec.Name,
			"request_id", requestID,
			"output_bytes", len(payload),
			"duration_seconds", duration,
		)
		return textResult(payload), nil, nil
	})
}

// recoverPanic converts a handler panic into the in-band error payload.
func (h *HandlerRegistry) recoverPanic(toolName, requestID string, result **mcp.CallToolResult) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"request_id", requestID,
			"panic", rec,
			"stack", string(debug.Stack()))
		*result = textResult(`{"error": "internal error"}`)
	}
}

// databaseTarget extracts the Database and Collection fields from a tool
// argument struct when present, for span attributes. Tools without a
// database target (list_databases, get_server_config) yield empty strings.
func databaseTarget(args any) (database, collection string) {
	v := reflect.ValueOf(args)
	if v.Kind() != reflect.Struct {
		return "", ""
	}
	if f := v.FieldByName("Database"); f.IsValid() && f.Kind() == reflect.String {
		database = f.String()
	}
	if f := v.FieldByName("Collection"); f.IsValid() && f.Kind() == reflect.String {
		collection = f.String()
	}
	return database, collection
}

func textResult(payload string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: payload}},
	}
}
