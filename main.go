// Legacy MongoDB MCP Server - A Model Context Protocol server for legacy
// MongoDB deployments (2.x and 3.x). Provides read-only tools for exploring
// databases, running queries, and diagnosing query plans.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/legacy-mongodb-mcp-server/mongodb"
	"github.com/olgasafonova/legacy-mongodb-mcp-server/tools"
	"github.com/olgasafonova/legacy-mongodb-mcp-server/tracing"
	"github.com/spf13/pflag"
)

const (
	ServerName    = "legacy-mongodb-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	dryRun := pflag.Bool("dry-run", false, "validate configuration and list tools without connecting")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", ServerName, ServerVersion)
		return
	}

	// A .env file is optional; environment variables take precedence.
	_ = godotenv.Load()

	config := mongodb.LoadConfig()

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(config.LogLevel),
	}))

	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dryRun {
		printDryRun(config)
		return
	}

	// OpenTelemetry tracing (no-op unless OTEL_ENABLED=true)
	shutdown, err := tracing.Setup(context.Background(), tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing setup failed, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	client := mongodb.NewClient(config, logger)

	ctx := context.Background()
	if err := client.Connection().Connect(ctx, config.ConnectionString); err != nil {
		log.Fatalf("Failed to connect to MongoDB at %s: %v", config.RedactedConnectionString(), err)
	}
	defer client.Connection().Close(context.Background())

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: instructions(),
	})

	registry := tools.NewHandlerRegistry(client, logger)
	registry.RegisterAll(server)

	logger.Info("Starting Legacy MongoDB MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"server_version", client.Connection().ServerVersion(),
		"connection", config.RedactedConnectionString(),
		"read_only", config.ReadOnly,
		"index_check", config.IndexCheck,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func logLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// printDryRun writes the redacted configuration and the tool catalog to
// stdout, then exits without touching the database.
func printDryRun(config *mongodb.Config) {
	out, _ := json.MarshalIndent(config.Redacted(), "", "  ")
	fmt.Println(string(out))
	fmt.Println()
	fmt.Println("Tools:")
	for _, spec := range tools.AllTools {
		fmt.Printf("  %-26s %s\n", spec.Name, spec.Title)
	}
}

func instructions() string {
	var b strings.Builder
	b.WriteString(`Legacy MongoDB MCP Server provides read-only tools for MongoDB deployments, including pre-4.0 servers.

Available tools:
`)
	for _, spec := range tools.AllTools {
		b.WriteString("- ")
		b.WriteString(spec.Name)
		b.WriteString(": ")
		b.WriteString(spec.Title)
		b.WriteString("\n")
	}
	b.WriteString(`
Configure via environment variables:
- MDB_MCP_CONNECTION_STRING: MongoDB connection string (required)
- MDB_MCP_READ_ONLY: enforce read-only mode (default: true)
- MDB_MCP_INDEX_CHECK: reject unindexed find queries (default: false)
- MDB_MCP_MAX_DOCUMENTS_PER_QUERY: per-query document cap (default: 100)
- MDB_MCP_MAX_BYTES_PER_QUERY: per-response byte cap (default: 16777216)
- MDB_MCP_LOG_LEVEL: DEBUG, INFO, WARN, or ERROR (default: INFO)`)
	return b.String()
}
