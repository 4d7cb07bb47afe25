package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connection timeouts applied once at connect time. There is no cancellation
// or timeout propagation beyond these.
const (
	serverSelectionTimeout = 10 * time.Second
	connectTimeout         = 10 * time.Second
	socketTimeout          = 30 * time.Second
)

// Connection owns the single MongoDB client handle for the process. It is
// created at startup, read by concurrently dispatched tool calls, and closed
// once at shutdown. The driver pools connections beneath the handle.
type Connection struct {
	client        *mongo.Client
	serverVersion string
	logger        *slog.Logger
}

// NewConnection creates an unconnected Connection.
func NewConnection(logger *slog.Logger) *Connection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connection{logger: logger}
}

// Connect establishes the MongoDB connection, replacing any existing handle.
// It pings the server and records the reported version. A failure here is
// fatal at startup; there is no retry.
func (c *Connection) Connect(ctx context.Context, connectionString string) error {
	if c.client != nil {
		_ = c.client.Disconnect(ctx)
		c.client = nil
		c.serverVersion = ""
	}

	opts := options.Client().
		ApplyURI(connectionString).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(socketTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	var info struct {
		Version string `bson:"version"`
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&info); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to read server version: %w", err)
	}
	if info.Version == "" {
		info.Version = "unknown"
	}

	c.client = client
	c.serverVersion = info.Version
	c.logger.Info("Connected to MongoDB", "server_version", c.serverVersion)

	if !strings.HasPrefix(c.serverVersion, "2.") && !strings.HasPrefix(c.serverVersion, "3.") {
		c.logger.Warn("Non-legacy MongoDB version detected; this server is optimized for versions <4.0",
			"server_version", c.serverVersion)
	}

	return nil
}

// Client returns the active handle, or ErrNotConnected before a successful
// Connect.
func (c *Connection) Client() (*mongo.Client, error) {
	if c.client == nil {
		return nil, ErrNotConnected
	}
	return c.client, nil
}

// Connected reports whether a handle is active.
func (c *Connection) Connected() bool {
	return c.client != nil
}

// ServerVersion returns the version reported at connect time, or "" when
// not connected.
func (c *Connection) ServerVersion() string {
	return c.serverVersion
}

// IsLegacyServer reports whether the connected server is a 2.x or 3.x
// deployment, which selects the legacy-first API fallbacks.
func (c *Connection) IsLegacyServer() bool {
	return strings.HasPrefix(c.serverVersion, "2.") || strings.HasPrefix(c.serverVersion, "3.")
}

// Close releases the handle. Idempotent and safe before Connect.
func (c *Connection) Close(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Disconnect(ctx); err != nil {
		c.logger.Error("Error closing MongoDB connection", "error", err)
	}
	c.client = nil
	c.serverVersion = ""
}
