package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxLogEntries = 1024

// clampLogLimit resolves the log entry limit: nil means the default of 50,
// explicit values are clamped to [1, maxLogEntries].
func clampLogLimit(requested *int) int {
	limit := 50
	if requested != nil {
		limit = *requested
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLogEntries {
		limit = maxLogEntries
	}
	return limit
}

// ListDatabases lists all databases visible on the connection.
func (c *Client) ListDatabases(ctx context.Context, _ ListDatabasesArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}

	start := time.Now()
	var res struct {
		Databases []struct {
			Name       string `bson:"name"`
			SizeOnDisk int64  `bson:"sizeOnDisk"`
			Empty      bool   `bson:"empty"`
		} `bson:"databases"`
		TotalSize int64 `bson:"totalSize"`
	}
	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "listDatabases", Value: 1}}).Decode(&res)
	observeCommand("listDatabases", start, err)
	if err != nil {
		return "", err
	}

	databases := make([]DatabaseInfo, 0, len(res.Databases))
	for _, db := range res.Databases {
		databases = append(databases, DatabaseInfo{
			Name:       db.Name,
			SizeOnDisk: db.SizeOnDisk,
			Empty:      db.Empty,
		})
	}

	return marshalJSON(ListDatabasesResult{
		Databases: databases,
		TotalSize: res.TotalSize,
	})
}

// ListCollections lists the collection names in a database.
func (c *Client) ListCollections(ctx context.Context, args ListCollectionsArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}

	start := time.Now()
	collections, err := client.Database(args.Database).ListCollectionNames(ctx, bson.D{})
	observeCommand("listCollections", start, err)
	if err != nil {
		return "", err
	}
	if collections == nil {
		collections = []string{}
	}

	return marshalJSON(ListCollectionsResult{
		Database:    args.Database,
		Collections: collections,
	})
}

// CollectionStorageSize reports collStats for a collection.
func (c *Client) CollectionStorageSize(ctx context.Context, args CollectionStorageSizeArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}

	start := time.Now()
	var stats bson.M
	err = client.Database(args.Database).RunCommand(ctx, bson.D{{Key: "collStats", Value: args.Collection}}).Decode(&stats)
	observeCommand("collStats", start, err)
	if err != nil {
		return "", err
	}

	indexSizes := stats["indexSizes"]
	if indexSizes == nil {
		indexSizes = bson.M{}
	}

	return marshalJSON(StorageSizeResult{
		Database:       args.Database,
		Collection:     args.Collection,
		StorageSize:    stats["storageSize"],
		Size:           stats["size"],
		Count:          stats["count"],
		AvgObjSize:     stats["avgObjSize"],
		TotalIndexSize: stats["totalIndexSize"],
		IndexSizes:     indexSizes,
	})
}

// DBStats reports dbStats for a database.
func (c *Client) DBStats(ctx context.Context, args DBStatsArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}

	start := time.Now()
	var stats bson.M
	err = client.Database(args.Database).RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats)
	observeCommand("dbStats", start, err)
	if err != nil {
		return "", err
	}

	views := stats["views"]
	if views == nil {
		views = 0
	}

	return marshalExtJSON(bson.M{
		"database":    args.Database,
		"collections": stats["collections"],
		"views":       views,
		"objects":     stats["objects"],
		"avgObjSize":  stats["avgObjSize"],
		"dataSize":    stats["dataSize"],
		"storageSize": stats["storageSize"],
		"numExtents":  stats["numExtents"],
		"indexes":     stats["indexes"],
		"indexSize":   stats["indexSize"],
		"fileSize":    stats["fileSize"],
		"nsSizeMB":    stats["nsSizeMB"],
	}, JSONModeRelaxed)
}

// MongoDBLogs returns the most recent logged mongod events via getLog.
// Permission failures carry a hint; getLog usually needs admin privileges.
func (c *Client) MongoDBLogs(ctx context.Context, args MongoDBLogsArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}

	limit := clampLogLimit(args.Limit)

	logType := "global"
	if args.Type == "startupWarnings" {
		logType = "startupWarnings"
	}

	start := time.Now()
	var res struct {
		Log               []string `bson:"log"`
		TotalLinesWritten any      `bson:"totalLinesWritten"`
	}
	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "getLog", Value: logType}}).Decode(&res)
	observeCommand("getLog", start, err)
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) {
			return "", &HintedError{
				Err:  err,
				Hint: "The getLog command may require administrative privileges.",
			}
		}
		return "", err
	}

	entries := res.Log
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if entries == nil {
		entries = []string{}
	}

	return marshalJSON(LogsResult{
		Type:              logType,
		TotalLinesWritten: res.TotalLinesWritten,
		EntriesReturned:   len(entries),
		Logs:              entries,
	})
}

// GetServerConfig reports the redacted configuration and connection status.
// It never fails.
func (c *Client) GetServerConfig(_ context.Context, _ GetServerConfigArgs) (string, error) {
	return marshalJSON(ServerConfigResult{
		Config:         c.config.Redacted(),
		Connected:      c.conn.Connected(),
		ServerVersion:  c.conn.ServerVersion(),
		ReadOnlyMode:   c.config.ReadOnly,
		IndexCheckMode: c.config.IndexCheck,
	})
}
