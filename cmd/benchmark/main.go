// Command benchmark measures tool-level latency against a live MongoDB
// deployment. It connects with the same configuration as the server and
// times the common read operations. Useful for sizing limits before
// pointing an MCP client at a slow legacy replica.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/legacy-mongodb-mcp-server/mongodb"
	"github.com/spf13/pflag"
)

func main() {
	database := pflag.String("database", "test", "database to benchmark against")
	collection := pflag.String("collection", "", "collection to benchmark against (required for query timings)")
	runs := pflag.Int("runs", 5, "timed runs per operation")
	pflag.Parse()

	config := mongodb.LoadConfig()
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := mongodb.NewClient(config, logger)
	ctx := context.Background()

	start := time.Now()
	if err := client.Connection().Connect(ctx, config.ConnectionString); err != nil {
		fmt.Fprintf(os.Stderr, "Connect failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Connection().Close(ctx)
	fmt.Printf("Connected to MongoDB %s in %v\n\n", client.Connection().ServerVersion(), time.Since(start).Round(time.Millisecond))

	measure("list_databases", *runs, func() error {
		_, err := client.ListDatabases(ctx, mongodb.ListDatabasesArgs{})
		return err
	})

	measure("list_collections", *runs, func() error {
		_, err := client.ListCollections(ctx, mongodb.ListCollectionsArgs{Database: *database})
		return err
	})

	measure("db_stats", *runs, func() error {
		_, err := client.DBStats(ctx, mongodb.DBStatsArgs{Database: *database})
		return err
	})

	if *collection == "" {
		fmt.Println("No --collection given, skipping query timings")
		return
	}

	measure("find", *runs, func() error {
		_, err := client.Find(ctx, mongodb.FindArgs{
			Database:   *database,
			Collection: *collection,
		})
		return err
	})

	measure("count", *runs, func() error {
		_, err := client.Count(ctx, mongodb.CountArgs{
			Database:   *database,
			Collection: *collection,
		})
		return err
	})

	measure("collection_schema", *runs, func() error {
		_, err := client.CollectionSchema(ctx, mongodb.CollectionSchemaArgs{
			Database:   *database,
			Collection: *collection,
			SampleSize: 20,
		})
		return err
	})

	measure("collection_indexes", *runs, func() error {
		_, err := client.CollectionIndexes(ctx, mongodb.CollectionIndexesArgs{
			Database:   *database,
			Collection: *collection,
		})
		return err
	})
}

// measure runs fn the requested number of times and prints min/avg/max.
func measure(name string, runs int, fn func() error) {
	var total, min, max time.Duration

	for i := 0; i < runs; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			fmt.Printf("%-22s error: %v\n", name, err)
			return
		}
		elapsed := time.Since(start)

		total += elapsed
		if min == 0 || elapsed < min {
			min = elapsed
		}
		if elapsed > max {
			max = elapsed
		}
	}

	avg := total / time.Duration(runs)
	fmt.Printf("%-22s min %8v  avg %8v  max %8v  (%d runs)\n",
		name, min.Round(time.Microsecond), avg.Round(time.Microsecond), max.Round(time.Microsecond), runs)
}
