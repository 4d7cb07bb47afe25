package mongodb

import (
	"context"
	"time"

	"github.com/olgasafonova/legacy-mongodb-mcp-server/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Find runs a find query with the index-usage policy, the effective document
// limit, and response truncation applied.
func (c *Client) Find(ctx context.Context, args FindArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}
	db := client.Database(args.Database)
	coll := db.Collection(args.Collection)

	filter := args.Filter
	if filter == nil {
		filter = map[string]any{}
	}

	if err := c.enforceIndexCheck(ctx, db, args.Database, args.Collection, filter); err != nil {
		return "", err
	}

	opts := options.Find().SetLimit(int64(c.effectiveLimit(args.Limit)))
	if args.Projection != nil {
		opts.SetProjection(bson.M(args.Projection))
	}
	if len(args.Sort) > 0 {
		opts.SetSort(toSortDoc(args.Sort))
	}

	start := time.Now()
	cursor, err := coll.Find(ctx, bson.M(filter), opts)
	if err != nil {
		observeCommand("find", start, err)
		return "", err
	}
	var documents []bson.M
	err = cursor.All(ctx, &documents)
	observeCommand("find", start, err)
	if err != nil {
		return "", err
	}
	if documents == nil {
		documents = []bson.M{}
	}

	payload, err := marshalExtJSON(bson.M{
		"database":       args.Database,
		"collection":     args.Collection,
		"documentsCount": len(documents),
		"documents":      documents,
	}, JSONModeRelaxed)
	if err != nil {
		return "", err
	}

	return c.truncate(payload, args.ResponseBytesLimit), nil
}

// Count returns the number of matching documents. Legacy servers get the
// deprecated count command first, falling back to CountDocuments when the
// server rejects it; modern servers go straight to CountDocuments.
func (c *Client) Count(ctx context.Context, args CountArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}
	db := client.Database(args.Database)

	query := args.Query
	if query == nil {
		query = map[string]any{}
	}

	var docCount int64
	useLegacy := c.conn.IsLegacyServer()

	if useLegacy {
		cmd := bson.D{{Key: "count", Value: args.Collection}}
		if len(query) > 0 {
			cmd = append(cmd, bson.E{Key: "query", Value: bson.M(query)})
		}

		start := time.Now()
		var res struct {
			N int64 `bson:"n"`
		}
		err = db.RunCommand(ctx, cmd).Decode(&res)
		observeCommand("count", start, err)
		docCount = res.N

		if err != nil {
			if !isUnsupportedOperation(err) {
				return "", err
			}
			useLegacy = false
		}
	}

	if !useLegacy {
		start := time.Now()
		docCount, err = db.Collection(args.Collection).CountDocuments(ctx, bson.M(query))
		observeCommand("countDocuments", start, err)
		if err != nil {
			return "", err
		}
	}

	return marshalJSON(CountResult{
		Database:   args.Database,
		Collection: args.Collection,
		Count:      docCount,
	})
}

// Aggregate runs an aggregation pipeline with the read-only and
// unsupported-stage guards, an implicit $limit, and response truncation.
func (c *Client) Aggregate(ctx context.Context, args AggregateArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}
	coll := client.Database(args.Database).Collection(args.Collection)

	if err := rejectUnsupportedStages(args.Pipeline); err != nil {
		return "", err
	}
	if err := rejectWriteStages(args.Pipeline); err != nil {
		return "", err
	}

	pipeline := ensureLimitStage(args.Pipeline, c.config.MaxDocumentsPerQuery)

	start := time.Now()
	cursor, err := coll.Aggregate(ctx, toBSONPipeline(pipeline))
	if err != nil {
		observeCommand("aggregate", start, err)
		return "", err
	}
	var documents []bson.M
	err = cursor.All(ctx, &documents)
	observeCommand("aggregate", start, err)
	if err != nil {
		return "", err
	}
	if documents == nil {
		documents = []bson.M{}
	}

	payload, err := marshalExtJSON(bson.M{
		"database":       args.Database,
		"collection":     args.Collection,
		"documentsCount": len(documents),
		"documents":      documents,
	}, JSONModeRelaxed)
	if err != nil {
		return "", err
	}

	return c.truncate(payload, args.ResponseBytesLimit), nil
}

// CollectionIndexes describes the indexes defined on a collection.
func (c *Client) CollectionIndexes(ctx context.Context, args CollectionIndexesArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}
	coll := client.Database(args.Database).Collection(args.Collection)

	start := time.Now()
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		observeCommand("listIndexes", start, err)
		return "", err
	}
	var indexes []bson.M
	err = cursor.All(ctx, &indexes)
	observeCommand("listIndexes", start, err)
	if err != nil {
		return "", err
	}
	if indexes == nil {
		indexes = []bson.M{}
	}

	return marshalExtJSON(bson.M{
		"database":   args.Database,
		"collection": args.Collection,
		"indexes":    indexes,
	}, JSONModeRelaxed)
}

// CollectionSchema infers a schema summary from a document sample. $sample is
// preferred; servers that reject the stage fall back silently to a bounded
// find, and only the reported sampleSize reflects what was actually read.
func (c *Client) CollectionSchema(ctx context.Context, args CollectionSchemaArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}
	coll := client.Database(args.Database).Collection(args.Collection)

	sampleSize := args.SampleSize
	if sampleSize <= 0 {
		sampleSize = c.config.DefaultSampleSize
	}

	var docs []bson.M
	start := time.Now()
	cursor, err := coll.Aggregate(ctx, []bson.M{{"$sample": bson.M{"size": sampleSize}}})
	if err == nil {
		err = cursor.All(ctx, &docs)
	}
	observeCommand("sample", start, err)

	if err != nil {
		if !isUnsupportedOperation(err) {
			return "", err
		}
		start = time.Now()
		cursor, err = coll.Find(ctx, bson.M{}, options.Find().SetLimit(int64(sampleSize)))
		if err == nil {
			err = cursor.All(ctx, &docs)
		}
		observeCommand("find", start, err)
		if err != nil {
			return "", err
		}
	}

	payload, err := marshalJSON(map[string]any{
		"database":   args.Database,
		"collection": args.Collection,
		"sampleSize": len(docs),
		"schema":     InferSchema(docs),
	})
	if err != nil {
		return "", err
	}

	return c.truncate(payload, args.ResponseBytesLimit), nil
}

// truncate applies the byte limit and counts truncations.
func (c *Client) truncate(payload string, override int) string {
	limit := c.responseLimit(override)
	if len(payload) > limit {
		metrics.ResponsesTruncated.Inc()
	}
	return truncateResponse(payload, limit)
}
