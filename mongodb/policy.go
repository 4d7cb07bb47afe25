package mongodb

import (
	"context"
	"fmt"

	"github.com/olgasafonova/legacy-mongodb-mcp-server/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// enforceIndexCheck rejects queries that could require a full collection
// scan. Active only when index-check mode is enabled. An empty filter is
// rejected immediately without an explain round trip.
func (c *Client) enforceIndexCheck(ctx context.Context, db *mongo.Database, database, collection string, filter map[string]any) error {
	if !c.config.IndexCheck {
		return nil
	}

	if len(filter) == 0 {
		metrics.PolicyRejections.WithLabelValues("empty_filter").Inc()
		return &PolicyError{
			Code: PolicyCodeEmptyFilter,
			Message: "Query rejected: Empty filter would result in a collection scan. " +
				"Index check mode is enabled. Please provide a filter that uses an indexed field.",
		}
	}

	explainResult, err := c.runFindExplain(ctx, db, collection, filter, nil, nil, 0, "")
	if err != nil {
		return err
	}

	usesIndex, stage := planUsesIndex(explainResult)
	if !usesIndex {
		metrics.PolicyRejections.WithLabelValues("collection_scan").Inc()
		return &PolicyError{
			Code: PolicyCodeCollectionScan,
			Message: fmt.Sprintf("Query rejected: Would perform a collection scan (stage: %s). "+
				"Index check mode is enabled. Please ensure your query uses an indexed field. "+
				"Use the 'collection_indexes' tool to see available indexes for %s.%s.",
				stage, database, collection),
		}
	}

	return nil
}
