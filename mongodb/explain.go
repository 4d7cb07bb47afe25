package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// collScanStage is the execution plan marker for a full collection scan.
const collScanStage = "COLLSCAN"

// planUsesIndex inspects an explain result and reports whether the winning
// plan avoids a collection scan, along with the top-level winning-plan stage
// name for diagnostics.
func planUsesIndex(explainResult bson.M) (bool, string) {
	queryPlanner, _ := explainResult["queryPlanner"].(bson.M)
	winningPlan, _ := queryPlanner["winningPlan"].(bson.M)

	stage, _ := winningPlan["stage"].(string)
	if stage == "" {
		stage = "unknown"
	}

	return !hasStage(winningPlan, collScanStage), stage
}

// hasStage searches the plan tree for a stage by name. Plans chain through
// inputStage (single child, 3.x format) or fan in through inputStages (array
// form, e.g. index intersection and merge sort).
func hasStage(plan bson.M, name string) bool {
	if s, _ := plan["stage"].(string); s == name {
		return true
	}
	if input, ok := plan["inputStage"].(bson.M); ok {
		if hasStage(input, name) {
			return true
		}
	}
	if inputs, ok := plan["inputStages"].(bson.A); ok {
		for _, entry := range inputs {
			if child, ok := entry.(bson.M); ok && hasStage(child, name) {
				return true
			}
		}
	}
	return false
}

// runFindExplain obtains the explain plan for an equivalent find operation.
func (c *Client) runFindExplain(ctx context.Context, db *mongo.Database, collection string,
	filter, projection, sortSpec map[string]any, limit int, verbosity string) (bson.M, error) {

	find := bson.D{
		{Key: "find", Value: collection},
		{Key: "filter", Value: bson.M(filter)},
	}
	if projection != nil {
		find = append(find, bson.E{Key: "projection", Value: bson.M(projection)})
	}
	if len(sortSpec) > 0 {
		find = append(find, bson.E{Key: "sort", Value: toSortDoc(sortSpec)})
	}
	if limit > 0 {
		find = append(find, bson.E{Key: "limit", Value: limit})
	}

	cmd := bson.D{{Key: "explain", Value: find}}
	if verbosity != "" {
		cmd = append(cmd, bson.E{Key: "verbosity", Value: verbosity})
	}

	var result bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}
