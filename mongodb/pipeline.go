package mongodb

import (
	"github.com/olgasafonova/legacy-mongodb-mcp-server/metrics"
	"go.mongodb.org/mongo-driver/bson"
)

// rejectWriteStages blocks output-to-collection operators. The check is
// unconditional for aggregate and export regardless of the read-only flag.
func rejectWriteStages(pipeline []map[string]any) error {
	for _, stage := range pipeline {
		if _, ok := stage["$out"]; ok {
			metrics.PolicyRejections.WithLabelValues("write_stage").Inc()
			return &PolicyError{
				Code:    PolicyCodeWriteStage,
				Message: "Write operations ($out, $merge) are not allowed in read-only mode.",
			}
		}
		if _, ok := stage["$merge"]; ok {
			metrics.PolicyRejections.WithLabelValues("write_stage").Inc()
			return &PolicyError{
				Code:    PolicyCodeWriteStage,
				Message: "Write operations ($out, $merge) are not allowed in read-only mode.",
			}
		}
	}
	return nil
}

// rejectUnsupportedStages blocks operators that legacy servers cannot run,
// before the pipeline ever reaches the database.
func rejectUnsupportedStages(pipeline []map[string]any) error {
	for _, stage := range pipeline {
		if _, ok := stage["$vectorSearch"]; ok {
			metrics.PolicyRejections.WithLabelValues("unsupported_stage").Inc()
			return &PolicyError{
				Code: PolicyCodeUnsupportedStage,
				Message: "$vectorSearch is not supported in MongoDB versions < 4.0. " +
					"This feature requires MongoDB Atlas with vector search capability.",
			}
		}
	}
	return nil
}

// ensureLimitStage appends a $limit stage when the pipeline has none, so an
// aggregation can never materialize an unbounded result set.
func ensureLimitStage(pipeline []map[string]any, maxDocuments int) []map[string]any {
	for _, stage := range pipeline {
		if _, ok := stage["$limit"]; ok {
			return pipeline
		}
	}
	return append(pipeline, map[string]any{"$limit": maxDocuments})
}

// toBSONPipeline converts decoded JSON stages to the driver's document type.
func toBSONPipeline(pipeline []map[string]any) []bson.M {
	stages := make([]bson.M, 0, len(pipeline))
	for _, stage := range pipeline {
		stages = append(stages, bson.M(stage))
	}
	return stages
}
