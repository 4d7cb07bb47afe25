package mongodb

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxSampleValues      = 3
	maxSampleValueLength = 100
)

// FieldSummary describes one top-level field across a sampled document batch.
type FieldSummary struct {
	Types                []string `json:"types"`
	OccurrenceCount      int      `json:"occurrence_count"`
	OccurrencePercentage float64  `json:"occurrence_percentage"`
	SampleValues         []string `json:"sample_values"`
}

// InferSchema derives a per-field type/frequency/sample summary from a
// sampled document batch. The summary is transient; it is serialized into the
// tool response and discarded.
func InferSchema(docs []bson.M) map[string]FieldSummary {
	type accumulator struct {
		types   map[string]struct{}
		count   int
		samples []string
	}
	fields := make(map[string]*accumulator)

	for _, doc := range docs {
		for key, value := range doc {
			acc := fields[key]
			if acc == nil {
				acc = &accumulator{types: make(map[string]struct{})}
				fields[key] = acc
			}
			acc.types[fieldTypeName(value)] = struct{}{}
			acc.count++

			if len(acc.samples) < maxSampleValues && value != nil {
				if sample, ok := stringifySample(value); ok && !contains(acc.samples, sample) {
					acc.samples = append(acc.samples, sample)
				}
			}
		}
	}

	schema := make(map[string]FieldSummary, len(fields))
	for key, acc := range fields {
		types := make([]string, 0, len(acc.types))
		for t := range acc.types {
			types = append(types, t)
		}
		sort.Strings(types)

		percentage := 0.0
		if len(docs) > 0 {
			percentage = math.Round(float64(acc.count)/float64(len(docs))*100*100) / 100
		}

		samples := acc.samples
		if samples == nil {
			samples = []string{}
		}

		schema[key] = FieldSummary{
			Types:                types,
			OccurrenceCount:      acc.count,
			OccurrencePercentage: percentage,
			SampleValues:         samples,
		}
	}

	return schema
}

// fieldTypeName maps a decoded BSON value to its semantic type name, falling
// back to the literal Go type name for anything unrecognized.
func fieldTypeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int32, int64:
		return "int"
	case float32, float64:
		return "double"
	case string:
		return "string"
	case bson.A, []any:
		return "array"
	case bson.M, bson.D, map[string]any:
		return "object"
	case time.Time, primitive.DateTime:
		return "date"
	case primitive.ObjectID:
		return "objectId"
	case primitive.Decimal128:
		return "decimal"
	case primitive.Binary:
		return "binData"
	case primitive.Timestamp:
		return "timestamp"
	case primitive.Regex:
		return "regex"
	default:
		t := reflect.TypeOf(v)
		if t == nil {
			return "null"
		}
		return t.String()
	}
}

// stringifySample renders a value for the sample list, truncated to 100
// characters. Best-effort: a value that cannot be rendered is skipped rather
// than failing the whole call.
func stringifySample(value any) (sample string, ok bool) {
	defer func() {
		if recover() != nil {
			sample, ok = "", false
		}
	}()
	s := fmt.Sprint(value)
	runes := []rune(s)
	if len(runes) > maxSampleValueLength {
		s = string(runes[:maxSampleValueLength])
	}
	return s, true
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
