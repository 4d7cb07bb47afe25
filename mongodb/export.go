package mongodb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/olgasafonova/legacy-mongodb-mcp-server/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// exportDirName is the fixed directory for export files, relative to the
// process working directory.
const exportDirName = "exports"

// ExportData writes query or aggregation results as newline-delimited
// extended JSON to a file under the exports directory.
func (c *Client) ExportData(ctx context.Context, args ExportDataArgs) (string, error) {
	client, err := c.conn.Client()
	if err != nil {
		return "", err
	}
	coll := client.Database(args.Database).Collection(args.Collection)

	op, err := parseOperation(args.ExportTarget, "Export target")
	if err != nil {
		return "", err
	}

	var documents []bson.M

	switch op.name {
	case "find":
		filter := op.docArg("filter")
		if filter == nil {
			filter = map[string]any{}
		}
		opts := options.Find()
		if projection := op.docArg("projection"); projection != nil {
			opts.SetProjection(bson.M(projection))
		}
		if sortSpec := op.docArg("sort"); len(sortSpec) > 0 {
			opts.SetSort(toSortDoc(sortSpec))
		}
		if limit := op.intArg("limit"); limit > 0 {
			opts.SetLimit(int64(limit))
		}
		start := time.Now()
		cursor, err := coll.Find(ctx, bson.M(filter), opts)
		if err == nil {
			err = cursor.All(ctx, &documents)
		}
		observeCommand("find", start, err)
		if err != nil {
			return "", err
		}

	case "aggregate":
		pipeline := op.pipelineArg()
		if err := rejectWriteStages(pipeline); err != nil {
			return "", err
		}
		start := time.Now()
		cursor, err := coll.Aggregate(ctx, toBSONPipeline(pipeline))
		if err == nil {
			err = cursor.All(ctx, &documents)
		}
		observeCommand("aggregate", start, err)
		if err != nil {
			return "", err
		}

	default:
		return "", &ArgumentError{
			Code:    ArgsCodeUnsupported,
			Message: fmt.Sprintf("Unsupported export target: %s", op.name),
		}
	}

	format := JSONModeRelaxed
	if args.JSONExportFormat == JSONModeCanonical {
		format = JSONModeCanonical
	}

	exportDir := filepath.Join(".", exportDirName)
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json", sanitizeExportTitle(args.ExportTitle),
		time.Now().Format("20060102_150405"))
	filePath := filepath.Join(exportDir, filename)

	var sb strings.Builder
	for _, doc := range documents {
		line, err := marshalExtJSON(doc, format)
		if err != nil {
			return "", fmt.Errorf("failed to serialize document: %w", err)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	metrics.DocumentsExported.Add(float64(len(documents)))

	return marshalJSON(ExportResult{
		Success:       true,
		ExportTitle:   args.ExportTitle,
		Database:      args.Database,
		Collection:    args.Collection,
		DocumentCount: len(documents),
		Format:        format,
		FilePath:      filePath,
		Message:       fmt.Sprintf("Exported %d documents to %s", len(documents), filePath),
	})
}

// sanitizeExportTitle keeps letters, digits, '-' and '_', replacing
// everything else with '_'.
func sanitizeExportTitle(title string) string {
	var sb strings.Builder
	sb.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
