package tools

// AllTools contains all tool specifications for the legacy MongoDB MCP
// server. Tools are organized by category. Descriptions follow a structured
// format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// DISCOVERY TOOLS
	// ==========================================================================
	{
		Name:     "list_databases",
		Method:   "ListDatabases",
		Title:    "List Databases",
		Category: "discovery",
		Description: `List all databases for the MongoDB connection.

USE WHEN: User asks "what databases exist", "show databases", or you need to discover database names before querying.

RETURNS: Database names with on-disk sizes and the total size.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "list_collections",
		Method:   "ListCollections",
		Title:    "List Collections",
		Category: "discovery",
		Description: `List all collections in a database.

USE WHEN: User asks "what collections are in database X", or you need collection names before running find/count/aggregate.

PARAMETERS:
- database: Database name (required)

RETURNS: Array of collection names.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "collection_schema",
		Method:   "CollectionSchema",
		Title:    "Infer Collection Schema",
		Category: "discovery",
		Description: `Describe the schema of a collection by sampling documents.

USE WHEN: User asks "what fields does collection X have", "what does the data look like", or before writing filters against unknown collections.

PARAMETERS:
- database, collection: Target (required)
- sampleSize: Documents to sample (default 50)
- responseBytesLimit: Response size cap (optional)

RETURNS: Per-field observed types, occurrence counts and percentages, and up to 3 sample values.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	// ==========================================================================
	// QUERY TOOLS
	// ==========================================================================
	{
		Name:     "find",
		Method:   "Find",
		Title:    "Find Documents",
		Category: "query",
		Description: `Run a find query against a collection.

USE WHEN: User asks for documents matching a condition, "show me records where...", or wants to inspect raw data.

NOT FOR: Counting (use count) or multi-stage transformations (use aggregate).

PARAMETERS:
- database, collection: Target (required)
- filter: Query filter, db.collection.find() syntax (optional)
- projection: Fields to return (optional)
- limit: Max documents (default 10, capped by server configuration)
- sort: Sort document, 1 asc / -1 desc (optional)
- responseBytesLimit: Response size cap (optional)

RETURNS: Matching documents in relaxed extended JSON. Responses over the byte limit are truncated with a marker.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "count",
		Method:   "Count",
		Title:    "Count Documents",
		Category: "query",
		Description: `Count documents in a collection.

USE WHEN: User asks "how many documents/records", or you need a cardinality before querying.

PARAMETERS:
- database, collection: Target (required)
- query: Optional filter to count matching documents

RETURNS: The document count. Uses the legacy count command with a transparent fallback on newer servers.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "aggregate",
		Method:   "Aggregate",
		Title:    "Run Aggregation",
		Category: "query",
		Description: `Run an aggregation pipeline against a collection.

USE WHEN: User needs grouping, reshaping, or multi-stage transformations.

NOT FOR: Simple lookups (use find). $vectorSearch is not supported on legacy MongoDB (<4.0), and write stages ($out, $merge) are always rejected.

PARAMETERS:
- database, collection: Target (required)
- pipeline: Array of aggregation stages (required)
- responseBytesLimit: Response size cap (optional)

RETURNS: Aggregation results in relaxed extended JSON. A $limit stage is appended when the pipeline has none.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	// ==========================================================================
	// DIAGNOSTICS TOOLS
	// ==========================================================================
	{
		Name:     "collection_indexes",
		Method:   "CollectionIndexes",
		Title:    "List Collection Indexes",
		Category: "diagnostics",
		Description: `Describe the indexes defined on a collection.

USE WHEN: User asks "what indexes exist", or a query was rejected by index-check mode and you need to find an indexed field.

PARAMETERS:
- database, collection: Target (required)

RETURNS: Array of index definitions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "explain",
		Method:   "Explain",
		Title:    "Explain Query",
		Category: "diagnostics",
		Description: `Return the execution plan the query optimizer chose for a find, aggregate, or count operation.

USE WHEN: User asks "why is this query slow", "does this query use an index", or before running expensive queries under index-check mode.

PARAMETERS:
- database, collection: Target (required)
- method: ["find"|"aggregate"|"count", {arguments}] (required)
- verbosity: queryPlanner (default), executionStats, or allPlansExecution

RETURNS: The explain plan plus an indexUsed flag and the winning-plan stage.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "collection_storage_size",
		Method:   "CollectionStorageSize",
		Title:    "Collection Storage Size",
		Category: "diagnostics",
		Description: `Get storage statistics for a collection.

USE WHEN: User asks "how big is collection X", or you need size data before sampling or exporting.

PARAMETERS:
- database, collection: Target (required)

RETURNS: storageSize, size, count, avgObjSize, totalIndexSize, and per-index sizes.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "db_stats",
		Method:   "DBStats",
		Title:    "Database Statistics",
		Category: "diagnostics",
		Description: `Return statistics reflecting the use state of a single database.

USE WHEN: User asks about database size, object counts, or index footprint.

PARAMETERS:
- database: Database name (required)

RETURNS: collections, views, objects, dataSize, storageSize, indexes, indexSize, fileSize.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	// ==========================================================================
	// ADMIN TOOLS
	// ==========================================================================
	{
		Name:     "export_data",
		Method:   "ExportData",
		Title:    "Export Data",
		Category: "admin",
		Description: `Export query or aggregation results to a local newline-delimited JSON file.

USE WHEN: User asks to "export", "dump", or "save" query results for offline use.

PARAMETERS:
- database, collection: Target (required)
- exportTitle: Short description naming the export (required)
- exportTarget: ["find"|"aggregate", {arguments}] (required)
- jsonExportFormat: relaxed (default) or canonical

RETURNS: The export file path and document count. Files are written under the exports directory.`,
		ReadOnly:   false,
		Idempotent: false,
		OpenWorld:  true,
	},
	{
		Name:     "mongodb_logs",
		Method:   "MongoDBLogs",
		Title:    "Get Server Logs",
		Category: "admin",
		Description: `Return the most recent logged mongod events.

USE WHEN: User asks about server warnings, startup messages, or recent server activity.

PARAMETERS:
- type: global (default) or startupWarnings
- limit: Max entries (default 50, max 1024)

RETURNS: Log lines. May require administrative privileges on the server.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_server_config",
		Method:   "GetServerConfig",
		Title:    "Get Server Configuration",
		Category: "admin",
		Description: `Get the current MCP server configuration with credentials redacted.

USE WHEN: User asks how the server is configured, which limits apply, or whether index-check mode is on.

RETURNS: Redacted configuration, connection status, server version, and mode flags.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  false,
	},
}
