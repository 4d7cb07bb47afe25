package mongodb

// Tool argument types. Field names and JSON keys follow the MCP tool
// contract; optional fields default per the tool documentation.

// ListDatabasesArgs has no parameters.
type ListDatabasesArgs struct{}

// ListCollectionsArgs contains parameters for list_collections.
type ListCollectionsArgs struct {
	Database string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
}

// FindArgs contains parameters for the find tool.
type FindArgs struct {
	Database           string         `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection         string         `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
	Filter             map[string]any `json:"filter,omitempty" jsonschema_description:"The query filter, matching the syntax of db.collection.find()"`
	Projection         map[string]any `json:"projection,omitempty" jsonschema_description:"The projection, matching the syntax of db.collection.find()"`
	Limit              int            `json:"limit,omitempty" jsonschema_description:"Maximum number of documents to return (default: 10, capped by the configured ceiling)"`
	Sort               map[string]any `json:"sort,omitempty" jsonschema_description:"Sort order document. Keys are fields, values are 1 (asc) or -1 (desc)"`
	ResponseBytesLimit int            `json:"responseBytesLimit,omitempty" jsonschema_description:"Maximum bytes to return in the response"`
}

// CountArgs contains parameters for the count tool.
type CountArgs struct {
	Database   string         `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection string         `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
	Query      map[string]any `json:"query,omitempty" jsonschema_description:"Optional filter to count matching documents"`
}

// AggregateArgs contains parameters for the aggregate tool.
type AggregateArgs struct {
	Database           string           `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection         string           `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
	Pipeline           []map[string]any `json:"pipeline" jsonschema:"required" jsonschema_description:"An array of aggregation stages to execute"`
	ResponseBytesLimit int              `json:"responseBytesLimit,omitempty" jsonschema_description:"Maximum bytes to return in the response"`
}

// CollectionIndexesArgs contains parameters for collection_indexes.
type CollectionIndexesArgs struct {
	Database   string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection string `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
}

// CollectionSchemaArgs contains parameters for collection_schema.
type CollectionSchemaArgs struct {
	Database           string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection         string `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
	SampleSize         int    `json:"sampleSize,omitempty" jsonschema_description:"Number of documents to sample for schema inference (default: 50)"`
	ResponseBytesLimit int    `json:"responseBytesLimit,omitempty" jsonschema_description:"Maximum bytes to return in the response"`
}

// CollectionStorageSizeArgs contains parameters for collection_storage_size.
type CollectionStorageSizeArgs struct {
	Database   string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection string `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
}

// DBStatsArgs contains parameters for db_stats.
type DBStatsArgs struct {
	Database string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
}

// ExplainArgs contains parameters for the explain tool. Method is either
// [name] or [name, argumentsMap].
type ExplainArgs struct {
	Database   string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection string `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
	Method     []any  `json:"method" jsonschema:"required" jsonschema_description:"The method and its arguments to run: [\"find\"|\"aggregate\"|\"count\", {arguments}]"`
	Verbosity  string `json:"verbosity,omitempty" jsonschema_description:"Explain verbosity: queryPlanner (default), executionStats, or allPlansExecution"`
}

// ExportDataArgs contains parameters for export_data. ExportTarget is either
// [name] or [name, argumentsMap].
type ExportDataArgs struct {
	Database         string `json:"database" jsonschema:"required" jsonschema_description:"Database name"`
	Collection       string `json:"collection" jsonschema:"required" jsonschema_description:"Collection name"`
	ExportTitle      string `json:"exportTitle" jsonschema:"required" jsonschema_description:"A short description to uniquely identify the export"`
	ExportTarget     []any  `json:"exportTarget" jsonschema:"required" jsonschema_description:"The export target along with its arguments: [\"find\"|\"aggregate\", {arguments}]"`
	JSONExportFormat string `json:"jsonExportFormat,omitempty" jsonschema_description:"The EJSON format: relaxed (default) or canonical"`
}

// MongoDBLogsArgs contains parameters for mongodb_logs. A nil Limit means
// the default of 50; explicit values are clamped to [1, 1024].
type MongoDBLogsArgs struct {
	Type  string `json:"type,omitempty" jsonschema_description:"The type of logs to return: global (default) or startupWarnings"`
	Limit *int   `json:"limit,omitempty" jsonschema_description:"Maximum number of log entries to return (default: 50, max: 1024)"`
}

// GetServerConfigArgs has no parameters.
type GetServerConfigArgs struct{}

// Result types for tools with fixed JSON shapes. Document-bearing tools are
// serialized through extended JSON instead.

// DatabaseInfo is one entry in the list_databases result.
type DatabaseInfo struct {
	Name       string `json:"name"`
	SizeOnDisk int64  `json:"sizeOnDisk"`
	Empty      bool   `json:"empty"`
}

// ListDatabasesResult is the list_databases payload.
type ListDatabasesResult struct {
	Databases []DatabaseInfo `json:"databases"`
	TotalSize int64          `json:"totalSize"`
}

// ListCollectionsResult is the list_collections payload.
type ListCollectionsResult struct {
	Database    string   `json:"database"`
	Collections []string `json:"collections"`
}

// CountResult is the count payload.
type CountResult struct {
	Database   string `json:"database"`
	Collection string `json:"collection"`
	Count      int64  `json:"count"`
}

// StorageSizeResult is the collection_storage_size payload. Values are kept
// as decoded so 32-bit and 64-bit server counters both render as numbers.
type StorageSizeResult struct {
	Database       string `json:"database"`
	Collection     string `json:"collection"`
	StorageSize    any    `json:"storageSize"`
	Size           any    `json:"size"`
	Count          any    `json:"count"`
	AvgObjSize     any    `json:"avgObjSize"`
	TotalIndexSize any    `json:"totalIndexSize"`
	IndexSizes     any    `json:"indexSizes"`
}

// LogsResult is the mongodb_logs payload.
type LogsResult struct {
	Type              string   `json:"type"`
	TotalLinesWritten any      `json:"totalLinesWritten"`
	EntriesReturned   int      `json:"entriesReturned"`
	Logs              []string `json:"logs"`
}

// ExportResult is the export_data payload.
type ExportResult struct {
	Success       bool   `json:"success"`
	ExportTitle   string `json:"exportTitle"`
	Database      string `json:"database"`
	Collection    string `json:"collection"`
	DocumentCount int    `json:"documentCount"`
	Format        string `json:"format"`
	FilePath      string `json:"filePath"`
	Message       string `json:"message"`
}

// ServerConfigResult is the get_server_config payload.
type ServerConfigResult struct {
	Config         map[string]any `json:"config"`
	Connected      bool           `json:"connected"`
	ServerVersion  string         `json:"serverVersion,omitempty"`
	ReadOnlyMode   bool           `json:"readOnlyMode"`
	IndexCheckMode bool           `json:"indexCheckMode"`
}
