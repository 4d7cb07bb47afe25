package mongodb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error codes for programmatic error handling
type ErrorCode string

const (
	// Policy error codes
	PolicyCodeEmptyFilter      ErrorCode = "POLICY_EMPTY_FILTER"
	PolicyCodeCollectionScan   ErrorCode = "POLICY_COLLECTION_SCAN"
	PolicyCodeWriteStage       ErrorCode = "POLICY_WRITE_STAGE"
	PolicyCodeUnsupportedStage ErrorCode = "POLICY_UNSUPPORTED_STAGE"

	// Argument error codes
	ArgsCodeMissingMethod ErrorCode = "ARGS_MISSING_METHOD"
	ArgsCodeUnsupported   ErrorCode = "ARGS_UNSUPPORTED"
)

// ErrNotConnected is returned when a tool runs before a successful Connect.
var ErrNotConnected = errors.New("not connected to MongoDB")

// ConfigError indicates invalid startup configuration. It is fatal: the
// process prints the usage text to stderr and exits non-zero.
type ConfigError struct {
	Message string
	Usage   string
}

func (e *ConfigError) Error() string {
	if e.Usage == "" {
		return e.Message
	}
	return e.Message + "\n\n" + e.Usage
}

// PolicyError is a query-safety rejection: read-only enforcement, the
// index-usage check, or an unsupported pipeline stage. It terminates only the
// current tool call, never the connection.
type PolicyError struct {
	Code    ErrorCode
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

// ArgumentError indicates a malformed tool argument shape, such as a missing
// explain method or export target.
type ArgumentError struct {
	Code    ErrorCode
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// HintedError wraps an upstream failure with a caller-facing hint, used for
// permission-related failures like getLog without admin privileges.
type HintedError struct {
	Err  error
	Hint string
}

func (e *HintedError) Error() string {
	return e.Err.Error()
}

func (e *HintedError) Unwrap() error {
	return e.Err
}

// ErrorPayload renders any tool failure as the in-band JSON error shape.
// Nothing escapes to the MCP transport as a protocol fault.
func ErrorPayload(err error) string {
	payload := map[string]string{"error": err.Error()}
	var hinted *HintedError
	if errors.As(err, &hinted) {
		payload["hint"] = hinted.Hint
	}
	out, merr := json.Marshal(payload)
	if merr != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(out)
}

// isUnsupportedOperation reports whether the server rejected a command or
// pipeline stage it does not know, which triggers the legacy/modern API
// fallbacks. Decided by explicit error inspection, not exception matching.
func isUnsupportedOperation(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// CommandNotFound and the unrecognized-pipeline-stage codes
		if cmdErr.Code == 59 || cmdErr.Code == 40324 || cmdErr.Code == 16436 {
			return true
		}
		msg := strings.ToLower(cmdErr.Message)
		return strings.Contains(msg, "no such command") ||
			strings.Contains(msg, "unrecognized pipeline stage")
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such command") ||
		strings.Contains(msg, "unrecognized pipeline stage")
}
