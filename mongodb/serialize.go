package mongodb

import (
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
)

// Extended JSON output modes. Relaxed renders numbers and dates in
// JSON-native form; canonical tags every scalar with its exact BSON type.
const (
	JSONModeRelaxed   = "relaxed"
	JSONModeCanonical = "canonical"
)

// TruncationMarker is appended whenever a response is cut at the byte limit.
const TruncationMarker = "\n... [Response truncated due to size limit]"

// marshalExtJSON serializes a BSON document to extended JSON in the given
// mode. Unknown modes fall back to relaxed.
func marshalExtJSON(v any, mode string) (string, error) {
	out, err := bson.MarshalExtJSON(v, mode == JSONModeCanonical, false)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// truncateResponse caps the UTF-8 byte length of s at limit, dropping any
// trailing partial rune left by the byte-boundary cut and appending the
// truncation marker. Input that already fits is returned unchanged.
func truncateResponse(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s
	}
	cut := []byte(s)[:limit]
	for len(cut) > 0 {
		r, size := utf8.DecodeLastRune(cut)
		if r == utf8.RuneError && size <= 1 {
			cut = cut[:len(cut)-1]
			continue
		}
		break
	}
	return string(cut) + TruncationMarker
}

// responseLimit resolves the effective byte limit for a call: the request
// override when positive, else the configured default.
func (c *Client) responseLimit(override int) int {
	if override > 0 {
		return override
	}
	return c.config.MaxBytesPerQuery
}
