package repository

import (
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// extractRows extracts the rows array from a SurrealDB response. Anything
// other than the {"status","result"} wrapper shape reports false so callers
// fail loud instead of misreading the wrapper as a record.
func extractRows(result []interface{}) ([]interface{}, bool) {
	if len(result) == 0 {
		return nil, true
	}
	resp, ok := result[0].(map[string]interface{})
	if !ok {
		return nil, false
	}
	if resp["result"] == nil {
		return nil, true
	}
	rows, ok := resp["result"].([]interface{})
	if !ok {
		return nil, false
	}
	return rows, true
}

// recordKey converts a SurrealDB record id to the bare key exposed through
// the API (the part after the table prefix).
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case string:
		for i := 0; i < len(v); i++ {
			if v[i] == ':' {
				return v[i+1:]
			}
		}
		return v
	case models.RecordID:
		return fmt.Sprintf("%v", v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%v", v.ID)
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": "xxx"} format
		if key, ok := v["id"].(string); ok {
			return key
		}
	}
	return fmt.Sprintf("%v", id)
}

// parseTime parses a timestamp from the formats the SurrealDB client returns.
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// parseString extracts a string field from a record.
func parseString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// parseFloat extracts a numeric field from a record. CBOR decoding may
// produce any of the integer widths for whole numbers.
func parseFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
