// Package strutil contains string helpers shared by the log messages.
package strutil

import (
	"encoding/json"
)

// JSON is a helper function for creating JSON-encoded strings.
func JSON(v interface{}) string {
	bytes, _ := json.Marshal(v)
	return string(bytes)
}
