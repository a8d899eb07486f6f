package util

import "encoding/json"

// JSONF renders a value as compact JSON for logging.
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
