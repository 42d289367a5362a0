//go:build integration

package steps

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// getFieldValue walks a dot-separated path through a JSON document. Numeric
// segments index into arrays, e.g. "daily.0.revenue".
func getFieldValue(body []byte, path string) (any, error) {
	var document any
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}

	current := document
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response", path)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("field path %q indexes an array with %q", path, segment)
			}
			if index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field path %q index %d out of range (len %d)", path, index, len(node))
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field path %q descends into a scalar at %q", path, segment)
		}
	}
	return current, nil
}

// stringifyFieldValue renders a JSON value the way features write expectations:
// numbers without a trailing ".0" when integral, booleans and strings as-is.
func stringifyFieldValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	default:
		rendered, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(rendered)
	}
}
