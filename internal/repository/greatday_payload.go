package repository

import (
	"fmt"
	"sort"
	"strconv"

	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
)

// extractItems resolves the list container of a GreatDay payload. The
// API is inconsistent about shape: some endpoints return a root array,
// others wrap the list under data, items or rows. Anything else is a
// hard error naming the keys that were received.
func extractItems(payload interface{}) ([]map[string]interface{}, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return toObjectRows(v), nil
	case map[string]interface{}:
		for _, key := range []string{"data", "items", "rows"} {
			if list, ok := v[key].([]interface{}); ok {
				return toObjectRows(list), nil
			}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, appErrors.Clone(appErrors.ErrUpstream,
			fmt.Sprintf("unrecognized list container; supported shapes: root array, data, items, rows; received keys: %v", keys))
	default:
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("unexpected payload type %T", payload))
	}
}

func toObjectRows(list []interface{}) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]interface{}); ok {
			rows = append(rows, obj)
		}
	}
	return rows
}

// totalPages reads the totalPage field of a paged payload. Payloads
// without one are single pages.
func totalPages(payload interface{}) (int, error) {
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return 1, nil
	}
	raw, ok := obj["totalPage"]
	if !ok {
		return 1, nil
	}
	num, ok := raw.(float64)
	if !ok || num != float64(int(num)) || int(num) < 1 {
		return 0, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("invalid totalPage value in response: %v", raw))
	}
	return int(num), nil
}

// stringField returns the first non-empty string among the aliased
// field names of a raw record. Numeric values are rendered as strings
// since GreatDay is loose about both names and types.
func stringField(row map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := row[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// intField returns the first numeric value among the aliased field
// names, or 0 when none parses.
func intField(row map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		switch v := row[key].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}
