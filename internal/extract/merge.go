package extract

// Merge fills gaps in a parsed record with heuristic values. A heuristic
// value is written only where the parsed key is absent or falsy: heuristics
// act as a floor under the inference result, never an override of it.
func Merge(record, heuristics map[string]any) map[string]any {
	if record == nil {
		record = make(map[string]any)
	}
	for key, value := range heuristics {
		if current, ok := record[key]; !ok || isFalsy(current) {
			record[key] = value
		}
	}
	return record
}

// isFalsy reports whether a JSON-decoded value counts as empty for the
// merge rule: nil, empty string, false, zero, or an empty list/object.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case int:
		return val == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
