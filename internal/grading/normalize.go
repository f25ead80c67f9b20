package grading

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseInput interprets a free-text answer: valid JSON is decoded so "3"
// compares as the number 3 and "[1,2]" as an array; anything else stays the
// trimmed string.
func ParseInput(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed
	}
	return v
}

// Normalize renders a value into a canonical comparison string: strings are
// trimmed and lowercased, scalars stringified, structured values serialized
// as JSON. Object key order is irrelevant (map keys serialize sorted);
// array element order is significant.
func Normalize(v any) string {
	switch x := v.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(x))
	case float64:
		return strings.ToLower(strconv.FormatFloat(x, 'f', -1, 64))
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	default:
		buf, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(string(buf)))
	}
}
