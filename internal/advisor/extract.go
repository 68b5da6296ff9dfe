package advisor

import (
	"reflect"
	"sort"
	"strings"
)

// priorityKeys are the conventional places an answer hides in a loosely
// contracted backend payload, tried in order at every object level
// before descending into arbitrary keys.
var priorityKeys = []string{"answer", "response", "message", "text", "data", "reply", "result"}

// ExtractBestString mines an arbitrary decoded-JSON payload for the
// first usable string: depth-first, priority keys before other keys
// (sorted for determinism), arrays in order. A visited set over map and
// slice identities guards against cyclic values.
func ExtractBestString(payload any) (string, bool) {
	return extract(payload, map[uintptr]bool{})
}

func extract(value any, visited map[uintptr]bool) (string, bool) {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return v, true
		}
		return "", false

	case map[string]any:
		ptr := reflect.ValueOf(v).Pointer()
		if visited[ptr] {
			return "", false
		}
		visited[ptr] = true

		for _, key := range priorityKeys {
			if child, ok := v[key]; ok {
				if s, found := extract(child, visited); found {
					return s, true
				}
			}
		}

		rest := make([]string, 0, len(v))
		for key := range v {
			if !isPriorityKey(key) {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			if s, found := extract(v[key], visited); found {
				return s, true
			}
		}
		return "", false

	case []any:
		ptr := reflect.ValueOf(v).Pointer()
		if visited[ptr] {
			return "", false
		}
		visited[ptr] = true

		for _, item := range v {
			if s, found := extract(item, visited); found {
				return s, true
			}
		}
		return "", false

	default:
		return "", false
	}
}

func isPriorityKey(key string) bool {
	for _, p := range priorityKeys {
		if key == p {
			return true
		}
	}
	return false
}
