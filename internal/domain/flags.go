package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParsePublished нормализует флаг публикации: true, "true", 1, "1" => true
func ParsePublished(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		s := strings.TrimSpace(val)
		return s == "true" || s == "1"
	case int:
		return val == 1
	case int64:
		return val == 1
	case float64:
		return val == 1
	case json.Number:
		return val.String() == "1"
	default:
		return false
	}
}

// ParseSeasonIDs оставляет только положительные целые id без повторов
func ParseSeasonIDs(values []interface{}) []int64 {
	ids := make([]int64, 0, len(values))
	seen := make(map[int64]struct{}, len(values))
	for _, v := range values {
		id, ok := toID(v)
		if !ok || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func toID(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		if val != float64(int64(val)) {
			return 0, false
		}
		return int64(val), true
	case json.Number:
		id, err := val.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}
