package domain

import "strings"

// Ключи кеша
const (
	CacheKeyFilters      = "filters:all"
	CacheKeySuggestions  = "suggestions:active"
	CacheKeyPlacesPrefix = "places:"
	CachePatternPlaces   = CacheKeyPlacesPrefix + "*"
)

// PlacesCacheKey - ключ листинга, например places:published
func PlacesCacheKey(parts ...string) string {
	return CacheKeyPlacesPrefix + strings.Join(parts, ":")
}
