package domain

import "time"

// GeoPoint - координаты пользователя
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ChatQuery - вопрос пользователя чат-боту
type ChatQuery struct {
	Text     string    `json:"text"`
	Location *GeoPoint `json:"location,omitempty"`
}

// ExternalPlace - результат внешнего поиска мест
type ExternalPlace struct {
	Name    string `json:"name"`
	Address string `json:"formatted_address,omitempty"`
}

// ChatbotSuggestion - подсказка для чат-бота
type ChatbotSuggestion struct {
	ID             int64     `json:"id" db:"id"`
	Category       string    `json:"category" db:"category"`
	SuggestionText string    `json:"suggestion_text" db:"suggestion_text"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
