package dto

import "github.com/tourism-microservice/internal/domain"

// ChatResponse - все ответы чат-бота на один вопрос
type ChatResponse struct {
	Replies []string `json:"replies"`
}

// IDResponse - id созданной записи
type IDResponse struct {
	ID int64 `json:"id"`
}

// MessageResponse - текстовое подтверждение операции
type MessageResponse struct {
	Message string `json:"message"`
}

// DuplicateNameResponse - результат проверки имени
type DuplicateNameResponse struct {
	Exists bool `json:"exists"`
}

// RealTimeSeasonResponse - текущий сезон и подходящие объекты
type RealTimeSeasonResponse struct {
	Season string         `json:"season"`
	Places []domain.Place `json:"places"`
}

// SuggestionsResponse - тексты активных подсказок
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
