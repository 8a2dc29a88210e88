package dto

import (
	"strings"

	"github.com/tourism-microservice/internal/domain"
)

// PlaceRequest - создание/обновление объекта (JSON или multipart)
type PlaceRequest struct {
	Name           string              `json:"name" form:"name"`
	Description    string              `json:"description" form:"description"`
	Location       string              `json:"location" form:"location"`
	Latitude       float64             `json:"latitude" form:"latitude" validate:"min=-90,max=90"`
	Longitude      float64             `json:"longitude" form:"longitude" validate:"min=-180,max=180"`
	DistrictName   string              `json:"district_name" form:"district_name" validate:"required"`
	CategoryName   string              `json:"category_name" form:"category_name" validate:"required"`
	Published      interface{}         `json:"published" form:"published"`
	SeasonID       interface{}         `json:"season_id" form:"season_id"`
	ImagePaths     []string            `json:"image_paths" form:"-"`
	OperatingHours []domain.HoursEntry `json:"operating_hours" form:"-" validate:"omitempty,dive"`
}

// ToInput переводит запрос в доменный ввод; createdBy берётся из токена
func (r *PlaceRequest) ToInput(createdBy *int64) domain.PlaceInput {
	return domain.PlaceInput{
		Name:           strings.TrimSpace(r.Name),
		Description:    strings.TrimSpace(r.Description),
		Location:       strings.TrimSpace(r.Location),
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		DistrictName:   strings.TrimSpace(r.DistrictName),
		CategoryName:   strings.TrimSpace(r.CategoryName),
		Published:      domain.ParsePublished(r.Published),
		CreatedBy:      createdBy,
		ImagePaths:     r.ImagePaths,
		SeasonIDs:      domain.ParseSeasonIDs(SeasonValues(r.SeasonID)),
		OperatingHours: r.OperatingHours,
	}
}

// SeasonValues - season_id может прийти числом, строкой или массивом
func SeasonValues(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []interface{}{t}
	}
}

// SearchRequest - параметры единого поиска
type SearchRequest struct {
	Query       string   `query:"q"`
	Category    *int64   `query:"category"`
	District    *int64   `query:"district"`
	Season      *int64   `query:"season"`
	DayOfWeek   string   `query:"day_of_week"`
	OpeningTime string   `query:"opening_time" validate:"omitempty,hhmm"`
	ClosingTime string   `query:"closing_time" validate:"omitempty,hhmm"`
	Lat         *float64 `query:"lat" validate:"omitempty,min=-90,max=90"`
	Lng         *float64 `query:"lng" validate:"omitempty,min=-180,max=180"`
	Radius      *float64 `query:"radius" validate:"omitempty,gt=0"` // km
}

// ToFilter - запрос в доменный фильтр
func (r *SearchRequest) ToFilter() domain.SearchFilter {
	return domain.SearchFilter{
		Query:       strings.TrimSpace(r.Query),
		CategoryID:  r.Category,
		DistrictID:  r.District,
		SeasonID:    r.Season,
		DayOfWeek:   strings.TrimSpace(r.DayOfWeek),
		OpeningTime: r.OpeningTime,
		ClosingTime: r.ClosingTime,
		Latitude:    r.Lat,
		Longitude:   r.Lng,
		RadiusKm:    r.Radius,
	}
}

// HoursRequest - одна запись часов работы; day_of_week может быть группой дней
type HoursRequest struct {
	PlaceID     int64  `json:"place_id" validate:"required,gt=0"`
	DayOfWeek   string `json:"day_of_week" validate:"required"`
	OpeningTime string `json:"opening_time" validate:"required,hhmm"`
	ClosingTime string `json:"closing_time" validate:"required,hhmm"`
}

// Entry - запрос в формате общей проверки часов
func (r *HoursRequest) Entry() domain.HoursEntry {
	return domain.HoursEntry{
		DayOfWeek:   r.DayOfWeek,
		OpeningTime: r.OpeningTime,
		ClosingTime: r.ClosingTime,
	}
}

// SuggestionRequest - подсказка чат-бота
type SuggestionRequest struct {
	Category       string `json:"category" validate:"required"`
	SuggestionText string `json:"suggestion_text" validate:"required"`
	Active         *bool  `json:"active"`
}

// ChatRequest - вопрос чат-боту по HTTP
type ChatRequest struct {
	Text     string           `json:"text" validate:"required"`
	Location *domain.GeoPoint `json:"location,omitempty"`
}
