package domain

import (
	"fmt"
	"strings"
	"time"
)

// Категории (совпадают с таблицей categories)
const (
	CategoryAttraction    = "สถานที่ท่องเที่ยว"
	CategoryAccommodation = "ที่พัก"
	CategoryRestaurant    = "ร้านอาหาร"
	CategorySouvenirShop  = "ร้านค้าของฝาก"

	CategoryIDAttraction    int64 = 1
	CategoryIDAccommodation int64 = 2
	CategoryIDRestaurant    int64 = 3
	CategoryIDSouvenirShop  int64 = 4
)

// Categories - категории в порядке, в котором их перебирает чат-бот
var Categories = []string{
	CategoryAttraction,
	CategoryAccommodation,
	CategoryRestaurant,
	CategorySouvenirShop,
}

// Place - туристический объект (tourist_entities) с дочерними данными
type Place struct {
	ID             int64            `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Description    string           `json:"description" db:"description"`
	Location       string           `json:"location" db:"location"`
	Latitude       float64          `json:"latitude" db:"latitude"`
	Longitude      float64          `json:"longitude" db:"longitude"`
	DistrictID     int64            `json:"district_id" db:"district_id"`
	CategoryID     int64            `json:"category_id" db:"category_id"`
	CreatedBy      *int64           `json:"created_by,omitempty" db:"created_by"`
	Published      bool             `json:"published" db:"published"`
	CreatedDate    time.Time        `json:"created_date" db:"created_date"`
	DistrictName   string           `json:"district_name" db:"district_name"`
	CategoryName   string           `json:"category_name" db:"category_name"`
	Distance       *float64         `json:"distance,omitempty" db:"-"`
	Images         []Image          `json:"images"`
	Seasons        []string         `json:"seasons,omitempty"`
	OperatingHours []OperatingHours `json:"operating_hours,omitempty"`
}

// Image - изображение объекта
type Image struct {
	ImagePath string `json:"image_path"`
	ImageURL  string `json:"image_url"`
}

// NewImages строит список изображений из имен файлов
func NewImages(baseURL string, paths []string) []Image {
	images := make([]Image, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		images = append(images, Image{ImagePath: p, ImageURL: ImageURL(baseURL, p)})
	}
	return images
}

// ImageURL - публичный адрес загруженного файла
func ImageURL(baseURL, path string) string {
	return fmt.Sprintf("%s/uploads/%s", strings.TrimRight(baseURL, "/"), path)
}

// PlaceSummary - краткая запись для ответов чат-бота
type PlaceSummary struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	CategoryName string  `json:"category_name" db:"category_name"`
	Distance     float64 `json:"distance,omitempty" db:"distance"`
	// BoundaryTime - время открытия/закрытия для запросов по временному окну
	BoundaryTime string `json:"boundary_time,omitempty" db:"boundary_time"`
}

// PlaceInput - входные данные для создания/обновления объекта
type PlaceInput struct {
	Name           string
	Description    string
	Location       string
	Latitude       float64
	Longitude      float64
	DistrictName   string
	CategoryName   string
	Published      bool
	CreatedBy      *int64
	ImagePaths     []string
	SeasonIDs      []int64
	OperatingHours []HoursEntry
}

// PlaceRecord - объект с разрешенными ссылками, готовый к записи
type PlaceRecord struct {
	Name        string
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
	DistrictID  int64
	CategoryID  int64
	Published   bool
	CreatedBy   *int64
	ImagePaths  []string
	SeasonIDs   []int64
	// Hours == nil означает, что часы работы не передавались
	Hours []DailyHours
}

// NearbyResult - объект и его соседи
type NearbyResult struct {
	Entity         *Place  `json:"entity"`
	NearbyEntities []Place `json:"nearbyEntities"`
}

// SearchFilter - фильтры единого поиска
type SearchFilter struct {
	Query       string
	CategoryID  *int64
	DistrictID  *int64
	SeasonID    *int64
	DayOfWeek   string
	OpeningTime string
	ClosingTime string
	Latitude    *float64
	Longitude   *float64
	RadiusKm    *float64
}

// Category - категория объекта
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// District - район
type District struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Filters - справочники для формы поиска
type Filters struct {
	Seasons    []Season   `json:"seasons"`
	Districts  []District `json:"districts"`
	Categories []Category `json:"categories"`
}
