package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/pkg/validator"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlaceHandler - публичное чтение туристических объектов
type PlaceHandler struct {
	placeUC *usecase.PlaceUseCase
	logger  *zap.Logger
}

// NewPlaceHandler - создание нового PlaceHandler
func NewPlaceHandler(placeUC *usecase.PlaceUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeUC: placeUC,
		logger:  logger,
	}
}

// ListPublished godoc
// @Summary Все опубликованные объекты
// @Description Опубликованные объекты, новые первыми, с изображениями
// @Tags Places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places [get]
func (h *PlaceHandler) ListPublished(c *fiber.Ctx) error {
	places, err := h.placeUC.ListPublished(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// TouristAttractions godoc
// @Summary Туристические достопримечательности
// @Tags Places
// @Produce json
// @Param district_id path int false "ID района"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/tourist-attractions [get]
// @Router /api/v1/tourist-attractions/{district_id} [get]
func (h *PlaceHandler) TouristAttractions(c *fiber.Ctx) error {
	return h.byCategoryName(c, domain.CategoryAttraction)
}

// Accommodations godoc
// @Summary Места проживания
// @Tags Places
// @Produce json
// @Param district_id path int false "ID района"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/accommodations [get]
// @Router /api/v1/accommodations/{district_id} [get]
func (h *PlaceHandler) Accommodations(c *fiber.Ctx) error {
	return h.byCategoryName(c, domain.CategoryAccommodation)
}

// Restaurants godoc
// @Summary Рестораны
// @Tags Places
// @Produce json
// @Param district_id path int false "ID района"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/restaurants [get]
// @Router /api/v1/restaurants/{district_id} [get]
func (h *PlaceHandler) Restaurants(c *fiber.Ctx) error {
	return h.byCategoryName(c, domain.CategoryRestaurant)
}

// SouvenirShops godoc
// @Summary Магазины сувениров
// @Tags Places
// @Produce json
// @Param district_id path int false "ID района"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/souvenir-shops [get]
// @Router /api/v1/souvenir-shops/{district_id} [get]
func (h *PlaceHandler) SouvenirShops(c *fiber.Ctx) error {
	return h.byCategoryName(c, domain.CategorySouvenirShop)
}

func (h *PlaceHandler) byCategoryName(c *fiber.Ctx, category string) error {
	var districtID *int64
	if c.Params("district_id") != "" {
		id, err := paramID(c, "district_id")
		if err != nil {
			return utils.SendError(c, err)
		}
		districtID = &id
	}

	places, err := h.placeUC.ListByCategory(c.Context(), category, districtID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// GetPlace godoc
// @Summary Объект по ID
// @Description Опубликованный объект с изображениями, сезонами и часами работы
// @Tags Places
// @Produce json
// @Param id path int true "ID объекта"
// @Success 200 {object} utils.SuccessResponse{data=domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/place/{id} [get]
func (h *PlaceHandler) GetPlace(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	place, err := h.placeUC.GetPlace(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, place, nil)
}

// Nearby godoc
// @Summary Объект и соседние объекты
// @Tags Places
// @Produce json
// @Param id path int true "ID объекта"
// @Param radius query number false "Радиус в метрах" default(5000)
// @Success 200 {object} utils.SuccessResponse{data=domain.NearbyResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/place/nearby/{id} [get]
func (h *PlaceHandler) Nearby(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.placeUC.Nearby(c.Context(), id, radiusMeters(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.NearbyEntities)})
}

// NearbyByCoordinates godoc
// @Summary Объекты вокруг точки
// @Tags Places
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Param radius query number false "Радиус в метрах" default(5000)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/nearby-by-coordinates [get]
func (h *PlaceHandler) NearbyByCoordinates(c *fiber.Ctx) error {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return utils.SendError(c, err)
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		return utils.SendError(c, err)
	}
	if lat == nil || lng == nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithMessage("Latitude and longitude are required"))
	}

	places, err := h.placeUC.NearbyByCoordinates(c.Context(), *lat, *lng, radiusMeters(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// CurrentlyOpen godoc
// @Summary Объекты, открытые сейчас
// @Tags Places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Router /api/v1/places/currently-open [get]
func (h *PlaceHandler) CurrentlyOpen(c *fiber.Ctx) error {
	places, err := h.placeUC.CurrentlyOpen(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// RealTimeSeason godoc
// @Summary Достопримечательности текущего сезона
// @Tags Places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.RealTimeSeasonResponse}
// @Router /api/v1/seasons/real-time [get]
func (h *PlaceHandler) RealTimeSeason(c *fiber.Ctx) error {
	result, err := h.placeUC.RealTimeSeason(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// OpenWithin godoc
// @Summary Объекты, работающие в течение окна
// @Tags Places
// @Produce json
// @Param day_of_week path string true "День недели (Monday..Sunday)"
// @Param opening_time path string true "Начало окна HH:MM"
// @Param closing_time path string true "Конец окна HH:MM"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/time/{day_of_week}/{opening_time}/{closing_time} [get]
func (h *PlaceHandler) OpenWithin(c *fiber.Ctx) error {
	places, err := h.placeUC.OpenWithin(c.Context(),
		c.Params("day_of_week"), c.Params("opening_time"), c.Params("closing_time"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// Search godoc
// @Summary Единый поиск
// @Description Поиск опубликованных объектов по тексту, категории, району, сезону, времени работы и радиусу
// @Tags Places
// @Produce json
// @Param q query string false "Текст в имени или описании"
// @Param category query int false "ID категории"
// @Param district query int false "ID района"
// @Param season query int false "ID сезона"
// @Param day_of_week query string false "День недели"
// @Param opening_time query string false "Начало окна HH:MM"
// @Param closing_time query string false "Конец окна HH:MM"
// @Param lat query number false "Широта"
// @Param lng query number false "Долгота"
// @Param radius query number false "Радиус в километрах"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/search [get]
func (h *PlaceHandler) Search(c *fiber.Ctx) error {
	req, err := parseSearchRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	places, err := h.placeUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

func parseSearchRequest(c *fiber.Ctx) (dto.SearchRequest, error) {
	req := dto.SearchRequest{
		Query:       c.Query("q"),
		DayOfWeek:   c.Query("day_of_week"),
		OpeningTime: c.Query("opening_time"),
		ClosingTime: c.Query("closing_time"),
	}

	var err error
	if req.Category, err = queryInt64(c, "category"); err != nil {
		return req, err
	}
	if req.District, err = queryInt64(c, "district"); err != nil {
		return req, err
	}
	if req.Season, err = queryInt64(c, "season"); err != nil {
		return req, err
	}
	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return req, err
	}
	if req.Lng, err = queryFloat(c, "lng"); err != nil {
		return req, err
	}
	if req.Radius, err = queryFloat(c, "radius"); err != nil {
		return req, err
	}
	return req, nil
}

// BySeason godoc
// @Summary Объекты сезона
// @Tags Places
// @Produce json
// @Param id path int true "ID сезона"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/seasons/{id}/place [get]
func (h *PlaceHandler) BySeason(c *fiber.Ctx) error {
	return h.byID(c, h.placeUC.BySeason)
}

// ByDistrict godoc
// @Summary Объекты района
// @Tags Places
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/districts/{id}/place [get]
func (h *PlaceHandler) ByDistrict(c *fiber.Ctx) error {
	return h.byID(c, h.placeUC.ByDistrict)
}

// ByCategory godoc
// @Summary Объекты категории
// @Tags Places
// @Produce json
// @Param id path int true "ID категории"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/categories/{id}/place [get]
func (h *PlaceHandler) ByCategory(c *fiber.Ctx) error {
	return h.byID(c, h.placeUC.ByCategory)
}

func (h *PlaceHandler) byID(c *fiber.Ctx, load func(ctx context.Context, id int64) ([]domain.Place, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	places, err := load(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}
