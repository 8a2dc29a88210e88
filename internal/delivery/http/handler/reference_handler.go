package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ReferenceHandler - справочники и подсказки для клиентов
type ReferenceHandler struct {
	placeUC      *usecase.PlaceUseCase
	suggestionUC *usecase.SuggestionUseCase
	logger       *zap.Logger
}

func NewReferenceHandler(placeUC *usecase.PlaceUseCase, suggestionUC *usecase.SuggestionUseCase, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		placeUC:      placeUC,
		suggestionUC: suggestionUC,
		logger:       logger,
	}
}

// Filters godoc
// @Summary Справочники для формы поиска
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Filters}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/filters [get]
func (h *ReferenceHandler) Filters(c *fiber.Ctx) error {
	filters, err := h.placeUC.Filters(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, filters, nil)
}

// Seasons godoc
// @Summary Сезоны
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Season}
// @Router /api/v1/seasons [get]
func (h *ReferenceHandler) Seasons(c *fiber.Ctx) error {
	seasons, err := h.placeUC.Seasons(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, seasons, nil)
}

// Districts godoc
// @Summary Районы
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.District}
// @Router /api/v1/districts [get]
func (h *ReferenceHandler) Districts(c *fiber.Ctx) error {
	districts, err := h.placeUC.Districts(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, districts, nil)
}

// Categories godoc
// @Summary Категории
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Category}
// @Router /api/v1/categories [get]
func (h *ReferenceHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.placeUC.Categories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, categories, nil)
}

// Suggestions godoc
// @Summary Активные подсказки чат-бота
// @Description Тексты активных подсказок, новые первыми
// @Tags Chatbot
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SuggestionsResponse}
// @Router /api/v1/suggestions [get]
func (h *ReferenceHandler) Suggestions(c *fiber.Ctx) error {
	texts, err := h.suggestionUC.ActiveTexts(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.SuggestionsResponse{Suggestions: texts}, nil)
}
