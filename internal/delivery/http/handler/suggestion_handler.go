package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/pkg/validator"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// SuggestionHandler - админский CRUD подсказок чат-бота
type SuggestionHandler struct {
	suggestionUC *usecase.SuggestionUseCase
	logger       *zap.Logger
}

func NewSuggestionHandler(suggestionUC *usecase.SuggestionUseCase, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionUC: suggestionUC,
		logger:       logger,
	}
}

// List godoc
// @Summary Все подсказки
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ChatbotSuggestion}
// @Router /api/v1/admin/suggestions [get]
func (h *SuggestionHandler) List(c *fiber.Ctx) error {
	items, err := h.suggestionUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// Get godoc
// @Summary Подсказка по ID
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID подсказки"
// @Success 200 {object} utils.SuccessResponse{data=domain.ChatbotSuggestion}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/suggestions/{id} [get]
func (h *SuggestionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	item, err := h.suggestionUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, item, nil)
}

// Create godoc
// @Summary Создать подсказку
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SuggestionRequest true "Подсказка"
// @Success 201 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/suggestions [post]
func (h *SuggestionHandler) Create(c *fiber.Ctx) error {
	req, err := parseSuggestionRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.suggestionUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, dto.IDResponse{ID: id})
}

// Update godoc
// @Summary Изменить подсказку
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID подсказки"
// @Param request body dto.SuggestionRequest true "Подсказка"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/suggestions/{id} [put]
func (h *SuggestionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	req, err := parseSuggestionRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.suggestionUC.Update(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.MessageResponse{Message: "Suggestion updated successfully"}, nil)
}

// Delete godoc
// @Summary Удалить подсказку
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID подсказки"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/suggestions/{id} [delete]
func (h *SuggestionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.suggestionUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.MessageResponse{Message: "Suggestion deleted successfully"}, nil)
}

func parseSuggestionRequest(c *fiber.Ctx) (dto.SuggestionRequest, error) {
	var req dto.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
