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

// OperatingHoursHandler - админский CRUD строк часов работы
type OperatingHoursHandler struct {
	hoursUC *usecase.OperatingHoursUseCase
	logger  *zap.Logger
}

func NewOperatingHoursHandler(hoursUC *usecase.OperatingHoursUseCase, logger *zap.Logger) *OperatingHoursHandler {
	return &OperatingHoursHandler{
		hoursUC: hoursUC,
		logger:  logger,
	}
}

// List godoc
// @Summary Все строки часов работы
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.OperatingHours}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/time [get]
func (h *OperatingHoursHandler) List(c *fiber.Ctx) error {
	hours, err := h.hoursUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, hours, &utils.Meta{Total: len(hours)})
}

// Get godoc
// @Summary Строка часов работы по ID
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID строки"
// @Success 200 {object} utils.SuccessResponse{data=domain.OperatingHours}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/time/{id} [get]
func (h *OperatingHoursHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	hours, err := h.hoursUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, hours, nil)
}

// Create godoc
// @Summary Добавить строку часов работы
// @Description Открытие раньше закрытия, без пересечений с окнами того же дня
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.HoursRequest true "Часы работы"
// @Success 201 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/time [post]
func (h *OperatingHoursHandler) Create(c *fiber.Ctx) error {
	req, err := parseHoursRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.hoursUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, dto.IDResponse{ID: id})
}

// Update godoc
// @Summary Изменить строку часов работы
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID строки"
// @Param request body dto.HoursRequest true "Часы работы"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/time/{id} [put]
func (h *OperatingHoursHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	req, err := parseHoursRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.hoursUC.Update(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.MessageResponse{Message: "Operating hours updated successfully"}, nil)
}

// Delete godoc
// @Summary Удалить строку часов работы
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID строки"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/time/{id} [delete]
func (h *OperatingHoursHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.hoursUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.MessageResponse{Message: "Operating hours deleted successfully"}, nil)
}

func parseHoursRequest(c *fiber.Ctx) (dto.HoursRequest, error) {
	var req dto.HoursRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
