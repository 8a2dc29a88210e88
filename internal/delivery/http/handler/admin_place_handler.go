package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tourism-microservice/internal/delivery/http/middleware"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/pkg/validator"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// AdminPlaceHandler - управление объектами из админки
type AdminPlaceHandler struct {
	placeUC  *usecase.PlaceUseCase
	writerUC *usecase.PlaceWriterUseCase
	uploads  *UploadStore
	logger   *zap.Logger
}

func NewAdminPlaceHandler(
	placeUC *usecase.PlaceUseCase,
	writerUC *usecase.PlaceWriterUseCase,
	uploads *UploadStore,
	logger *zap.Logger,
) *AdminPlaceHandler {
	return &AdminPlaceHandler{
		placeUC:  placeUC,
		writerUC: writerUC,
		uploads:  uploads,
		logger:   logger,
	}
}

// List godoc
// @Summary Все объекты, включая неопубликованные
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/place [get]
func (h *AdminPlaceHandler) List(c *fiber.Ctx) error {
	places, err := h.placeUC.ListAll(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// Get godoc
// @Summary Объект по ID (любой статус публикации)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Success 200 {object} utils.SuccessResponse{data=domain.Place}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/place/{id} [get]
func (h *AdminPlaceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	place, err := h.placeUC.GetAnyPlace(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, place, nil)
}

// Create godoc
// @Summary Создать объект
// @Description JSON или multipart/form-data; файлы в поле image_paths, operating_hours строкой JSON
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlaceRequest true "Объект"
// @Success 201 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/place [post]
func (h *AdminPlaceHandler) Create(c *fiber.Ctx) error {
	req, saved, err := h.parsePlaceRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.writerUC.Create(c.Context(), req.ToInput(middleware.UserID(c)))
	if err != nil {
		h.uploads.Remove(saved)
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, dto.IDResponse{ID: id})
}

// Update godoc
// @Summary Заменить объект
// @Description Дочерние строки (сезоны, изображения, часы) заменяются, если переданы
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Param request body dto.PlaceRequest true "Объект"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/place/{id} [put]
func (h *AdminPlaceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	req, saved, err := h.parsePlaceRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.writerUC.Update(c.Context(), id, req.ToInput(middleware.UserID(c))); err != nil {
		h.uploads.Remove(saved)
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.MessageResponse{Message: "Tourist entity updated successfully"}, nil)
}

// Delete godoc
// @Summary Удалить объект вместе с дочерними строками
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/place/{id} [delete]
func (h *AdminPlaceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.writerUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.MessageResponse{Message: "Tourist entity deleted successfully"}, nil)
}

// CheckDuplicateName godoc
// @Summary Проверка занятости имени
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param name query string true "Имя объекта"
// @Success 200 {object} utils.SuccessResponse{data=dto.DuplicateNameResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/admin/check-duplicate-name [get]
func (h *AdminPlaceHandler) CheckDuplicateName(c *fiber.Ctx) error {
	exists, err := h.writerUC.NameExists(c.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.DuplicateNameResponse{Exists: exists}, nil)
}

// Search godoc
// @Summary Поиск по имени среди всех объектов
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Часть имени"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Place}
// @Router /api/v1/admin/search [get]
func (h *AdminPlaceHandler) Search(c *fiber.Ctx) error {
	places, err := h.placeUC.SearchAll(c.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// parsePlaceRequest разбирает JSON или multipart; saved - имена уже сохраненных файлов
func (h *AdminPlaceHandler) parsePlaceRequest(c *fiber.Ctx) (dto.PlaceRequest, []string, error) {
	var req dto.PlaceRequest

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&req); err != nil {
			return req, nil, errors.ErrInvalidRequest.WithMessage("Invalid request body")
		}
		if err := validator.Validate(&req); err != nil {
			return req, nil, err
		}
		return req, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, errors.ErrInvalidRequest.WithMessage("Invalid multipart form")
	}
	if err := fillFromForm(&req, form.Value); err != nil {
		return req, nil, err
	}
	if err := validator.Validate(&req); err != nil {
		return req, nil, err
	}

	saved, err := h.uploads.Save(c, form.File[uploadField])
	if err != nil {
		return req, nil, err
	}
	req.ImagePaths = saved
	return req, saved, nil
}

func fillFromForm(req *dto.PlaceRequest, values map[string][]string) error {
	first := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req.Name = first("name")
	req.Description = first("description")
	req.Location = first("location")
	req.DistrictName = first("district_name")
	req.CategoryName = first("category_name")
	if v := first("published"); v != "" {
		req.Published = v
	}
	if v := values["season_id"]; len(v) > 0 {
		req.SeasonID = v
	}

	var err error
	if req.Latitude, err = formFloat(first("latitude")); err != nil {
		return errors.ErrInvalidCoordinates
	}
	if req.Longitude, err = formFloat(first("longitude")); err != nil {
		return errors.ErrInvalidCoordinates
	}

	if raw := first("operating_hours"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.OperatingHours); err != nil {
			return errors.ErrInvalidOperatingHours.WithMessage("operating_hours must be a JSON array")
		}
	}
	return nil
}

func formFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
