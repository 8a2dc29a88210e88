package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/pkg/validator"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ChatbotHandler - HTTP вариант чат-бота, все ответы собираются в один список
type ChatbotHandler struct {
	chatbotUC *usecase.ChatbotUseCase
	logger    *zap.Logger
}

func NewChatbotHandler(chatbotUC *usecase.ChatbotUseCase, logger *zap.Logger) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotUC: chatbotUC,
		logger:    logger,
	}
}

// Ask godoc
// @Summary Вопрос чат-боту
// @Description Вопрос на тайском, опционально с координатами пользователя. Ответы идут в порядке выдачи.
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Вопрос"
// @Success 200 {object} utils.SuccessResponse{data=dto.ChatResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/chatbot [post]
func (h *ChatbotHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}
	if req.Location != nil && !utils.ValidateCoordinates(req.Location.Latitude, req.Location.Longitude) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	replies := h.chatbotUC.Ask(c.Context(), domain.ChatQuery{Text: req.Text, Location: req.Location})
	return utils.SendSuccess(c, dto.ChatResponse{Replies: replies}, nil)
}
