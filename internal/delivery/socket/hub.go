package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/usecase"
)

// События socket.io
const (
	EventUserMessage = "userMessage"
	EventBotMessage  = "botMessage"
	EventNewPlace    = "newPlace"

	namespaceRoot = "/"
)

// ReplyBotFailure - ответ клиенту, если обработка вопроса упала целиком
const ReplyBotFailure = "เกิดข้อผิดพลาดในการประมวลผลคำตอบจาก Bot"

// Answerer - маршрутизатор вопросов чат-бота
type Answerer interface {
	Answer(ctx context.Context, q domain.ChatQuery, reply usecase.ReplyFunc)
}

// Hub - socket.io сервер чата на отдельном порту
type Hub struct {
	sio        *socketio.Server
	httpServer *http.Server
	chatbot    Answerer
	timeout    time.Duration
	logger     *zap.Logger
}

// NewHub - timeout ограничивает обработку одного вопроса
func NewHub(chatbot Answerer, addr string, origins []string, timeout time.Duration, logger *zap.Logger) *Hub {
	opts := socketio.DefaultServerOptions()
	opts.SetCors(&types.Cors{
		Origin:      corsOrigin(origins),
		Credentials: len(origins) > 0 && origins[0] != "*",
	})

	h := &Hub{
		sio:     socketio.NewServer(nil, opts),
		chatbot: chatbot,
		timeout: timeout,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", h.sio.ServeHandler(nil))
	h.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	h.registerNamespace()
	return h
}

func corsOrigin(origins []string) interface{} {
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		return "*"
	}
	return origins
}

func (h *Hub) registerNamespace() {
	_ = h.sio.Of(namespaceRoot, nil).On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}
		sid := string(client.Id())
		h.logger.Debug("Chat client connected", zap.String("sid", sid))

		emit := func(text string) {
			_ = client.Emit(EventBotMessage, text)
		}

		_ = client.On(EventUserMessage, func(eventArgs ...any) {
			go h.handleMessage(emit, eventArgs...)
		})

		_ = client.On("disconnect", func(_ ...any) {
			h.logger.Debug("Chat client disconnected", zap.String("sid", sid))
		})
	})
}

// handleMessage - один вопрос, ответы уходят через emit в порядке выдачи
func (h *Hub) handleMessage(emit func(string), args ...any) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Chatbot panic", zap.Any("panic", r))
			emit(ReplyBotFailure)
		}
	}()

	q, ok := parseQuery(args...)
	if !ok {
		emit(ReplyBotFailure)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.chatbot.Answer(ctx, q, emit)
}

// parseQuery принимает объект {text, location} или строку с вопросом
func parseQuery(args ...any) (domain.ChatQuery, bool) {
	var q domain.ChatQuery
	if len(args) == 0 || args[0] == nil {
		return q, false
	}

	switch raw := args[0].(type) {
	case string:
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "{") {
			if err := json.Unmarshal([]byte(trimmed), &q); err != nil {
				return q, false
			}
		} else {
			q.Text = trimmed
		}
	case []byte:
		if err := json.Unmarshal(raw, &q); err != nil {
			return q, false
		}
	default:
		data, err := json.Marshal(raw)
		if err != nil {
			return q, false
		}
		if err := json.Unmarshal(data, &q); err != nil {
			return q, false
		}
	}

	q.Text = strings.TrimSpace(q.Text)
	return q, q.Text != ""
}

// PlaceCreated рассылает новый объект всем подключенным клиентам
func (h *Hub) PlaceCreated(event domain.PlaceEvent) {
	h.sio.Of(namespaceRoot, nil).Emit(EventNewPlace, event)
}

// Start - блокирующий запуск
func (h *Hub) Start() error {
	h.logger.Info("Starting socket.io server", zap.String("address", h.httpServer.Addr))
	if err := h.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown закрывает клиентов и HTTP сервер
func (h *Hub) Shutdown(ctx context.Context) error {
	h.logger.Info("Shutting down socket.io server")
	h.sio.Close(nil)
	return h.httpServer.Shutdown(ctx)
}
