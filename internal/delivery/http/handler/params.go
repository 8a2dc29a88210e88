package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tourism-microservice/internal/pkg/errors"
)

// paramID - положительный целый id из пути
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID.WithDetails(map[string]interface{}{"param": name})
	}
	return id, nil
}

// queryInt64 - необязательный целый параметр запроса
func queryInt64(c *fiber.Ctx, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: raw})
	}
	return &v, nil
}

// queryFloat - необязательный дробный параметр запроса
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: raw})
	}
	return &v, nil
}

// radiusMeters - радиус в метрах; отсутствующий или некорректный даёт 0 (значение по умолчанию)
func radiusMeters(c *fiber.Ctx) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Query("radius")), 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
