package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
)

// LocalUserID - ключ c.Locals с id администратора из токена
const LocalUserID = "user_id"

// JWTAuth - проверка bearer токена (HS256), user_id кладётся в Locals
func JWTAuth(secret string) fiber.Handler {
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		if id, ok := userID(claims[LocalUserID]); ok {
			c.Locals(LocalUserID, id)
		}

		return c.Next()
	}
}

// UserID - id администратора, сохранённый JWTAuth
func UserID(c *fiber.Ctx) *int64 {
	if id, ok := c.Locals(LocalUserID).(int64); ok {
		return &id
	}
	return nil
}

func userID(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case string:
		var id int64
		if _, err := fmt.Sscan(t, &id); err == nil {
			return id, true
		}
	}
	return 0, false
}
