package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", JWTAuth(testSecret), func(c *fiber.Ctx) error {
		id := UserID(c)
		if id == nil {
			return c.JSON(fiber.Map{"user_id": nil})
		}
		return c.JSON(fiber.Map{"user_id": *id})
	})
	return app
}

func TestJWTAuth(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongSecret := signToken(t, jwt.SigningMethodHS256, "other", jwt.MapClaims{"user_id": 7})
	wrongAlg := signToken(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{"user_id": 7})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"no bearer prefix", valid, fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + wrongSecret, fiber.StatusUnauthorized},
		{"wrong algorithm", "Bearer " + wrongAlg, fiber.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", fiber.StatusUnauthorized},
	}

	app := newProtectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestJWTAuthStoresUserID(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": 42})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := newProtectedApp().Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, float64(42), out["user_id"])
}

func TestJWTAuthErrorEnvelope(t *testing.T) {
	resp, err := newProtectedApp().Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "UNAUTHORIZED", out.Error.Code)
}

func TestUserIDClaimFormats(t *testing.T) {
	id, ok := userID(float64(5))
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	id, ok = userID("12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = userID(nil)
	assert.False(t, ok)
}
