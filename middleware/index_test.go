package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ciby9833/xspace-sub002/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func setupProtectedApp() (*fiber.App, *model.Actor) {
	var captured model.Actor
	app := fiber.New()
	app.Get("/secure", Protected(), func(c *fiber.Ctx) error {
		captured = ActorFromCtx(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &captured
}

func TestProtected(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	t.Run("missing token is unauthorized", func(t *testing.T) {
		app, _ := setupProtectedApp()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad signature is unauthorized", func(t *testing.T) {
		app, _ := setupProtectedApp()
		bad, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": 1, "level": "platform",
		}).SignedString([]byte("wrong-secret"))
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("claims without level are rejected", func(t *testing.T) {
		app, _ := setupProtectedApp()
		token := signToken(t, jwt.MapClaims{"userId": 7})
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bearer header builds the full actor", func(t *testing.T) {
		app, captured := setupProtectedApp()
		token := signToken(t, jwt.MapClaims{
			"userId":      7,
			"name":        "Store Staff",
			"level":       "store",
			"companyId":   2,
			"storeIds":    []uint{3, 4},
			"permissions": []string{"order.view", "player.*"},
		})
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		assert.Equal(t, uint(7), captured.UserID)
		assert.Equal(t, model.LevelStore, captured.Level)
		if assert.NotNil(t, captured.CompanyID) {
			assert.Equal(t, uint(2), *captured.CompanyID)
		}
		assert.Equal(t, []uint{3, 4}, captured.StoreIDs)
		assert.Equal(t, []string{"order.view", "player.*"}, captured.Permissions)
	})

	t.Run("cookie token works too", func(t *testing.T) {
		app, captured := setupProtectedApp()
		token := signToken(t, jwt.MapClaims{"userId": 9, "level": "platform"})
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, model.LevelPlatform, captured.Level)
	})
}
