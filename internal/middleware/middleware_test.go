package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/gigflow/internal/utils"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/me", RequireAuth(secret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userId").(string))
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	uid := uuid.New()
	token, err := utils.SignJWT(secret, uid.String(), "a@b.io", 10)
	require.NoError(t, err)
	other, err := utils.SignJWT("other-secret", uid.String(), "a@b.io", 10)
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no_token", func(r *http.Request) {}, fiber.StatusUnauthorized},
		{"session_cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		}, fiber.StatusOK},
		{"legacy_cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: token})
		}, fiber.StatusOK},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}, fiber.StatusOK},
		{"wrong_secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+other)
		}, fiber.StatusUnauthorized},
		{"garbage", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-jwt"})
		}, fiber.StatusUnauthorized},
	}

	app := newApp()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			if tc.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				require.Equal(t, uid.String(), string(body))
			}
		})
	}
}
