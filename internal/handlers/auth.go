package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/gigflow/internal/middleware"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/accounts"
	"github.com/Windi-Fikriyansyah/gigflow/internal/utils"
)

type AuthHandler struct {
	Accounts     *accounts.Service
	JWTSecret    string
	Expires      int
	CookieSecure bool
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// issueSession signs a token for u and sets it as the session cookie.
func (h *AuthHandler) issueSession(c *fiber.Ctx, u *models.User) (string, error) {
	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), u.Email, h.Expires)
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   h.Expires * 60,
	})
	return token, nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	u, err := h.Accounts.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered",
		"data":    fiber.Map{"user": u.Mini()},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	u, err := h.Accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := h.issueSession(c, u)
	if err != nil {
		return fail(c, err)
	}

	return okMessage(c, "Logged in", fiber.Map{
		"token": token,
		"user":  u.Mini(),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return okMessage(c, "Logged out", nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	u, err := h.Accounts.Get(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"user": u.Mini()})
}
