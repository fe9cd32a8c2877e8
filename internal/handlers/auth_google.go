package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleOAuthHandler struct {
	Auth            *AuthHandler
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	// Endpoint and UserInfoURL default to Google's; tests point them at a stub.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

func (h *GoogleOAuthHandler) enabled() bool {
	return h.GoogleClientID != ""
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	ep := h.Endpoint
	if ep.AuthURL == "" {
		ep = google.Endpoint
	}
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     ep,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) shortCookie(name, value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	if !h.enabled() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "google login is not configured"})
	}

	next := c.Query("next", "/")
	st := randomState(32)

	c.Cookie(h.shortCookie("oauth_state", st, 10*60))
	c.Cookie(h.shortCookie("oauth_next", next, 10*60))

	return c.Redirect(h.oauthCfg().AuthCodeURL(st), fiber.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) loginError(c *fiber.Ctx, msg string) error {
	return c.Redirect(h.FrontendBaseURL+"/login?err="+url.QueryEscape(msg), fiber.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if !h.enabled() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "google login is not configured"})
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing code or state"})
	}
	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid state"})
	}

	next := c.Cookies("oauth_next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}

	ctx := c.UserContext()
	cfg := h.oauthCfg()
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("google: code exchange failed")
		return h.loginError(c, "google login failed")
	}

	infoURL := h.UserInfoURL
	if infoURL == "" {
		infoURL = googleUserInfoURL
	}
	resp, err := cfg.Client(ctx, tok).Get(infoURL)
	if err != nil {
		log.WithError(err).Warn("google: userinfo request failed")
		return h.loginError(c, "google login failed")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil || strings.TrimSpace(gu.Email) == "" {
		return h.loginError(c, "email not provided by google")
	}
	if !gu.VerifiedEmail {
		log.WithField("email", gu.Email).Warn("google: refusing unverified email")
		return h.loginError(c, "google email not verified")
	}

	u, err := h.Auth.Accounts.UpsertExternal(ctx, gu.Email, gu.Name)
	if err != nil {
		log.WithError(err).Error("google: upsert user failed")
		return h.loginError(c, "could not sign in")
	}
	if _, err := h.Auth.issueSession(c, u); err != nil {
		return fail(c, err)
	}

	c.Cookie(h.shortCookie("oauth_state", "", -1))
	c.Cookie(h.shortCookie("oauth_next", "", -1))

	return c.Redirect(h.FrontendBaseURL+next, fiber.StatusTemporaryRedirect)
}
