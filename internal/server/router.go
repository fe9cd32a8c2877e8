package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Windi-Fikriyansyah/gigflow/internal/config"
	"github.com/Windi-Fikriyansyah/gigflow/internal/handlers"
	"github.com/Windi-Fikriyansyah/gigflow/internal/middleware"
	"github.com/Windi-Fikriyansyah/gigflow/internal/realtime"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/accounts"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/bidding"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/gigs"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/hiring"
)

type Deps struct {
	Config   config.Config
	Repo     *repository.Repository
	Hub      *realtime.Hub
	Accounts *accounts.Service
	Gigs     *gigs.Service
	Bids     *bidding.Service
	Hiring   *hiring.Service
}

// New builds the Fiber app with every route mounted.
func New(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:               "gigflow",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		Accounts:     d.Accounts,
		JWTSecret:    cfg.JWTSecret,
		Expires:      cfg.JWTExpiresMin,
		CookieSecure: cfg.CookieSecure,
	}
	googleH := &handlers.GoogleOAuthHandler{
		Auth:            authH,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	gigH := &handlers.GigHandler{Gigs: d.Gigs}
	bidH := &handlers.BidHandler{Bids: d.Bids, Hiring: d.Hiring}
	notifH := &handlers.NotificationHandler{Store: d.Repo}
	wsH := &handlers.WSHandler{Hub: d.Hub}

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("GigFlow API running...")
	})
	app.Get("/ws", requireAuth, wsH.Upgrade, wsH.Serve())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/me", requireAuth, authH.Me)
	auth.Get("/google/start", googleH.GoogleStart)
	auth.Get("/google/callback", googleH.GoogleCallback)

	gigRoutes := api.Group("/gigs")
	gigRoutes.Get("/", gigH.List)
	gigRoutes.Post("/", requireAuth, gigH.Create)
	gigRoutes.Get("/mine", requireAuth, gigH.Mine)
	gigRoutes.Get("/:id", gigH.Get)

	bidRoutes := api.Group("/bids", requireAuth)
	bidRoutes.Post("/", bidH.Create)
	bidRoutes.Get("/mine", bidH.Mine)
	bidRoutes.Get("/:gigId", bidH.ListByGig)
	bidRoutes.Patch("/:bidId/hire", bidH.Hire)

	notifRoutes := api.Group("/notifications", requireAuth)
	notifRoutes.Get("/", notifH.List)
	notifRoutes.Patch("/read", notifH.MarkAllRead)

	return app
}
