package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/gigs"
)

type GigHandler struct {
	Gigs *gigs.Service
}

type CreateGigReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

func gigResponses(list []models.Gig) []models.GigResponse {
	out := make([]models.GigResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].Response())
	}
	return out
}

// List returns open gigs, optionally filtered by ?search=.
func (h *GigHandler) List(c *fiber.Ctx) error {
	list, err := h.Gigs.ListOpen(c.UserContext(), c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, gigResponses(list))
}

func (h *GigHandler) Create(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	var req CreateGigReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	g, err := h.Gigs.Create(c.UserContext(), uid, req.Title, req.Description, req.Budget)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, g.Response())
}

func (h *GigHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	g, err := h.Gigs.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, g.Response())
}

func (h *GigHandler) Mine(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.Gigs.ListMine(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, gigResponses(list))
}
