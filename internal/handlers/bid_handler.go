package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/bidding"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/hiring"
)

type BidHandler struct {
	Bids   *bidding.Service
	Hiring *hiring.Service
}

type CreateBidReq struct {
	GigID   string  `json:"gigId"`
	Message string  `json:"message"`
	Price   float64 `json:"price"`
}

func bidResponses(list []models.Bid) []models.BidResponse {
	out := make([]models.BidResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].Response())
	}
	return out
}

func (h *BidHandler) Create(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	var req CreateBidReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	gigID, err := uuid.Parse(req.GigID)
	if err != nil {
		return fail(c, apperrors.Invalid("gigId is not a valid id"))
	}

	bid, err := h.Bids.PlaceBid(c.UserContext(), uid, gigID, req.Message, req.Price)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, bid.Response())
}

func (h *BidHandler) ListByGig(c *fiber.Ctx) error {
	gigID, err := paramUUID(c, "gigId")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.Bids.BidsForGig(c.UserContext(), gigID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, bidResponses(list))
}

func (h *BidHandler) Mine(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.Bids.BidsByFreelancer(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, bidResponses(list))
}

func (h *BidHandler) Hire(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	bidID, err := paramUUID(c, "bidId")
	if err != nil {
		return fail(c, err)
	}

	res, err := h.Hiring.HireWithRetry(c.UserContext(), uid, bidID)
	if err != nil {
		return fail(c, err)
	}

	return okMessage(c, "Freelancer hired successfully", fiber.Map{
		"bid":      res.Bid.Response(),
		"gig":      res.Gig.Response(),
		"rejected": res.Rejected,
	})
}
