package bidding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
)

// Service records bids. Placing a bid never touches gig state and takes no
// locks; a bid racing a hire on the same gig is tolerated and ends up
// pending on an assigned gig, where hiring will refuse it.
type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) PlaceBid(ctx context.Context, freelancerID, gigID uuid.UUID, message string, price float64) (*models.Bid, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Invalid("message is required")
	}
	if price <= 0 {
		return nil, apperrors.Invalid("price must be greater than zero")
	}

	gig, err := s.repo.FindGig(ctx, gigID)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	if gig.OwnerID == freelancerID {
		return nil, apperrors.ErrOwnGig
	}
	if gig.Status != models.GigStatusOpen {
		return nil, apperrors.ErrGigNotOpen
	}

	bid := &models.Bid{
		GigID:        gig.ID,
		FreelancerID: freelancerID,
		Message:      message,
		Price:        price,
		Status:       models.BidStatusPending,
	}
	if err := s.repo.CreateBid(ctx, bid); err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	return bid, nil
}

// BidsForGig lists a gig's bids with freelancer and owner resolved.
func (s *Service) BidsForGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error) {
	if _, err := s.repo.FindGig(ctx, gigID); err != nil {
		return nil, err
	}
	return s.repo.ListBidsByGig(ctx, gigID)
}

func (s *Service) BidsByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	return s.repo.ListBidsByFreelancer(ctx, freelancerID)
}
