package gigs

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
)

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, title, description string, budget float64) (*models.Gig, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	switch {
	case title == "":
		return nil, apperrors.Invalid("title is required")
	case description == "":
		return nil, apperrors.Invalid("description is required")
	case budget <= 0:
		return nil, apperrors.Invalid("budget must be greater than zero")
	}

	gig := &models.Gig{
		Title:       title,
		Description: description,
		Budget:      budget,
		OwnerID:     ownerID,
		Status:      models.GigStatusOpen,
	}
	if err := s.repo.CreateGig(ctx, gig); err != nil {
		return nil, err
	}
	return gig, nil
}

// ListOpen returns open gigs matching search in their title, newest first.
func (s *Service) ListOpen(ctx context.Context, search string) ([]models.Gig, error) {
	return s.repo.ListOpenGigs(ctx, search)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	return s.repo.FindGig(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	return s.repo.ListGigsByOwner(ctx, ownerID)
}
