package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
)

func (r *Repository) CreateGig(ctx context.Context, g *models.Gig) error {
	if err := r.DB.WithContext(ctx).Create(g).Error; err != nil {
		return apperrors.Transient("create gig", err)
	}
	return nil
}

// FindGig loads a gig with its owner resolved.
func (r *Repository) FindGig(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var g models.Gig
	err := r.DB.WithContext(ctx).Preload("Owner").First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrGigNotFound
	}
	if err != nil {
		return nil, apperrors.Transient("find gig", err)
	}
	return &g, nil
}

// LockGig reads a gig holding a row lock until the surrounding transaction
// ends. SQLite has no row locks; its single writer gives the same effect.
func (r *Repository) LockGig(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	q := r.DB.WithContext(ctx)
	if r.isPostgres() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var g models.Gig
	err := q.First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrGigNotFound
	}
	if err != nil {
		return nil, apperrors.Transient("lock gig", err)
	}
	return &g, nil
}

// AssignGig moves a gig from open to assigned. It fails with ErrGigAssigned
// when the gig is no longer open.
func (r *Repository) AssignGig(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Gig{}).
		Where("id = ? AND status = ?", id, models.GigStatusOpen).
		Update("status", models.GigStatusAssigned)
	if res.Error != nil {
		return apperrors.Transient("assign gig", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGigAssigned
	}
	return nil
}

// ListOpenGigs returns open gigs whose title contains search (case
// insensitive), newest first. SQLite's LOWER only folds ASCII, so on that
// driver the match runs here instead of in SQL.
func (r *Repository) ListOpenGigs(ctx context.Context, search string) ([]models.Gig, error) {
	s := strings.TrimSpace(search)
	q := r.DB.WithContext(ctx).Where("status = ?", models.GigStatusOpen)
	if s != "" && r.isPostgres() {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(s))
	}

	var gigs []models.Gig
	if err := q.Order("created_at DESC").Find(&gigs).Error; err != nil {
		return nil, apperrors.Transient("list open gigs", err)
	}
	if s == "" || r.isPostgres() {
		return gigs, nil
	}

	needle := strings.ToLower(s)
	matched := gigs[:0]
	for _, g := range gigs {
		if strings.Contains(strings.ToLower(g.Title), needle) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (r *Repository) ListGigsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	var gigs []models.Gig
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&gigs).Error
	if err != nil {
		return nil, apperrors.Transient("list gigs by owner", err)
	}
	return gigs, nil
}
