package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
)

func (r *Repository) CreateBid(ctx context.Context, b *models.Bid) error {
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		return apperrors.Transient("create bid", err)
	}
	return nil
}

func (r *Repository) FindBid(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var b models.Bid
	err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrBidNotFound
	}
	if err != nil {
		return nil, apperrors.Transient("find bid", err)
	}
	return &b, nil
}

// ListBidsByGig returns the bids on a gig, oldest first, with the freelancer
// and the gig owner resolved.
func (r *Repository) ListBidsByGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.DB.WithContext(ctx).
		Preload("Freelancer").
		Preload("Gig.Owner").
		Where("gig_id = ?", gigID).
		Order("created_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, apperrors.Transient("list bids by gig", err)
	}
	return bids, nil
}

func (r *Repository) ListBidsByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.DB.WithContext(ctx).
		Preload("Gig").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, apperrors.Transient("list bids by freelancer", err)
	}
	return bids, nil
}

// CountHiredBids counts hired bids on a gig other than exceptID.
func (r *Repository) CountHiredBids(ctx context.Context, gigID, exceptID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, exceptID, models.BidStatusHired).
		Count(&n).Error
	if err != nil {
		return 0, apperrors.Transient("count hired bids", err)
	}
	return n, nil
}

// MarkBidHired moves a pending bid to hired. A bid that is no longer
// pending yields ErrAlreadyHired; a second hired bid on the same gig is
// refused by the schema and yields ErrGigAssigned.
func (r *Repository) MarkBidHired(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Bid{}).
		Where("id = ? AND status = ?", id, models.BidStatusPending).
		Update("status", models.BidStatusHired)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return apperrors.ErrGigAssigned
		}
		return apperrors.Transient("mark bid hired", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAlreadyHired
	}
	return nil
}

// RejectPendingBids rejects every pending bid on gigID except keepID.
// Bids already in a terminal state are left alone.
func (r *Repository) RejectPendingBids(ctx context.Context, gigID, keepID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, keepID, models.BidStatusPending).
		Update("status", models.BidStatusRejected)
	if res.Error != nil {
		return 0, apperrors.Transient("reject pending bids", res.Error)
	}
	return res.RowsAffected, nil
}
