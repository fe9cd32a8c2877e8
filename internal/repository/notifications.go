package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
)

func (r *Repository) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := r.DB.WithContext(ctx).Create(n).Error; err != nil {
		return apperrors.Transient("create notification", err)
	}
	return nil
}

// ListNotifications returns the newest notifications of a user, at most limit.
func (r *Repository) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	var out []models.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Transient("list notifications", err)
	}
	return out, nil
}

func (r *Repository) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&n).Error
	if err != nil {
		return 0, apperrors.Transient("count unread notifications", err)
	}
	return n, nil
}

func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	if res.Error != nil {
		return 0, apperrors.Transient("mark notifications read", res.Error)
	}
	return res.RowsAffected, nil
}
