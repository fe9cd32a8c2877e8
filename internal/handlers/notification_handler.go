package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/notify"
)

const notificationPageSize = 50

type NotificationStore interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
}

type NotificationHandler struct {
	Store NotificationStore
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx := c.UserContext()

	list, err := h.Store.ListNotifications(ctx, uid, notificationPageSize)
	if err != nil {
		return fail(c, err)
	}
	unread, err := h.Store.CountUnreadNotifications(ctx, uid)
	if err != nil {
		return fail(c, err)
	}

	items := make([]notify.NotificationPayload, 0, len(list))
	for i := range list {
		items = append(items, notify.ToPayload(&list[i]))
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"items":  items,
		"unread": unread,
	})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	n, err := h.Store.MarkAllNotificationsRead(c.UserContext(), uid, time.Now())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"updated": n})
}
