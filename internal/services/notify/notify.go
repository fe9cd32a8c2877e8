// Package notify is the per-user notification channel: it records an inbox
// entry and pushes the event to whichever API instance holds the user's
// websocket session. Delivery is best effort.
package notify

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
)

type Notification struct {
	Kind     models.NotificationKind
	Severity models.Severity
	Message  string
	Payload  any
}

// Notifier delivers a notification to one user.
type Notifier interface {
	Send(ctx context.Context, recipient uuid.UUID, n Notification) error
}

// Publisher moves an encoded event towards the recipient's live sessions.
type Publisher interface {
	Publish(ctx context.Context, recipient uuid.UUID, event []byte) error
}

// Inbox persists notifications so they survive offline recipients.
type Inbox interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Event is the JSON pushed to websocket clients.
type Event struct {
	Type         string              `json:"type"`
	Notification NotificationPayload `json:"notification"`
}

type NotificationPayload struct {
	ID        string                  `json:"id"`
	Kind      models.NotificationKind `json:"kind"`
	Severity  models.Severity         `json:"severity"`
	Message   string                  `json:"message"`
	Payload   json.RawMessage         `json:"payload,omitempty"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}

func ToPayload(n *models.Notification) NotificationPayload {
	return NotificationPayload{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		Severity:  n.Severity,
		Message:   n.Message,
		Payload:   json.RawMessage(n.Payload),
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt,
	}
}

// Service is the production Notifier.
type Service struct {
	inbox Inbox
	pub   Publisher
}

func NewService(inbox Inbox, pub Publisher) *Service {
	return &Service{inbox: inbox, pub: pub}
}

// Send stores the notification and publishes it. A failed insert does not
// stop the live push; both failures are reported together.
func (s *Service) Send(ctx context.Context, recipient uuid.UUID, n Notification) error {
	row := models.Notification{
		ID:        uuid.New(),
		UserID:    recipient,
		Kind:      n.Kind,
		Severity:  n.Severity,
		Message:   n.Message,
		CreatedAt: time.Now(),
	}
	if n.Payload != nil {
		raw, err := json.Marshal(n.Payload)
		if err != nil {
			return fmt.Errorf("encode notification payload: %w", err)
		}
		row.Payload = datatypes.JSON(raw)
	}

	var errs []error
	if err := s.inbox.CreateNotification(ctx, &row); err != nil {
		log.WithFields(log.Fields{"recipient": recipient, "kind": n.Kind}).WithError(err).Warn("notification not stored")
		errs = append(errs, err)
	}

	event, err := json.Marshal(Event{Type: "notification", Notification: ToPayload(&row)})
	if err != nil {
		return errors.Join(append(errs, err)...)
	}
	if err := s.pub.Publish(ctx, recipient, event); err != nil {
		errs = append(errs, fmt.Errorf("publish: %w", err))
	}
	return errors.Join(errs...)
}
