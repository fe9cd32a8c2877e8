package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationKind says what happened. Producers set it; it is never
// derived from the message text.
type NotificationKind string

const (
	NotificationHired NotificationKind = "hired"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	Kind     NotificationKind `gorm:"type:varchar(30);not null" json:"kind"`
	Severity Severity         `gorm:"type:varchar(20);not null" json:"severity"`
	Message  string           `gorm:"type:text;not null" json:"message"`
	Payload  datatypes.JSON   `json:"payload"`
	ReadAt   *time.Time       `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
