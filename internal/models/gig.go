package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GigStatus string

const (
	GigStatusOpen     GigStatus = "open"
	GigStatusAssigned GigStatus = "assigned"
)

// Gig is a posted job. Its status moves open -> assigned exactly once.
type Gig struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Budget      float64   `gorm:"not null" json:"budget"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	Status      GigStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (g *Gig) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GigStatusOpen
	}
	return
}

type GigResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	OwnerID     string    `json:"owner_id"`
	Status      GigStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Owner *UserMini `json:"owner,omitempty"`
}

func (g *Gig) Response() GigResponse {
	return GigResponse{
		ID:          g.ID.String(),
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		OwnerID:     g.OwnerID.String(),
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
		Owner:       g.Owner.Mini(),
	}
}
