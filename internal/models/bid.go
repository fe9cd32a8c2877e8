package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)

// Terminal reports whether the status can no longer change.
func (s BidStatus) Terminal() bool {
	return s == BidStatusHired || s == BidStatusRejected
}

type Bid struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GigID        uuid.UUID `gorm:"type:uuid;index;not null" json:"gig_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;index;not null" json:"freelancer_id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Price        float64   `gorm:"not null" json:"price"`
	Status       BidStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Gig        *Gig  `gorm:"foreignKey:GigID" json:"-"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"-"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BidStatusPending
	}
	return
}

type BidResponse struct {
	ID           string    `json:"id"`
	GigID        string    `json:"gig_id"`
	FreelancerID string    `json:"freelancer_id"`
	Message      string    `json:"message"`
	Price        float64   `json:"price"`
	Status       BidStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	Freelancer *UserMini    `json:"freelancer,omitempty"`
	Gig        *GigResponse `json:"gig,omitempty"`
}

func (b *Bid) Response() BidResponse {
	out := BidResponse{
		ID:           b.ID.String(),
		GigID:        b.GigID.String(),
		FreelancerID: b.FreelancerID.String(),
		Message:      b.Message,
		Price:        b.Price,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		Freelancer:   b.Freelancer.Mini(),
	}
	if b.Gig != nil {
		g := b.Gig.Response()
		out.Gig = &g
	}
	return out
}
