package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category.EventsCount is denormalized: it is incremented inside the
// same transaction that inserts an event and is never recomputed.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	EventsCount int       `gorm:"not null;default:0" json:"eventsCount"`
	Events      []Event   `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (category *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}
