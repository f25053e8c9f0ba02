package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Host        string    `json:"host"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `json:"time"`
	Location    string    `gorm:"not null" json:"location"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Attendees   int       `gorm:"not null;default:0" json:"attendees"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category    Category  `json:"category"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"createdById"`
	CreatedBy   User      `json:"createdBy"`
	Tickets     []Ticket  `json:"tickets"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
