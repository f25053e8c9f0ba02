package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Token     string    `gorm:"unique;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User      User      `json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (session *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return
}

func (session *Session) Expired() bool {
	return !session.ExpiresAt.After(time.Now())
}
