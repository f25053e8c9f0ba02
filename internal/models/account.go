package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account links a user to a third-party OAuth identity. A user may hold
// several (one per provider) alongside an optional password.
type Account struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User              User      `json:"-"`
	Provider          string    `gorm:"not null" json:"provider"`
	ProviderAccountID string    `json:"providerAccountId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (account *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	return
}
