package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  *string   `json:"-"`
	Name      string    `json:"name"`
	Role      string    `gorm:"not null;default:'USER'" json:"role"`
	Sessions  []Session `json:"-"`
	Events    []Event   `gorm:"foreignKey:CreatedByID" json:"-"`
	Accounts  []Account `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

// HasPassword reports whether the user can sign in with credentials.
// OAuth-only accounts carry no password hash at all.
func (user *User) HasPassword() bool {
	return user.Password != nil && *user.Password != ""
}
