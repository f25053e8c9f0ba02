package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventure/internal/helpers"
	"eventure/internal/models"
)

// ListUsers summarizes every account for the admin view: identity
// fields, how the user can sign in, and how much they own. The password
// hash never leaves the database layer.
func ListUsers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var users []models.User
	err := gormDB.
		Preload("Accounts").
		Preload("Events").
		Preload("Sessions").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		log.Printf("Error retrieving users: %v", err)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving users.")
		return
	}

	payload := make([]gin.H, 0, len(users))
	for i := range users {
		user := &users[i]

		authMethods := make([]string, 0, len(user.Accounts)+1)
		if user.HasPassword() {
			authMethods = append(authMethods, "credentials")
		}
		for _, account := range user.Accounts {
			authMethods = append(authMethods, account.Provider)
		}

		payload = append(payload, gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"role":          user.Role,
			"createdAt":     user.CreatedAt,
			"hasPassword":   user.HasPassword(),
			"authMethods":   authMethods,
			"eventsCount":   len(user.Events),
			"sessionsCount": len(user.Sessions),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(payload),
		"users": payload,
	})
}
