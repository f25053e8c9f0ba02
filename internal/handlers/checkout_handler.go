package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventure/internal/helpers"
	"eventure/internal/models"
)

type CheckoutItem struct {
	TicketID uuid.UUID `json:"ticketId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	EventID uuid.UUID      `json:"eventId" binding:"required"`
	Items   []CheckoutItem `json:"items" binding:"required,min=1"`
}

type CheckoutLine struct {
	TicketID uuid.UUID `json:"ticketId"`
	Type     string    `json:"type"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Subtotal float64   `json:"subtotal"`
}

// CheckoutSummary prices a basket of ticket tiers for one event. It is a
// read-only quote; purchasing happens on the ticket's external link.
func CheckoutSummary(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Preload("Tickets").Where("id = ?", req.EventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	byID := make(map[uuid.UUID]models.Ticket, len(event.Tickets))
	for _, t := range event.Tickets {
		byID[t.ID] = t
	}

	lines := make([]CheckoutLine, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Ticket quantity must be positive.")
			return
		}
		ticket, ok := byID[item.TicketID]
		if !ok {
			helpers.RespondWithError(c, http.StatusBadRequest, "Ticket does not belong to this event.")
			return
		}
		subtotal := ticket.Price * float64(item.Quantity)
		lines = append(lines, CheckoutLine{
			TicketID: ticket.ID,
			Type:     ticket.Type,
			Price:    ticket.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		total += subtotal
	}

	c.JSON(http.StatusOK, gin.H{
		"event": gin.H{
			"id":       event.ID,
			"title":    event.Title,
			"date":     event.Date,
			"location": event.Location,
			"image":    event.Image,
		},
		"items": lines,
		"total": total,
	})
}
