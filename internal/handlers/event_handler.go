package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventure/internal/helpers"
	"eventure/internal/models"
)

var errUnknownCategory = errors.New("unknown category")

type TicketInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CreateEventRequest struct {
	Image       string        `json:"image"`
	Title       string        `json:"title"`
	Host        string        `json:"host"`
	StartDate   string        `json:"startDate"`
	StartTime   string        `json:"startTime"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	CategoryID  string        `json:"categoryId"`
	IsFree      bool          `json:"isFree"`
	Tickets     []TicketInput `json:"tickets"`
}

// requiredFields are checked in order; the first empty one names the error.
func (req *CreateEventRequest) firstMissingField() string {
	required := []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"startDate", req.StartDate},
		{"startTime", req.StartTime},
		{"location", req.Location},
		{"categoryId", req.CategoryID},
	}
	for _, f := range required {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

// CreateEvent persists the event, its ticket tiers and the category
// counter bump as one transaction. Either all three land or none do, so
// a reader can never see an event whose category count does not include it.
func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if missing := req.firstMissingField(); missing != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required field: "+missing+".")
		return
	}

	eventDateTime, err := helpers.CombineDateTime(req.StartDate, req.StartTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start date or time format.")
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category id.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	host := req.Host
	if host == "" {
		host = user.Name
	}
	if host == "" {
		host = "Unknown Host"
	}

	var event models.Event
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		// Bumping the counter first takes the category row lock, which
		// both rejects unknown categories and serializes concurrent
		// creators targeting the same category.
		result := tx.Model(&models.Category{}).
			Where("id = ?", categoryID).
			UpdateColumn("events_count", gorm.Expr("events_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errUnknownCategory
		}

		event = models.Event{
			Title:       req.Title,
			Host:        host,
			Date:        eventDateTime,
			Time:        req.StartTime,
			Location:    req.Location,
			Description: req.Description,
			Image:       req.Image,
			Attendees:   0,
			CategoryID:  categoryID,
			CreatedByID: user.ID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if !req.IsFree && len(req.Tickets) > 0 {
			tickets := make([]models.Ticket, 0, len(req.Tickets))
			for _, t := range req.Tickets {
				tickets = append(tickets, models.Ticket{
					EventID: event.ID,
					Type:    t.Name,
					Price:   t.Price,
					Link:    "",
				})
			}
			if err := tx.Create(&tickets).Error; err != nil {
				return err
			}
			event.Tickets = tickets
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownCategory) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Category not found.")
			return
		}
		log.Printf("Error creating event: %v", err)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func eventQuery(gormDB *gorm.DB) *gorm.DB {
	return gormDB.Model(&models.Event{}).
		Preload("Category").
		Preload("Tickets").
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
}

// ListEvents returns every event, date ascending, optionally narrowed by
// a case-insensitive location substring.
func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := eventQuery(gormDB)
	if location := c.Query("location"); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	events := []models.Event{}
	if err := query.Order("date ASC").Find(&events).Error; err != nil {
		log.Printf("Error retrieving events: %v", err)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, events)
}

func GetEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := eventQuery(gormDB).Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}
