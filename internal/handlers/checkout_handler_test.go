package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventure/internal/models"
)

// setupCheckoutEvent creates a paid event with two tiers and returns the
// router, the event and its tickets ordered by price.
func setupCheckoutEvent(t *testing.T) (router http.Handler, event models.Event, tickets []models.Ticket) {
	t.Helper()
	r, db := setupRouter(t)
	ck := signup(t, r, "host@b.com", "secret1")
	category := firstCategory(t, db)

	body := validEventBody(category.ID.String())
	body["isFree"] = false
	body["tickets"] = []gin.H{
		{"name": "Standard", "price": 20.0},
		{"name": "VIP", "price": 50.0},
	}

	rec := performJSON(t, r, http.MethodPost, "/v1/events", body, ck)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Event models.Event `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := db.Where("event_id = ?", resp.Event.ID).Order("price ASC").Find(&tickets).Error; err != nil {
		t.Fatalf("load tickets: %v", err)
	}
	return r, resp.Event, tickets
}

func TestCheckoutSummary(t *testing.T) {
	r, event, tickets := setupCheckoutEvent(t)

	rec := performJSON(t, r, http.MethodPost, "/v1/checkout", gin.H{
		"eventId": event.ID,
		"items": []gin.H{
			{"ticketId": tickets[0].ID, "quantity": 2}, // 2 x 20
			{"ticketId": tickets[1].ID, "quantity": 1}, // 1 x 50
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items []struct {
			Subtotal float64 `json:"subtotal"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(resp.Items))
	}
	if resp.Items[0].Subtotal != 40 || resp.Items[1].Subtotal != 50 {
		t.Errorf("subtotals: %+v", resp.Items)
	}
	if resp.Total != 90 {
		t.Errorf("total: got %v, want 90", resp.Total)
	}
}

func TestCheckoutRejectsForeignTicket(t *testing.T) {
	r, event, _ := setupCheckoutEvent(t)

	rec := performJSON(t, r, http.MethodPost, "/v1/checkout", gin.H{
		"eventId": event.ID,
		"items":   []gin.H{{"ticketId": uuid.NewString(), "quantity": 1}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	r, event, tickets := setupCheckoutEvent(t)

	rec := performJSON(t, r, http.MethodPost, "/v1/checkout", gin.H{
		"eventId": event.ID,
		"items":   []gin.H{{"ticketId": tickets[0].ID, "quantity": -1}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

func TestCheckoutUnknownEvent(t *testing.T) {
	r, _ := setupRouter(t)

	rec := performJSON(t, r, http.MethodPost, "/v1/checkout", gin.H{
		"eventId": uuid.NewString(),
		"items":   []gin.H{{"ticketId": uuid.NewString(), "quantity": 1}},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
