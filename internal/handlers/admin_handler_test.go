package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"eventure/internal/models"
)

func TestListUsersRequiresAdmin(t *testing.T) {
	r, _ := setupRouter(t)

	rec := performJSON(t, r, http.MethodGet, "/v1/admin/users", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want 401", rec.Code)
	}

	ck := signup(t, r, "plain@b.com", "secret1")
	rec = performJSON(t, r, http.MethodGet, "/v1/admin/users", nil, ck)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin: got %d, want 403", rec.Code)
	}
}

func TestListUsers(t *testing.T) {
	r, db := setupRouter(t)
	signup(t, r, "member@b.com", "secret1")
	adminCookie := signup(t, r, "admin@b.com", "secret1")

	if err := db.Model(&models.User{}).
		Where("email = ?", "admin@b.com").
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	rec := performJSON(t, r, http.MethodGet, "/v1/admin/users", nil, adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
		Users []struct {
			Email         string   `json:"email"`
			HasPassword   bool     `json:"hasPassword"`
			AuthMethods   []string `json:"authMethods"`
			SessionsCount int      `json:"sessionsCount"`
		} `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count: got %d, want 2", resp.Count)
	}

	for _, user := range resp.Users {
		if !user.HasPassword {
			t.Errorf("%s: hasPassword false for credentials user", user.Email)
		}
		if len(user.AuthMethods) != 1 || user.AuthMethods[0] != "credentials" {
			t.Errorf("%s: authMethods %v", user.Email, user.AuthMethods)
		}
		if user.SessionsCount != 1 {
			t.Errorf("%s: sessionsCount %d, want 1", user.Email, user.SessionsCount)
		}
	}

	// the hash must never appear in a payload
	if strings.Contains(rec.Body.String(), "$2a$") || strings.Contains(rec.Body.String(), "$2b$") {
		t.Error("response leaks a bcrypt hash")
	}
}
