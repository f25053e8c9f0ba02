package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eventure/config"
	"eventure/internal/models"
	"eventure/internal/server"
)

// setupRouter wires the full route table against a fresh in-memory
// store, one database per test.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.SeedCategories(db)

	r := gin.New()
	server.SetupRoutes(r, db)
	return r, db
}

func performJSON(t *testing.T, r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func signup(t *testing.T, r http.Handler, email, password string) *http.Cookie {
	t.Helper()
	rec := performJSON(t, r, http.MethodPost, "/v1/auth/signup", gin.H{
		"email":    email,
		"password": password,
		"name":     "Test User",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got %d, body %s", rec.Code, rec.Body.String())
	}
	return sessionCookie(t, rec)
}

func firstCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	var category models.Category
	if err := db.Order("name ASC").First(&category).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}
	return category
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
