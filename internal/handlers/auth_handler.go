package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventure/internal/helpers"
	"eventure/internal/middleware"
	"eventure/internal/models"
)

const sessionTTL = 24 * time.Hour

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OAuthLoginRequest struct {
	Provider  string `json:"provider" binding:"required"`
	Assertion string `json:"assertion" binding:"required"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	}
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secureCookies(), true)
}

// issueSession persists a fresh 24h session for the user and sets the
// cookie on the response.
func issueSession(c *gin.Context, gormDB *gorm.DB, user *models.User) error {
	token, err := helpers.GenerateSessionToken()
	if err != nil {
		return err
	}

	session := models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := gormDB.Create(&session).Error; err != nil {
		return err
	}

	setSessionCookie(c, token, int(sessionTTL.Seconds()))
	return nil
}

func Signup(c *gin.Context) {
	var req SignupRequest
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

	email := strings.ToLower(req.Email)

	var existingUser models.User
	if result := gormDB.Where("email = ?", email).First(&existingUser); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "User with this email already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	hash := string(hashedPassword)
	user := models.User{
		Email:    email,
		Password: &hash,
		Name:     req.Name,
		Role:     models.RoleUser,
	}
	if err := gormDB.Create(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	if err := issueSession(c, gormDB, &user); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created and signed in successfully.",
		"user":    userPayload(&user),
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
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

	// One generic message for every failure path, so callers cannot
	// probe which emails are registered.
	var user models.User
	if err := gormDB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if !user.HasPassword() {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if err := issueSession(c, gormDB, &user); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully.",
		"user":    userPayload(&user),
	})
}

// OAuthLogin accepts a provider-signed assertion (a JWT carrying the
// verified email and name), creating the user on first sign-in. The
// provider has already verified the email, so it is trusted here.
func OAuthLogin(c *gin.Context) {
	var req OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	secret := os.Getenv("OAUTH_PROVIDER_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "OAUTH_PROVIDER_SECRET not configured.")
		return
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(req.Assertion, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid provider assertion.")
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid provider assertion.")
		return
	}
	email = strings.ToLower(email)
	name, _ := claims["name"].(string)
	subject, _ := claims["sub"].(string)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	err = gormDB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: email,
			Name:  name,
			Role:  models.RoleUser,
		}
		err = gormDB.Create(&user).Error
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to sign in.")
		return
	}

	account := models.Account{
		UserID:            user.ID,
		Provider:          req.Provider,
		ProviderAccountID: subject,
	}
	if err := gormDB.Where("user_id = ? AND provider = ?", user.ID, req.Provider).
		FirstOrCreate(&account).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to link provider account.")
		return
	}

	if err := issueSession(c, gormDB, &user); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully.",
		"user":    userPayload(&user),
	})
}

// Logout revokes the session named by the cookie. Revoking a missing or
// already-revoked token is not an error.
func Logout(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	token, _ := c.Cookie(middleware.SessionCookie)
	if token != "" {
		if err := gormDB.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to sign out.")
			return
		}
	}

	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

func Me(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	token, _ := c.Cookie(middleware.SessionCookie)
	user, err := middleware.ResolveSession(gormDB, token)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error resolving session.")
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}
