package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventure/config"
	"eventure/internal/handlers"
	"eventure/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	SetupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		auth.Use(middleware.RateLimit(middleware.NewRateLimiter(5, 10)))
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/login", handlers.Login)
			auth.POST("/oauth", handlers.OAuthLogin)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", handlers.Me)
		}

		public.GET("/categories", handlers.ListCategories)
		public.POST("/checkout", handlers.CheckoutSummary)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.GET("/:id/tickets", handlers.ListEventTickets)
		}

		public.GET("/tickets/:id/qr", handlers.TicketQR)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.SessionAuthMiddleware())
	{
		protected.POST("/events", handlers.CreateEvent)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.SessionAuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.ListUsers)
	}
}
