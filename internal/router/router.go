package router

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/config"
	"pizza_this_backend/internal/handlers"
	"pizza_this_backend/internal/notifier"
	"pizza_this_backend/internal/repositories"
	"pizza_this_backend/internal/services"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, n notifier.Notifier) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)

	// Initialize Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, contactRepo, reservationRepo, tokenService, db)
	userService := services.NewUserService(userRepo, db)
	articleService := services.NewArticleService(articleRepo, db)
	contactService := services.NewContactService(contactRepo, db, n)
	reservationService := services.NewReservationService(reservationRepo, db, n)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	articleHandler := handlers.NewArticleHandler(articleService)
	contactHandler := handlers.NewContactHandler(contactService)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	// Unknown routes and known routes hit with the wrong verb get JSON
	// errors instead of gin's plain-text defaults.
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Action non trouvée"})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Méthode non autorisée"})
	})

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler, tokenService, authService)
	SetupUserRoutes(apiV1, userHandler, tokenService, authService)
	SetupArticleRoutes(apiV1, articleHandler, tokenService, authService)
	SetupContactRoutes(apiV1, contactHandler, tokenService, authService)
	SetupReservationRoutes(apiV1, reservationHandler, tokenService, authService)
}
