package router

import (
	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/handlers"
	"pizza_this_backend/internal/middleware"
	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/services"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, tokens services.TokenService, users middleware.UserLoader) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		// verify answers {valid:false} on bad tokens instead of the error
		// envelope, so it sits behind the optional guard.
		verifyRoutes := authRoutes.Group("")
		verifyRoutes.Use(middleware.OptionalAuthMiddleware(tokens, users))
		{
			verifyRoutes.GET("/verify", authHandler.Verify)
		}

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware(tokens, users))
		{
			authRequiredRoutes.POST("/logout", authHandler.Logout)
			authRequiredRoutes.GET("/profile", authHandler.Profile)
			authRequiredRoutes.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupUserRoutes sets up the admin user management routes.
func SetupUserRoutes(apiGroup *gin.RouterGroup, userHandler *handlers.UserHandler, tokens services.TokenService, users middleware.UserLoader) {
	userRoutes := apiGroup.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(tokens, users), middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupArticleRoutes sets up the article routes. Reads are public with
// optional authentication so admins see drafts; writes are admin-only.
func SetupArticleRoutes(apiGroup *gin.RouterGroup, articleHandler *handlers.ArticleHandler, tokens services.TokenService, users middleware.UserLoader) {
	articleRoutes := apiGroup.Group("/articles")
	{
		readRoutes := articleRoutes.Group("")
		readRoutes.Use(middleware.OptionalAuthMiddleware(tokens, users))
		{
			readRoutes.GET("", articleHandler.ListArticles)
			readRoutes.GET("/:id", articleHandler.GetArticle)
		}

		adminRoutes := articleRoutes.Group("")
		adminRoutes.Use(middleware.AuthMiddleware(tokens, users), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("", articleHandler.CreateArticle)
			adminRoutes.PUT("/:id", articleHandler.UpdateArticle)
			adminRoutes.DELETE("/:id", articleHandler.DeleteArticle)
		}
	}
}

// SetupContactRoutes sets up the contact form routes. Submission is public
// with optional attribution; the listing is role-dependent inside the
// handler; status updates are admin-only.
func SetupContactRoutes(apiGroup *gin.RouterGroup, contactHandler *handlers.ContactHandler, tokens services.TokenService, users middleware.UserLoader) {
	contactRoutes := apiGroup.Group("/contacts")
	{
		submitRoutes := contactRoutes.Group("")
		submitRoutes.Use(middleware.OptionalAuthMiddleware(tokens, users))
		{
			submitRoutes.POST("", contactHandler.Submit)
		}

		listRoutes := contactRoutes.Group("")
		listRoutes.Use(middleware.AuthMiddleware(tokens, users))
		{
			listRoutes.GET("", contactHandler.List)
		}

		adminRoutes := contactRoutes.Group("")
		adminRoutes.Use(middleware.AuthMiddleware(tokens, users), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.PUT("/:id", contactHandler.UpdateStatus)
		}
	}
}

// SetupReservationRoutes sets up the reservation routes, mirroring the
// contact group's shape.
func SetupReservationRoutes(apiGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler, tokens services.TokenService, users middleware.UserLoader) {
	reservationRoutes := apiGroup.Group("/reservations")
	{
		submitRoutes := reservationRoutes.Group("")
		submitRoutes.Use(middleware.OptionalAuthMiddleware(tokens, users))
		{
			submitRoutes.POST("", reservationHandler.Submit)
		}

		listRoutes := reservationRoutes.Group("")
		listRoutes.Use(middleware.AuthMiddleware(tokens, users))
		{
			listRoutes.GET("", reservationHandler.List)
		}

		adminRoutes := reservationRoutes.Group("")
		adminRoutes.Use(middleware.AuthMiddleware(tokens, users), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.PUT("/:id", reservationHandler.UpdateStatus)
		}
	}
}
