package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acortes/biblioteca/internal/app/controllers"
	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	loanController *controllers.LoanController,
	reservationController *controllers.ReservationController,
	digitalController *controllers.DigitalController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public catalog browsing
	materials := v1.Group("/materials")
	{
		materials.GET("", catalogController.ListMaterials)
		materials.GET("/:id", catalogController.GetMaterial)
	}
	v1.GET("/categories", catalogController.ListCategories)

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Everything below requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		// Catalog administration, staff only
		staffMaterials := authenticated.Group("/materials")
		staffMaterials.Use(middleware.RoleRequired(models.RoleLibrarian, models.RoleAdmin))
		{
			staffMaterials.POST("", catalogController.CreateMaterial)
			staffMaterials.PUT("/:id", catalogController.UpdateMaterial)
		}

		// Loan lifecycle
		loans := authenticated.Group("/loans")
		{
			loans.POST("", loanController.RequestLoan)
			loans.GET("", loanController.ListLoans)
			loans.POST("/:id/renew", loanController.RenewLoan)
			loans.POST("/:id/return", loanController.ReturnLoan)
		}

		// Reservation lifecycle
		reservations := authenticated.Group("/reservations")
		{
			reservations.POST("", reservationController.CreateReservation)
			reservations.GET("", reservationController.ListReservations)
			reservations.DELETE("/:id", reservationController.CancelReservation)

			staffReservations := reservations.Group("")
			staffReservations.Use(middleware.RoleRequired(models.RoleLibrarian, models.RoleAdmin))
			{
				staffReservations.POST("/:id/complete", reservationController.CompleteReservation)
			}
		}

		// Digital library
		digital := authenticated.Group("/digital")
		{
			digital.GET("", digitalController.ListDigitalMaterials)
			digital.GET("/downloads", digitalController.ListDownloads)
			digital.POST("/:id/download", digitalController.DownloadMaterial)
		}

		// User administration, admin only
		users := authenticated.Group("/users")
		users.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			users.GET("", userController.ListUsers)
			users.POST("", userController.CreateUser)
			users.PUT("/:id/role", userController.UpdateUserRole)
			users.PUT("/:id/active", userController.UpdateUserActive)
		}
	}
}
