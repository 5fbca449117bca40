package routes

import (
	"github.com/gurmukh6912/saskfood-connect/handlers"
	"github.com/gurmukh6912/saskfood-connect/middleware"
	"github.com/gurmukh6912/saskfood-connect/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		public.GET("/order-statuses", handlers.GetOrderStatuses)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)

		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id", handlers.UpdateOrderStatus)

		auth.GET("/delivery-bids", handlers.ListBids)
		auth.PUT("/delivery-bids/:id", handlers.DecideBid)

		auth.POST("/blockchain/order", handlers.ConfirmOrderPayment)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.CreateOrder)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.POST("/delivery-bids", handlers.SubmitBid)
		driver.GET("/driver", handlers.GetMyDriver)
		driver.PUT("/driver", handlers.UpdateDriver)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurantOwner))
	{
		owner.GET("/restaurant", handlers.GetMyRestaurant)
		owner.PUT("/restaurant", handlers.UpdateRestaurant)

		owner.POST("/menu-items", handlers.AddMenuItem)
		owner.PUT("/menu-items/:id", handlers.UpdateMenuItem)
		owner.DELETE("/menu-items/:id", handlers.DeleteMenuItem)
	}
}
