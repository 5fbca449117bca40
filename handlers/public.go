package handlers

import (
	"net/http"

	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/models"
	"github.com/gurmukh6912/saskfood-connect/orderflow"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns restaurants, optionally filtered (public)
func ListRestaurants(c *gin.Context) {
	query := config.DB.Model(&models.Restaurant{})

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	var restaurants []models.Restaurant
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant (public)
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns a restaurant's available menu items (public)
func GetMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	config.DB.Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).
		Order("category, name").
		Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetOrderStatuses documents the status vocabulary and the intended
// fulfillment sequence. Informational only — the API does not enforce it.
func GetOrderStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"happy_path": orderflow.HappyPath(),
		"terminal":   orderflow.Terminal(),
	})
}
