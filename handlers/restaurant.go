package handlers

import (
	"log"
	"net/http"

	"github.com/gurmukh6912/saskfood-connect/authz"
	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/middleware"
	"github.com/gurmukh6912/saskfood-connect/models"

	"github.com/gin-gonic/gin"
)

// GetMyRestaurant returns the caller's restaurant with its menu
func GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").Where("user_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

type UpdateRestaurantRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Cuisine      models.StringList   `json:"cuisine"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	PostalCode   string              `json:"postal_code"`
	Phone        string              `json:"phone"`
	Image        string              `json:"image"`
	MinimumOrder *float64            `json:"minimum_order"`
	DeliveryFee  *float64            `json:"delivery_fee"`
	IsOpen       *bool               `json:"is_open"`
	OpeningHours models.OpeningHours `json:"opening_hours"`
}

// UpdateRestaurant updates the caller's restaurant profile
func UpdateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	// Redundant after the user_id lookup above; kept so the ownership
	// rule lives in authz even if the query changes.
	if !authz.CanEditRestaurant(actorFrom(c), &restaurant) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Cuisine != nil {
		updates["cuisine"] = req.Cuisine
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.PostalCode != "" {
		updates["postal_code"] = req.PostalCode
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.MinimumOrder != nil {
		updates["minimum_order"] = *req.MinimumOrder
	}
	if req.DeliveryFee != nil {
		updates["delivery_fee"] = *req.DeliveryFee
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}
	if req.OpeningHours != nil {
		updates["opening_hours"] = req.OpeningHours
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&restaurant).Updates(updates).Error; err != nil {
			log.Printf("update restaurant: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

// AddMenuItem creates a menu item on the caller's restaurant
func AddMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		Category:     req.Category,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := config.DB.Create(&item).Error; err != nil {
		log.Printf("add menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "menu_item": item})
}

type UpdateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	IsAvailable *bool    `json:"is_available"`
}

// loadOwnedMenuItem fetches the item and checks the caller owns its restaurant
func loadOwnedMenuItem(c *gin.Context) (*models.MenuItem, *models.Restaurant, bool) {
	itemID := c.Param("id")

	var item models.MenuItem
	if err := config.DB.First(&item, "id = ?", itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return nil, nil, false
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", item.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return nil, nil, false
	}

	if !authz.CanManageMenuItem(actorFrom(c), &restaurant) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, nil, false
	}

	return &item, &restaurant, true
}

// UpdateMenuItem updates a menu item, ownership-checked
func UpdateMenuItem(c *gin.Context) {
	item, _, ok := loadOwnedMenuItem(c)
	if !ok {
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := config.DB.Model(item).Updates(updates).Error; err != nil {
			log.Printf("update menu item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "menu_item": item})
}

// DeleteMenuItem removes a menu item, ownership-checked
func DeleteMenuItem(c *gin.Context) {
	item, _, ok := loadOwnedMenuItem(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(item).Error; err != nil {
		log.Printf("delete menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "menu_item_id": item.ID})
}
