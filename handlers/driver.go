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

// GetMyDriver returns the caller's driver record with vehicle
func GetMyDriver(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var driver models.Driver
	if err := config.DB.Preload("Vehicle").Preload("User.Profile").
		Where("user_id = ?", userID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

type UpdateDriverRequest struct {
	IsOnline   *bool    `json:"is_online"`
	CurrentLat *float64 `json:"current_lat"`
	CurrentLng *float64 `json:"current_lng"`
	Vehicle    *struct {
		Type         models.VehicleType `json:"type"`
		Make         string             `json:"make"`
		Model        string             `json:"model"`
		Year         int                `json:"year"`
		LicensePlate string             `json:"license_plate"`
	} `json:"vehicle"`
}

// UpdateDriver updates the caller's availability, location and vehicle
func UpdateDriver(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var driver models.Driver
	if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	// Redundant after the user_id lookup above; kept so the ownership
	// rule lives in authz even if the query changes.
	if !authz.CanEditDriver(actorFrom(c), &driver) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.IsOnline != nil {
		updates["is_online"] = *req.IsOnline
	}
	if req.CurrentLat != nil {
		updates["current_lat"] = *req.CurrentLat
	}
	if req.CurrentLng != nil {
		updates["current_lng"] = *req.CurrentLng
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&driver).Updates(updates).Error; err != nil {
			log.Printf("update driver: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
			return
		}
	}

	if req.Vehicle != nil {
		var vehicle models.Vehicle
		err := config.DB.Where("driver_id = ?", driver.ID).First(&vehicle).Error
		if err != nil {
			vehicle = models.Vehicle{DriverID: driver.ID}
		}
		vehicle.Type = req.Vehicle.Type
		vehicle.Make = req.Vehicle.Make
		vehicle.Model = req.Vehicle.Model
		vehicle.Year = req.Vehicle.Year
		vehicle.LicensePlate = req.Vehicle.LicensePlate
		if err := config.DB.Save(&vehicle).Error; err != nil {
			log.Printf("update driver vehicle: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
			return
		}
	}

	config.DB.Preload("Vehicle").First(&driver, "id = ?", driver.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Driver updated", "driver": driver})
}
