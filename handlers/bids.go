package handlers

import (
	"log"
	"net/http"

	"github.com/gurmukh6912/saskfood-connect/authz"
	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/middleware"
	"github.com/gurmukh6912/saskfood-connect/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitBidRequest struct {
	OrderID       string  `json:"order_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	EstimatedTime int     `json:"estimated_time" binding:"required,min=1"`
}

// SubmitBid creates a PENDING delivery bid (driver only). A driver may bid
// more than once on the same order, and may bid on an order that already has
// a driver; callers must not rely on the server preventing either.
func SubmitBid(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var driver models.Driver
	if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	bid := models.DeliveryBid{
		OrderID:       order.ID,
		DriverID:      driver.ID,
		Amount:        req.Amount,
		EstimatedTime: req.EstimatedTime,
		Status:        models.BidPending,
	}
	if err := config.DB.Create(&bid).Error; err != nil {
		log.Printf("submit bid: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery bid"})
		return
	}

	config.DB.Preload("Order").Preload("Driver.User.Profile").First(&bid, "id = ?", bid.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bid submitted",
		"bid":     bid,
	})
}

// ListBids returns bids scoped by caller: a driver sees their own bids, a
// restaurant owner sees bids on their restaurant's orders. Optional orderId
// filter.
func ListBids(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	query := config.DB.Preload("Order").Preload("Driver.User.Profile")

	switch role {
	case models.RoleDriver:
		var driver models.Driver
		if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		query = query.Where("driver_id = ?", driver.ID)
	case models.RoleRestaurantOwner:
		var restaurant models.Restaurant
		if err := config.DB.Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		query = query.Joins("JOIN orders ON orders.id = delivery_bids.order_id").
			Where("orders.restaurant_id = ?", restaurant.ID)
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if orderID := c.Query("orderId"); orderID != "" {
		query = query.Where("delivery_bids.order_id = ?", orderID)
	}

	var bids []models.DeliveryBid
	if err := query.Order("delivery_bids.created_at desc").Find(&bids).Error; err != nil {
		log.Printf("list bids: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bids"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(bids), "bids": bids})
}

type DecideBidRequest struct {
	Status models.BidStatus `json:"status" binding:"required"`
}

// DecideBid accepts or rejects a delivery bid. Acceptance atomically updates
// the bid, creates the Delivery, and moves the order to DRIVER_ASSIGNED with
// a history entry — all three writes commit or none do. Rejection touches
// only the bid row.
func DecideBid(c *gin.Context) {
	bidID := c.Param("id")

	var req DecideBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.BidAccepted && req.Status != models.BidRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be ACCEPTED or REJECTED"})
		return
	}

	var bid models.DeliveryBid
	err := config.DB.
		Preload("Order.Restaurant").
		Preload("Driver.User.Profile").
		First(&bid, "id = ?", bidID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery bid not found"})
		return
	}

	if !authz.CanDecideBid(actorFrom(c), &bid) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if req.Status == models.BidRejected {
		if err := config.DB.Model(&bid).Update("status", models.BidRejected).Error; err != nil {
			log.Printf("reject bid: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery bid"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bid rejected", "bid": bid})
		return
	}

	driverName := ""
	if bid.Driver != nil && bid.Driver.User != nil && bid.Driver.User.Profile != nil {
		driverName = bid.Driver.User.Profile.FirstName + " " + bid.Driver.User.Profile.LastName
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bid).Update("status", models.BidAccepted).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Delivery{
			OrderID:  bid.OrderID,
			DriverID: bid.DriverID,
			Status:   models.DeliveryPending,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", bid.OrderID).
			Update("status", models.StatusDriverAssigned).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID: bid.OrderID,
			Status:  models.StatusDriverAssigned,
			Note:    "Driver " + driverName + " assigned",
		}).Error
	})
	if err != nil {
		log.Printf("accept bid: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery bid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bid accepted", "bid": bid})
}
