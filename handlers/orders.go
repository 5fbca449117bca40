package handlers

import (
	"log"
	"math"
	"net/http"

	"github.com/gurmukh6912/saskfood-connect/authz"
	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/middleware"
	"github.com/gurmukh6912/saskfood-connect/models"
	"github.com/gurmukh6912/saskfood-connect/orderflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaxRate is applied to the subtotal at order creation. The server always
// computes tax itself and never trusts a client-supplied figure.
const TaxRate = 0.05

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type CreateOrderRequest struct {
	RestaurantID    string `json:"restaurant_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address"`
	Items           []struct {
		MenuItemID string `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder places a new order (customer only). Totals are computed once
// here and never recomputed on later mutations.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := config.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	var orderItems []models.OrderItem
	var subtotal float64

	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, "id = ?", reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found: " + reqItem.MenuItemID})
			return
		}
		if menuItem.RestaurantID != restaurant.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		subtotal += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
		})
	}

	address := req.DeliveryAddress
	if address == "" {
		address = customer.DefaultAddress
	}

	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * TaxRate)
	total := roundCents(subtotal + restaurant.DeliveryFee + tax)

	order := models.Order{
		CustomerID:      customer.ID,
		RestaurantID:    restaurant.ID,
		DeliveryAddress: address,
		Subtotal:        subtotal,
		DeliveryFee:     restaurant.DeliveryFee,
		Tax:             tax,
		Total:           total,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
		Items:           orderItems,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  models.StatusPending,
			Note:    "Order placed",
		}).Error
	})
	if err != nil {
		log.Printf("create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	config.DB.Preload("Items.MenuItem").Preload("Restaurant").Preload("StatusHistory").
		First(&order, "id = ?", order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns orders scoped by the caller's role: customers see their
// own, owners see their restaurant's, drivers see orders they deliver.
func ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	query := config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Preload("Customer.User.Profile").Preload("Delivery.Driver.User.Profile")

	switch role {
	case models.RoleCustomer:
		var customer models.Customer
		if err := config.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		query = query.Where("customer_id = ?", customer.ID)
	case models.RoleRestaurantOwner:
		var restaurant models.Restaurant
		if err := config.DB.Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		query = query.Where("restaurant_id = ?", restaurant.ID)
	case models.RoleDriver:
		var driver models.Driver
		if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		query = query.Joins("JOIN deliveries ON deliveries.order_id = orders.id").
			Where("deliveries.driver_id = ?", driver.ID)
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("orders.status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("orders.created_at desc").Find(&orders).Error; err != nil {
		log.Printf("list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order with items, parties, delivery and full history
func GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	var order models.Order
	err := config.DB.
		Preload("Items.MenuItem").
		Preload("Restaurant").
		Preload("Customer.User.Profile").
		Preload("Delivery.Driver.User.Profile").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_histories.created_at asc")
		}).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !authz.CanAccessOrder(actorFrom(c), &order) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus sets the order status and appends a history entry. The
// status only has to be a known value; no successor check is made, so any
// authorized actor may set any status.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !orderflow.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status: " + string(req.Status)})
		return
	}

	var order models.Order
	err := config.DB.
		Preload("Restaurant").
		Preload("Customer").
		Preload("Delivery.Driver").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !authz.CanAccessOrder(actorFrom(c), &order) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  req.Status,
			Note:    req.Note,
		}).Error
	})
	if err != nil {
		log.Printf("update order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order status updated",
		"order_id": order.ID,
		"status":   req.Status,
	})
}
