package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/models"
)

func submitBid(t *testing.T, r *gin.Engine, driverToken, orderID string, amount float64, estimatedTime int) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/delivery-bids", driverToken, gin.H{
		"order_id":       orderID,
		"amount":         amount,
		"estimated_time": estimatedTime,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bid := decodeBody(t, rec)["bid"].(map[string]interface{})
	return bid["id"].(string)
}

func TestSubmitBid_CustomerRejected(t *testing.T) {
	r := setupRouter(t)

	_, restaurantID, itemIDs := setupRestaurant(t, r, "owner@example.com", 4.99, 10.00)
	custToken := registerUser(t, r, "customer@example.com", models.RoleCustomer)
	order := placeOrder(t, r, custToken, restaurantID, []gin.H{
		{"menu_item_id": itemIDs[0], "quantity": 1},
	})

	rec := doJSON(t, r, http.MethodPost, "/api/delivery-bids", custToken, gin.H{
		"order_id":       order["id"],
		"amount":         12.50,
		"estimated_time": 30,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAcceptBid_AssignsDriverAtomically(t *testing.T) {
	r := setupRouter(t)

	ownerToken, restaurantID, itemIDs := setupRestaurant(t, r, "owner@example.com", 4.99, 10.00)
	custToken := registerUser(t, r, "customer@example.com", models.RoleCustomer)
	driverToken := registerUser(t, r, "driver@example.com", models.RoleDriver)

	order := placeOrder(t, r, custToken, restaurantID, []gin.H{
		{"menu_item_id": itemIDs[0], "quantity": 1},
	})
	orderID := order["id"].(string)

	bidID := submitBid(t, r, driverToken, orderID, 12.50, 30)

	rec := doJSON(t, r, http.MethodPut, "/api/delivery-bids/"+bidID, ownerToken, gin.H{
		"status": models.BidAccepted,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// bid is ACCEPTED
	var bid models.DeliveryBid
	require.NoError(t, config.DB.First(&bid, "id = ?", bidID).Error)
	require.Equal(t, models.BidAccepted, bid.Status)

	// exactly one delivery exists, PENDING, for the bidding driver
	var deliveries []models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).Find(&deliveries).Error)
	require.Len(t, deliveries, 1)
	require.Equal(t, bid.DriverID, deliveries[0].DriverID)
	require.Equal(t, models.DeliveryPending, deliveries[0].Status)

	// order moved to DRIVER_ASSIGNED with a matching history entry
	var stored models.Order
	require.NoError(t, config.DB.First(&stored, "id = ?", orderID).Error)
	require.Equal(t, models.StatusDriverAssigned, stored.Status)

	var latest models.OrderStatusHistory
	require.NoError(t, config.DB.Where("order_id = ?", orderID).
		Order("created_at desc, id desc").First(&latest).Error)
	require.Equal(t, models.StatusDriverAssigned, latest.Status)
	require.Contains(t, latest.Note, "assigned")
}

func TestRejectBid_TouchesOnlyBid(t *testing.T) {
	r := setupRouter(t)

	ownerToken, restaurantID, itemIDs := setupRestaurant(t, r, "owner@example.com", 4.99, 10.00)
	custToken := registerUser(t, r, "customer@example.com", models.RoleCustomer)
	driverToken := registerUser(t, r, "driver@example.com", models.RoleDriver)
	otherDriverToken := registerUser(t, r, "driver2@example.com", models.RoleDriver)

	order := placeOrder(t, r, custToken, restaurantID, []gin.H{
		{"menu_item_id": itemIDs[0], "quantity": 1},
	})
	orderID := order["id"].(string)

	bidID := submitBid(t, r, driverToken, orderID, 12.50, 30)
	otherBidID := submitBid(t, r, otherDriverToken, orderID, 9.75, 45)

	rec := doJSON(t, r, http.MethodPut, "/api/delivery-bids/"+bidID, ownerToken, gin.H{
		"status": models.BidRejected,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var bid models.DeliveryBid
	require.NoError(t, config.DB.First(&bid, "id = ?", bidID).Error)
	require.Equal(t, models.BidRejected, bid.Status)

	// the other bid is untouched
	var other models.DeliveryBid
	require.NoError(t, config.DB.First(&other, "id = ?", otherBidID).Error)
	require.Equal(t, models.BidPending, other.Status)

	// order unchanged, no delivery created
	var stored models.Order
	require.NoError(t, config.DB.First(&stored, "id = ?", orderID).Error)
	require.Equal(t, models.StatusPending, stored.Status)

	var deliveries int64
	config.DB.Model(&models.Delivery{}).Where("order_id = ?", orderID).Count(&deliveries)
	require.EqualValues(t, 0, deliveries)
}

func TestDecideBid_Authorization(t *testing.T) {
	r := setupRouter(t)

	_, restaurantID, itemIDs := setupRestaurant(t, r, "owner@example.com", 4.99, 10.00)
	custToken := registerUser(t, r, "customer@example.com", models.RoleCustomer)
	driverToken := registerUser(t, r, "driver@example.com", models.RoleDriver)
	otherDriverToken := registerUser(t, r, "driver2@example.com", models.RoleDriver)
	otherOwnerToken, _, _ := setupRestaurant(t, r, "owner2@example.com", 2.99, 8.00)

	order := placeOrder(t, r, custToken, restaurantID, []gin.H{
		{"menu_item_id": itemIDs[0], "quantity": 1},
	})
	bidID := submitBid(t, r, driverToken, order["id"].(string), 12.50, 30)

	// customer, unrelated driver, unrelated owner: all unauthorized
	for _, token := range []string{custToken, otherDriverToken, otherOwnerToken} {
		rec := doJSON(t, r, http.MethodPut, "/api/delivery-bids/"+bidID, token, gin.H{
			"status": models.BidAccepted,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// the bidding driver may withdraw their own bid by rejecting it
	rec := doJSON(t, r, http.MethodPut, "/api/delivery-bids/"+bidID, driverToken, gin.H{
		"status": models.BidRejected,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAcceptBid_RollsBackOnFault(t *testing.T) {
	r := setupRouter(t)

	ownerToken, restaurantID, itemIDs := setupRestaurant(t, r, "owner@example.com", 4.99, 10.00)
	custToken := registerUser(t, r, "customer@example.com", models.RoleCustomer)
	driverToken := registerUser(t, r, "driver@example.com", models.RoleDriver)

	order := placeOrder(t, r, custToken, restaurantID, []gin.H{
		{"menu_item_id": itemIDs[0], "quantity": 1},
	})
	orderID := order["id"].(string)
	bidID := submitBid(t, r, driverToken, orderID, 12.50, 30)

	var historyBefore int64
	config.DB.Model(&models.OrderStatusHistory{}).Where("order_id = ?", orderID).Count(&historyBefore)

	// make the delivery insert fail mid-transaction
	require.NoError(t, config.DB.Migrator().DropTable(&models.Delivery{}))

	rec := doJSON(t, r, http.MethodPut, "/api/delivery-bids/"+bidID, ownerToken, gin.H{
		"status": models.BidAccepted,
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// none of the writes are visible: bid still PENDING, order untouched
	var bid models.DeliveryBid
	require.NoError(t, config.DB.First(&bid, "id = ?", bidID).Error)
	require.Equal(t, models.BidPending, bid.Status)

	var stored models.Order
	require.NoError(t, config.DB.First(&stored, "id = ?", orderID).Error)
	require.Equal(t, models.StatusPending, stored.Status)

	var historyAfter int64
	config.DB.Model(&models.OrderStatusHistory{}).Where("order_id = ?", orderID).Count(&historyAfter)
	require.Equal(t, historyBefore, historyAfter)
}

func TestListBids_Scoped(t *testing.T) {
	r := setupRouter(t)

	ownerToken, restaurantID, itemIDs := setupRestaurant(t, r, "owner@example.com", 4.99, 10.00)
	custToken := registerUser(t, r, "customer@example.com", models.RoleCustomer)
	driverToken := registerUser(t, r, "driver@example.com", models.RoleDriver)
	otherDriverToken := registerUser(t, r, "driver2@example.com", models.RoleDriver)

	order := placeOrder(t, r, custToken, restaurantID, []gin.H{
		{"menu_item_id": itemIDs[0], "quantity": 1},
	})
	orderID := order["id"].(string)

	submitBid(t, r, driverToken, orderID, 12.50, 30)
	submitBid(t, r, otherDriverToken, orderID, 10.00, 40)

	// drivers see only their own bids
	rec := doJSON(t, r, http.MethodGet, "/api/delivery-bids", driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decodeBody(t, rec)["count"])

	// the owner sees every bid on their restaurant's orders
	rec = doJSON(t, r, http.MethodGet, "/api/delivery-bids?orderId="+orderID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, decodeBody(t, rec)["count"])
}
