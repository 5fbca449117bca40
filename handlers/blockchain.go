package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gurmukh6912/saskfood-connect/authz"
	"github.com/gurmukh6912/saskfood-connect/blockchain"
	"github.com/gurmukh6912/saskfood-connect/config"
	"github.com/gurmukh6912/saskfood-connect/models"

	"github.com/gin-gonic/gin"
)

// ReceiptWaiter blocks until a payment transaction is confirmed
type ReceiptWaiter interface {
	WaitForReceipt(ctx context.Context, txHash string) error
}

// ChainClient is the payment confirmation collaborator, set at startup
var ChainClient ReceiptWaiter

type ConfirmPaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	// Amount is accepted for client compatibility but never checked
	// against the order total; the on-chain escrow holds the funds.
	Amount float64 `json:"amount"`
	TxHash string  `json:"tx_hash" binding:"required"`
}

// ConfirmOrderPayment waits for the escrow transaction to reach confirmation
// depth, then marks the order PAID. Payment confirmation does not advance
// fulfillment: the order stays PENDING. On any failure the order is left
// unchanged.
func ConfirmOrderPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ChainClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Blockchain payments are not configured"})
		return
	}

	var order models.Order
	err := config.DB.
		Preload("Restaurant").
		Preload("Customer").
		Preload("Delivery.Driver").
		First(&order, "id = ?", req.OrderID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !authz.CanAccessOrder(actorFrom(c), &order) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := ChainClient.WaitForReceipt(c.Request.Context(), req.TxHash); err != nil {
		log.Printf("blockchain payment %s: %v", req.TxHash, err)
		if errors.Is(err, blockchain.ErrTransactionReverted) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment failed: transaction reverted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process blockchain payment"})
		return
	}

	err = config.DB.Model(&order).Updates(map[string]interface{}{
		"payment_status":     models.PaymentPaid,
		"blockchain_tx_hash": req.TxHash,
		"status":             models.StatusPending,
	}).Error
	if err != nil {
		log.Printf("blockchain payment %s: update order: %v", req.TxHash, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process blockchain payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tx_hash": req.TxHash,
	})
}
