package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proofpay/proofpay_backend/config"
	"github.com/proofpay/proofpay_backend/models"
)

// simulatePurchaseHandler is the storefront demo's checkout hook. It mints a
// fake payment and ingests the resulting receipt.
func simulatePurchaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.DemoEndpointsEnabled() {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
			return
		}

		var input models.SimulatePurchaseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		receipt, orderId, err := models.CreateSimulatedReceipt(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_id":   orderId,
			"payment_id": receipt.PaymentId,
			"receipt":    toReceiptResponse(receipt),
		})
	}
}
