package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proofpay/proofpay_backend/models"
	"github.com/proofpay/proofpay_backend/utils"
)

func createShareHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !models.IsReceiptsEnabled(ctx) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		share, err := models.CreateReceiptShare(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, share)
	}
}

// verifyShareHandler is the scan target behind the QR code. An invalid,
// expired or used-up token answers 404 with a verified=false body; the
// audit trail records the real reason.
func verifyShareHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		receipt, share, err := models.VerifyShareToken(ctx, c.Param("token"))
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) || errors.Is(err, utils.ErrorInvalidInput) {
				c.JSON(http.StatusNotFound, gin.H{"verified": false})
				return
			}
			respondError(c, err)
			return
		}

		// Below-threshold receipts verify but mask their contents.
		if models.IsBelowThreshold(ctx, receipt, nil) {
			c.JSON(http.StatusOK, gin.H{
				"verified":   true,
				"masked":     true,
				"receipt_id": receipt.ID,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"verified":   true,
			"masked":     false,
			"receipt":    toReceiptResponse(receipt),
			"view_count": share.ViewCount,
		})
	}
}
