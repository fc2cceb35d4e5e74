package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/proofpay/proofpay_backend/models"
)

type receiptResponse struct {
	*models.Receipt
	ConfidenceReasonLabels []string `json:"confidence_reason_labels"`
}

func toReceiptResponse(receipt *models.Receipt) receiptResponse {
	return receiptResponse{
		Receipt:                receipt,
		ConfidenceReasonLabels: models.FormatConfidenceReasons(receipt.ConfidenceReasons),
	}
}

// listReceiptsHandler returns the receipt feed. When the receipts surface is
// switched off the whole endpoint presents as unavailable, with no hint that
// a toggle exists.
func listReceiptsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !models.IsReceiptsEnabled(ctx) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		limit := 0
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
				return
			}
			limit = n
		}

		receipts, err := models.ListReceipts(ctx, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		threshold := models.GetConfidenceThreshold(ctx)
		visible := make([]receiptResponse, 0, len(receipts))
		for _, receipt := range receipts {
			// Below-threshold receipts are hidden from the feed entirely.
			if models.IsBelowThreshold(ctx, receipt, &threshold) {
				continue
			}
			visible = append(visible, toReceiptResponse(receipt))
		}
		c.JSON(http.StatusOK, gin.H{"receipts": visible})
	}
}

// getReceiptHandler serves the receipt detail view. A receipt below the
// confidence threshold answers 404, indistinguishable from a missing row,
// and the block is audited.
func getReceiptHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "receipt.view")
		defer span.End()

		if !models.IsReceiptsEnabled(ctx) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		receipt, err := models.GetReceiptById(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		if models.IsBelowThreshold(ctx, receipt, nil) {
			models.LogEvent(ctx, models.EventTypeReceiptViewBlocked, &receipt.ID, models.JSONMap{
				"confidence_score": receipt.ConfidenceScore,
			})
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		models.LogEvent(ctx, models.EventTypeReceiptViewed, &receipt.ID, nil)
		c.JSON(http.StatusOK, toReceiptResponse(receipt))
	}
}
