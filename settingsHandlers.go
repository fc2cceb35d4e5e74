package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proofpay/proofpay_backend/models"
	"github.com/proofpay/proofpay_backend/utils"
)

// Settings PUT handlers answer the boolean contract: {"success": true/false}
// with 200 either way. A store failure leaks no detail to the console.

func getConfidenceThresholdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"confidence_threshold": models.GetConfidenceThreshold(c.Request.Context()),
		})
	}
}

type setThresholdRequest struct {
	Threshold *int `json:"threshold" binding:"required"`
}

func setConfidenceThresholdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setThresholdRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		ok := models.SetConfidenceThreshold(c.Request.Context(), *req.Threshold)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func getReceiptsEnabledHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"receipts_enabled": models.IsReceiptsEnabled(c.Request.Context()),
		})
	}
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func setReceiptsEnabledHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setEnabledRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		ok := models.SetReceiptsEnabled(c.Request.Context(), *req.Enabled)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func getQRSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.GetAllQRSettings(c.Request.Context()))
	}
}

type setQRSettingsRequest struct {
	EnableQRVerification *bool `json:"enable_qr_verification"`
	QRSingleUseEnabled   *bool `json:"qr_single_use_enabled"`
	// Distinguishes "set to null" from "leave alone": the field must be
	// present to clear the expiry.
	QRTokenExpiryMinutes *int `json:"qr_token_expiry_minutes"`
	SetExpiry            bool `json:"set_expiry"`
}

func setQRSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var req setQRSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		ok := true
		if req.EnableQRVerification != nil {
			ok = models.SetQRVerificationEnabled(ctx, *req.EnableQRVerification) && ok
		}
		if req.QRSingleUseEnabled != nil {
			ok = models.SetQRSingleUseEnabled(ctx, *req.QRSingleUseEnabled) && ok
		}
		if req.SetExpiry || req.QRTokenExpiryMinutes != nil {
			stored, err := models.SetQRTokenExpiryMinutes(ctx, req.QRTokenExpiryMinutes)
			if err != nil {
				if errors.Is(err, utils.ErrorInvalidInput) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "qr_token_expiry_minutes must be 5, 15, 60 or null"})
					return
				}
				respondError(c, err)
				return
			}
			ok = stored && ok
		}
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func getRetentionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"retention_days": models.GetRetentionDays(c.Request.Context()),
		})
	}
}

type setRetentionRequest struct {
	Days *int `json:"days" binding:"required"`
}

func setRetentionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setRetentionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		ok := models.SetRetentionDays(c.Request.Context(), *req.Days)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func listEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := models.ListRecentEvents(c.Request.Context(), 0)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}
