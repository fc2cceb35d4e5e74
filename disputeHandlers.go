package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/proofpay/proofpay_backend/models"
	"github.com/proofpay/proofpay_backend/utils"
)

type createDisputeRequest struct {
	Items  []models.DisputeItemSelection `json:"items" binding:"required,min=1,dive"`
	Reason string                        `json:"reason" binding:"required"`
	Notes  string                        `json:"notes"`
}

func createDisputeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !models.IsReceiptsEnabled(ctx) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		var req createDisputeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if fields := utils.ProcessValidationErrors(err); fields != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": fields})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		dispute, err := models.CreateDispute(ctx, c.Param("id"), req.Items, models.DisputeReason(req.Reason), req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dispute)
	}
}

func listDisputesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var status *models.DisputeStatus
		if v := c.Query("status"); v != "" {
			s := models.DisputeStatus(v)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
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

		disputes, err := models.ListDisputes(ctx, status, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"disputes": disputes})
	}
}

type updateDisputeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateDisputeStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateDisputeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		dispute, err := models.UpdateDisputeStatus(c.Request.Context(), c.Param("id"), models.DisputeStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dispute)
	}
}
