package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proofpay/proofpay_backend/models"
	"github.com/xuri/excelize/v2"
)

func usageSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := models.GetUsageSummary(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// usageExportHandler renders the usage summary as a spreadsheet for the
// bank's reporting workflow.
func usageExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := models.GetUsageSummary(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		f := excelize.NewFile()
		sheet := "Sheet1"
		if _, err := f.NewSheet(sheet); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Add headers
		f.SetCellValue(sheet, "A1", "Metric")
		f.SetCellValue(sheet, "B1", "Value")

		// Add data
		row := 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Total Receipts")
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), summary.TotalReceipts)
		row++
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Total Disputed (cents)")
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), summary.TotalDisputedCents)
		row++
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Confidence Threshold")
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), summary.ConfidenceThreshold)
		row++
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Receipts Enabled")
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), summary.ReceiptsEnabled)
		row++
		for eventType, count := range summary.EventCounts {
			f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Events: "+string(eventType))
			f.SetCellValue(sheet, "B"+fmt.Sprint(row), count)
			row++
		}
		for status, count := range summary.DisputeCounts {
			f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Disputes: "+string(status))
			f.SetCellValue(sheet, "B"+fmt.Sprint(row), count)
			row++
		}

		filename := fmt.Sprintf("usage-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write file"})
		}
	}
}
