package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staybook-backend/services"
	"staybook-backend/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func (ctrl *ReportController) ReportListings(c *gin.Context) {
	var filter services.ReportFilter

	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.JSONMessage(c, http.StatusBadRequest, "min_rating must be a number")
			return
		}
		filter.MinRating = &v
	}
	if raw := c.Query("max_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.JSONMessage(c, http.StatusBadRequest, "max_rating must be a number")
			return
		}
		filter.MaxRating = &v
	}
	filter.Country = c.Query("country")
	filter.City = c.Query("city")

	rows, err := ctrl.Reports.ReportListings(filter)
	if err != nil {
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	data := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		rating := any("No reviews")
		if row.AverageRating != nil {
			rating = *row.AverageRating
		}
		data = append(data, gin.H{
			"id":             row.ID,
			"title":          row.Title,
			"country":        row.Country,
			"city":           row.City,
			"price":          row.Price,
			"average_rating": rating,
			"review_count":   row.ReviewCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report generated successfully",
		"data":    data,
	})
}
