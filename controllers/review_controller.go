package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staybook-backend/middleware"
	"staybook-backend/services"
	"staybook-backend/utils"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

type insertReviewPayload struct {
	StayID  *uint   `json:"stay_id"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (ctrl *ReviewController) InsertReview(c *gin.Context) {
	guest, ok := middleware.Principal(c)
	if !ok {
		utils.JSONMessage(c, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	var payload insertReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.StayID == nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Stay ID is required")
		return
	}
	if payload.Rating == nil || payload.Comment == nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	_, err := ctrl.Reviews.CreateReview(guest.ID, *payload.StayID, *payload.Rating, *payload.Comment)
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONMessage(c, http.StatusBadRequest, "Booking does not exist")
		return
	case errors.Is(err, services.ErrDuplicateReview):
		utils.JSONMessage(c, http.StatusBadRequest, "Review already exists for this stay")
		return
	case errors.Is(err, services.ErrInvalidRating):
		utils.JSONMessage(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	case err != nil:
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "Review inserted successfully")
}
