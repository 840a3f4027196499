package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"staybook-backend/middleware"
	"staybook-backend/services"
	"staybook-backend/utils"
)

type ListingController struct {
	Listings *services.ListingService
}

func NewListingController(listings *services.ListingService) *ListingController {
	return &ListingController{Listings: listings}
}

// Pointer fields so absent keys can be told apart from zero values when
// reporting which fields are missing.
type insertListingPayload struct {
	Title          string   `json:"title"`
	NumberOfPeople *int     `json:"numberOfPeople"`
	Country        *string  `json:"country"`
	City           *string  `json:"city"`
	Price          *float64 `json:"price"`
	AvailableFrom  *string  `json:"availableFrom"`
	AvailableTo    *string  `json:"availableTo"`
}

func (p *insertListingPayload) missingFields() []string {
	var missing []string
	if p.NumberOfPeople == nil {
		missing = append(missing, "numberOfPeople")
	}
	if p.Country == nil {
		missing = append(missing, "country")
	}
	if p.City == nil {
		missing = append(missing, "city")
	}
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if p.AvailableFrom == nil {
		missing = append(missing, "availableFrom")
	}
	if p.AvailableTo == nil {
		missing = append(missing, "availableTo")
	}
	return missing
}

func (ctrl *ListingController) InsertListing(c *gin.Context) {
	host, ok := middleware.Principal(c)
	if !ok {
		utils.JSONMessage(c, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	var payload insertListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if missing := payload.missingFields(); len(missing) > 0 {
		utils.JSONMessage(c, http.StatusBadRequest,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ",")))
		return
	}

	listing, err := ctrl.Listings.CreateListing(host.ID, services.CreateListingInput{
		Title:          payload.Title,
		NumberOfPeople: *payload.NumberOfPeople,
		Country:        *payload.Country,
		City:           *payload.City,
		Price:          *payload.Price,
		AvailableFrom:  *payload.AvailableFrom,
		AvailableTo:    *payload.AvailableTo,
	})
	switch {
	case errors.Is(err, services.ErrMalformedDate):
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	case errors.Is(err, services.ErrDuplicateListing):
		utils.JSONMessage(c, http.StatusBadRequest, "Listing already exists")
		return
	case err != nil:
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Listing inserted successfully",
		"listing_id": listing.ID,
	})
}

func (ctrl *ListingController) GetListings(c *gin.Context) {
	page, err := intQuery(c, "page", services.DefaultPage)
	if err != nil || page < 1 {
		utils.JSONMessage(c, http.StatusBadRequest, "Page number must be 1 or greater.")
		return
	}
	perPage, err := intQuery(c, "per_page", services.DefaultPerPage)
	if err != nil || perPage < 1 || perPage > services.MaxPerPage {
		utils.JSONMessage(c, http.StatusBadRequest,
			fmt.Sprintf("per_page must be between 1 and %d.", services.MaxPerPage))
		return
	}

	result, err := ctrl.Listings.ListListings(page, perPage)
	if err != nil {
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to load listings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.Items, "meta": result.Meta})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
