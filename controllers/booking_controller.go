package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staybook-backend/middleware"
	"staybook-backend/services"
	"staybook-backend/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type insertBookingPayload struct {
	ListingID      *uint   `json:"listing_id"`
	DateFrom       *string `json:"dateFrom"`
	DateTo         *string `json:"dateTo"`
	NamesOfPeople  *string `json:"namesOfPeople"`
	AmountOfPeople *int    `json:"amountOfPeople"`
}

func (ctrl *BookingController) InsertBooking(c *gin.Context) {
	guest, ok := middleware.Principal(c)
	if !ok {
		utils.JSONMessage(c, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	var payload insertBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.ListingID == nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Listing ID is required")
		return
	}
	if payload.DateFrom == nil || payload.DateTo == nil || payload.NamesOfPeople == nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	booking, err := ctrl.Bookings.AdmitBooking(guest.ID, services.AdmitBookingInput{
		ListingID:      *payload.ListingID,
		DateFrom:       *payload.DateFrom,
		DateTo:         *payload.DateTo,
		NamesOfPeople:  *payload.NamesOfPeople,
		AmountOfPeople: payload.AmountOfPeople,
	})
	if err != nil {
		ctrl.respondAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking inserted successfully",
		"booking_id": booking.ID,
	})
}

// respondAdmissionError translates the admission taxonomy into HTTP statuses;
// typed errors carry their payload (window, conflicting dates) into the body.
func (ctrl *BookingController) respondAdmissionError(c *gin.Context, err error) {
	var outOfWindow *services.OutOfWindowError
	var unavailable *services.DatesUnavailableError

	switch {
	case errors.Is(err, services.ErrMalformedDate):
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	case errors.Is(err, services.ErrListingNotFound):
		utils.JSONMessage(c, http.StatusBadRequest, "Listing does not exist")
	case errors.As(err, &outOfWindow):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "Selected dates are outside the listing availability window",
			"availableFrom": outOfWindow.Window.From.Format(utils.DateLayout),
			"availableTo":   outOfWindow.Window.To.Format(utils.DateLayout),
		})
	case errors.As(err, &unavailable):
		dates := make([]string, 0, len(unavailable.Dates))
		for _, d := range unavailable.Dates {
			dates = append(dates, d.Format(utils.DateLayout))
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message":          "Selected dates are not available",
			"unavailableDates": dates,
		})
	case errors.Is(err, services.ErrDateConflict):
		utils.JSONMessage(c, http.StatusBadRequest, "Booking already exists on selected dates")
	default:
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to create booking")
	}
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.JSONMessage(c, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	views, err := ctrl.Bookings.BookingsForPrincipal(user)
	if err != nil {
		utils.JSONMessage(c, http.StatusInternalServerError, "Failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}
