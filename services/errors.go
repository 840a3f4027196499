package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"staybook-backend/utils"
)

var (
	ErrEmailTaken         = errors.New("users: email already registered")
	ErrUnknownRole        = errors.New("users: unknown role")
	ErrInvalidCredentials = errors.New("users: invalid password")
	ErrUserNotFound       = errors.New("users: user not found")
	ErrForbidden          = errors.New("users: insufficient permissions")

	ErrListingNotFound  = errors.New("listings: listing not found")
	ErrDuplicateListing = errors.New("listings: listing already exists")

	ErrMalformedDate   = errors.New("bookings: malformed date")
	ErrDateConflict    = errors.New("bookings: booking already exists on selected dates")
	ErrBookingNotFound = errors.New("reviews: booking does not exist")
	ErrDuplicateReview = errors.New("reviews: review already exists for this stay")
	ErrInvalidRating   = errors.New("reviews: rating must be between 1 and 5")
)

// OutOfWindowError rejects a range that falls outside the listing's
// availability window; the window travels with the error for client display.
type OutOfWindowError struct {
	Window utils.DateRange
}

func (e *OutOfWindowError) Error() string {
	return fmt.Sprintf("bookings: requested range outside availability window %s", e.Window)
}

// DatesUnavailableError rejects a range of which some dates are already in the
// ledger; the conflicting dates travel with the error.
type DatesUnavailableError struct {
	Dates []time.Time
}

func (e *DatesUnavailableError) Error() string {
	days := make([]string, 0, len(e.Dates))
	for _, d := range e.Dates {
		days = append(days, d.Format(utils.DateLayout))
	}
	return "bookings: dates not available: " + strings.Join(days, ", ")
}
