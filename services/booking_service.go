package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"staybook-backend/models"
	"staybook-backend/utils"
)

// BookingService is the admission engine: it decides whether a requested range
// may be booked and keeps the per-date ledger consistent with accepted
// bookings.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type AdmitBookingInput struct {
	ListingID      uint
	DateFrom       string
	DateTo         string
	NamesOfPeople  string
	AmountOfPeople *int
}

// AdmitBooking validates the requested range against the listing's
// availability window, the booked-date ledger and the existing bookings, then
// persists the booking row and one ledger row per date as a single
// transaction. Read-time checks fail fast; the composite primary key on
// (listing_id, booked_date) is what actually decides a race between two
// concurrent requests: the loser's transaction rolls back in full and the
// caller sees ErrDateConflict.
func (s *BookingService) AdmitBooking(guestID uint, in AdmitBookingInput) (*models.Booking, error) {
	requested, err := utils.ParseDateRange(in.DateFrom, in.DateTo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}

	var listing models.Listing
	if err := s.DB.First(&listing, in.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing %d: %w", in.ListingID, err)
	}

	window, err := utils.NewDateRange(time.Time(listing.AvailableFrom), time.Time(listing.AvailableTo))
	if err != nil {
		return nil, fmt.Errorf("listing %d has an invalid availability window: %w", listing.ID, err)
	}
	if !requested.Within(window) {
		return nil, &OutOfWindowError{Window: window}
	}

	booked, err := s.DatesBookedWithin(listing.ID, requested)
	if err != nil {
		return nil, err
	}
	if len(booked) > 0 {
		return nil, &DatesUnavailableError{Dates: booked}
	}

	var existing []models.Booking
	if err := s.DB.Where("listing_id = ?", listing.ID).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings for listing %d: %w", listing.ID, err)
	}
	for _, b := range existing {
		r, err := utils.NewDateRange(time.Time(b.DateFrom), time.Time(b.DateTo))
		if err != nil {
			return nil, fmt.Errorf("booking %d has an invalid range: %w", b.ID, err)
		}
		if r.Overlaps(requested) {
			return nil, ErrDateConflict
		}
	}

	amount := in.AmountOfPeople
	if amount == nil {
		one := 1
		amount = &one
	}

	booking := &models.Booking{
		ListingID:      listing.ID,
		IssuerGuestID:  guestID,
		DateFrom:       datatypes.Date(requested.From),
		DateTo:         datatypes.Date(requested.To),
		NamesOfPeople:  in.NamesOfPeople,
		AmountOfPeople: amount,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return commitLedger(tx, listing.ID, requested)
	})
	if txErr != nil {
		if isDuplicateKey(txErr) {
			return nil, ErrDateConflict
		}
		return nil, txErr
	}

	return booking, nil
}

// DatesBookedWithin returns the subset of the range already committed in the
// ledger for the listing, ascending.
func (s *BookingService) DatesBookedWithin(listingID uint, r utils.DateRange) ([]time.Time, error) {
	var rows []models.ListingBookedDate
	if err := s.DB.
		Where("listing_id = ? AND booked_date BETWEEN ? AND ?",
			listingID, datatypes.Date(r.From), datatypes.Date(r.To)).
		Order("booked_date").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query booked dates for listing %d: %w", listingID, err)
	}

	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, time.Time(row.BookedDate))
	}
	return out, nil
}

// BookedDates returns every committed date of a listing, ascending.
func (s *BookingService) BookedDates(listingID uint) ([]time.Time, error) {
	var rows []models.ListingBookedDate
	if err := s.DB.
		Where("listing_id = ?", listingID).
		Order("booked_date").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query booked dates for listing %d: %w", listingID, err)
	}

	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, time.Time(row.BookedDate))
	}
	return out, nil
}

// BookingView is the wire shape of a booking.
type BookingView struct {
	ID             uint   `json:"id"`
	ListingID      uint   `json:"listing_id"`
	IssuerGuestID  uint   `json:"issuer_guest_id"`
	DateFrom       string `json:"dateFrom"`
	DateTo         string `json:"dateTo"`
	NamesOfPeople  string `json:"namesOfPeople"`
	AmountOfPeople *int   `json:"amountOfPeople,omitempty"`
}

// BookingsForPrincipal lists bookings visible to the principal: hosts see the
// bookings placed on their listings, everyone else sees the bookings they
// issued.
func (s *BookingService) BookingsForPrincipal(user *models.User) ([]BookingView, error) {
	q := s.DB.Model(&models.Booking{}).Order("bookings.id DESC")
	if user.Role == models.RoleHost {
		q = q.Joins("JOIN listings ON listings.id = bookings.listing_id").
			Where("listings.user_id = ?", user.ID)
	} else {
		q = q.Where("bookings.issuer_guest_id = ?", user.ID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, BookingView{
			ID:             b.ID,
			ListingID:      b.ListingID,
			IssuerGuestID:  b.IssuerGuestID,
			DateFrom:       time.Time(b.DateFrom).Format(utils.DateLayout),
			DateTo:         time.Time(b.DateTo).Format(utils.DateLayout),
			NamesOfPeople:  b.NamesOfPeople,
			AmountOfPeople: b.AmountOfPeople,
		})
	}
	return views, nil
}

// commitLedger inserts one ledger row per date of the range inside the
// caller's transaction. A date committed by a concurrent admission violates
// the composite primary key and fails the whole transaction.
func commitLedger(tx *gorm.DB, listingID uint, r utils.DateRange) error {
	dates := r.Dates()
	rows := make([]models.ListingBookedDate, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.ListingBookedDate{
			ListingID:  listingID,
			BookedDate: datatypes.Date(d),
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to commit booked dates: %w", err)
	}
	return nil
}

// isDuplicateKey classifies uniqueness violations across drivers: MySQL error
// 1062 in production, string matching for the sqlite driver used in tests.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
