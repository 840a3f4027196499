package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"staybook-backend/models"
	"staybook-backend/utils"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

type CreateListingInput struct {
	Title          string
	NumberOfPeople int
	Country        string
	City           string
	Price          float64
	AvailableFrom  string
	AvailableTo    string
}

func (s *ListingService) CreateListing(hostID uint, in CreateListingInput) (*models.Listing, error) {
	window, err := utils.ParseDateRange(in.AvailableFrom, in.AvailableTo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}

	title := in.Title
	if title == "" {
		title = "."
	}
	people := in.NumberOfPeople
	if people == 0 {
		people = 1
	}

	// A listing with identical attributes counts as a duplicate submission.
	var existing models.Listing
	err = s.DB.Where(
		"user_id = ? AND title = ? AND number_of_people = ? AND country = ? AND city = ? AND price = ? AND available_from = ? AND available_to = ?",
		hostID, title, people, in.Country, in.City, in.Price,
		datatypes.Date(window.From), datatypes.Date(window.To),
	).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateListing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing listing: %w", err)
	}

	listing := &models.Listing{
		UserID:         hostID,
		Title:          title,
		NumberOfPeople: people,
		Country:        in.Country,
		City:           in.City,
		Price:          in.Price,
		AvailableFrom:  datatypes.Date(window.From),
		AvailableTo:    datatypes.Date(window.To),
	}
	if err := s.DB.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// ListingView is the wire shape of one listing in the public list.
type ListingView struct {
	ID               uint     `json:"id"`
	UserID           uint     `json:"user_id"`
	Title            string   `json:"title"`
	NumberOfPeople   int      `json:"numberOfPeople"`
	Country          string   `json:"country"`
	City             string   `json:"city"`
	Price            float64  `json:"price"`
	AvailableFrom    string   `json:"availableFrom"`
	AvailableTo      string   `json:"availableTo"`
	UnavailableDates []string `json:"unavailableDates"`
	AverageRating    float64  `json:"averageRating"`
}

type ListingPage struct {
	Items []ListingView
	Meta  utils.PageMeta
}

// ListListings returns one page of listings, newest first, each carrying its
// committed (unavailable) dates and average rating. Listings whose whole
// window is already booked are omitted from the page.
func (s *ListingService) ListListings(page, perPage int) (*ListingPage, error) {
	var total int64
	if err := s.DB.Model(&models.Listing{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.Listing
	if err := s.DB.
		Order("id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	items := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		window, err := utils.NewDateRange(time.Time(l.AvailableFrom), time.Time(l.AvailableTo))
		if err != nil {
			return nil, fmt.Errorf("listing %d has an invalid availability window: %w", l.ID, err)
		}

		var rows []models.ListingBookedDate
		if err := s.DB.
			Where("listing_id = ?", l.ID).
			Order("booked_date").
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load booked dates for listing %d: %w", l.ID, err)
		}

		if len(rows) == window.Days() {
			continue
		}

		unavailable := make([]string, 0, len(rows))
		for _, row := range rows {
			unavailable = append(unavailable, time.Time(row.BookedDate).Format(utils.DateLayout))
		}

		rating, err := s.averageRating(l.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, ListingView{
			ID:               l.ID,
			UserID:           l.UserID,
			Title:            l.Title,
			NumberOfPeople:   l.NumberOfPeople,
			Country:          l.Country,
			City:             l.City,
			Price:            l.Price,
			AvailableFrom:    window.From.Format(utils.DateLayout),
			AvailableTo:      window.To.Format(utils.DateLayout),
			UnavailableDates: unavailable,
			AverageRating:    rating,
		})
	}

	return &ListingPage{
		Items: items,
		Meta:  utils.NewPageMeta(page, perPage, total),
	}, nil
}

// averageRating aggregates reviews through the bookings of the listing,
// rounded to two decimals; zero when unreviewed.
func (s *ListingService) averageRating(listingID uint) (float64, error) {
	var avg sql.NullFloat64
	if err := s.DB.Model(&models.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.stay_id").
		Where("bookings.listing_id = ?", listingID).
		Select("AVG(reviews.rating)").
		Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("failed to aggregate rating for listing %d: %w", listingID, err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return math.Round(avg.Float64*100) / 100, nil
}
