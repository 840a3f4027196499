package services

import (
	"fmt"

	"gorm.io/gorm"

	"staybook-backend/models"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type ReportFilter struct {
	MinRating *float64
	MaxRating *float64
	Country   string
	City      string
}

// ListingReportRow aggregates reviews per listing through its bookings.
// AverageRating is nil for listings without reviews.
type ListingReportRow struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Country       string   `json:"country"`
	City          string   `json:"city"`
	Price         float64  `json:"price"`
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
}

func (s *ReportService) ReportListings(f ReportFilter) ([]ListingReportRow, error) {
	q := s.DB.Model(&models.Listing{}).
		Select("listings.id, listings.title, listings.country, listings.city, listings.price, " +
			"AVG(reviews.rating) AS average_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN bookings ON bookings.listing_id = listings.id").
		Joins("LEFT JOIN reviews ON reviews.stay_id = bookings.id").
		Group("listings.id, listings.title, listings.country, listings.city, listings.price").
		Order("listings.id")

	if f.Country != "" {
		q = q.Where("listings.country = ?", f.Country)
	}
	if f.City != "" {
		q = q.Where("listings.city = ?", f.City)
	}
	if f.MinRating != nil {
		q = q.Having("AVG(reviews.rating) >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		q = q.Having("AVG(reviews.rating) <= ?", *f.MaxRating)
	}

	var rows []ListingReportRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to build listing report: %w", err)
	}
	return rows, nil
}
