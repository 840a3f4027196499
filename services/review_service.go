package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"staybook-backend/models"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// CreateReview records one review for a completed stay. The stay must be a
// booking issued by the reviewing guest, and each (stay, guest) pair may be
// reviewed at most once; the unique index backs the read-time check.
func (s *ReviewService) CreateReview(guestID, stayID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var booking models.Booking
	err := s.DB.Where("id = ? AND issuer_guest_id = ?", stayID, guestID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", stayID, err)
	}

	var existing models.Review
	err = s.DB.Where("stay_id = ? AND guest_id = ?", stayID, guestID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReview
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &models.Review{
		StayID:  stayID,
		GuestID: guestID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.DB.Create(review).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}
