package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StayID    uint      `gorm:"column:stay_id;not null;uniqueIndex:idx_reviews_stay_guest" json:"stay_id"`
	GuestID   uint      `gorm:"column:guest_id;not null;uniqueIndex:idx_reviews_stay_guest" json:"guest_id"`
	Rating    int       `gorm:"not null;check:rating_between_1_and_5,rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"size:500" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	Stay  Booking `gorm:"foreignKey:StayID;references:ID" json:"-"`
	Guest User    `gorm:"foreignKey:GuestID;references:ID" json:"-"`
}
