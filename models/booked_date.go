package models

import "gorm.io/datatypes"

// ListingBookedDate is one committed night of one listing. The composite
// primary key (listing_id, booked_date) is the uniqueness backstop that stops
// two concurrent admissions from committing the same night.
type ListingBookedDate struct {
	ListingID  uint           `gorm:"column:listing_id;primaryKey;autoIncrement:false" json:"listing_id"`
	BookedDate datatypes.Date `gorm:"column:booked_date;primaryKey" json:"-"`

	Listing Listing `gorm:"foreignKey:ListingID;references:ID" json:"-"`
}

func (ListingBookedDate) TableName() string { return "listing_booked_dates" }
