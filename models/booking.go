package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking is create-only: it is never updated or deleted, and its ledger rows
// in listing_booked_dates are written in the same transaction that creates it.
type Booking struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ListingID      uint           `gorm:"column:listing_id;index;not null" json:"listing_id"`
	IssuerGuestID  uint           `gorm:"column:issuer_guest_id;index;not null" json:"issuer_guest_id"`
	DateFrom       datatypes.Date `gorm:"column:date_from;not null" json:"-"`
	DateTo         datatypes.Date `gorm:"column:date_to;not null" json:"-"`
	NamesOfPeople  string         `gorm:"column:names_of_people;size:250;not null" json:"namesOfPeople"`
	AmountOfPeople *int           `gorm:"column:amount_of_people;default:1" json:"amountOfPeople,omitempty"`
	CreatedAt      time.Time      `json:"-"`
	UpdatedAt      time.Time      `json:"-"`

	Listing     Listing `gorm:"foreignKey:ListingID;references:ID" json:"-"`
	IssuerGuest User    `gorm:"foreignKey:IssuerGuestID;references:ID" json:"-"`
}
