package models

import (
	"time"

	"gorm.io/datatypes"
)

type Listing struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"column:user_id;index;not null" json:"user_id"`
	Title          string         `gorm:"size:80" json:"title"`
	NumberOfPeople int            `gorm:"column:number_of_people;not null;default:1;check:number_of_people_check,number_of_people >= 1 AND number_of_people <= 32" json:"numberOfPeople"`
	Country        string         `gorm:"size:128;not null" json:"country"`
	City           string         `gorm:"size:128;not null" json:"city"`
	Price          float64        `gorm:"not null" json:"price"`
	AvailableFrom  datatypes.Date `gorm:"column:available_from;not null" json:"-"`
	AvailableTo    datatypes.Date `gorm:"column:available_to;not null" json:"-"`
	CreatedAt      time.Time      `json:"-"`
	UpdatedAt      time.Time      `json:"-"`

	Host User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}
