package models

import (
	"gorm.io/gorm"
)

// Listing is a host's rentable space offered on a split-week schedule.
type Listing struct {
	gorm.Model
	HostID       uint    `json:"hostID" gorm:"index"`
	Title        string  `json:"title" gorm:"size:200"`
	Description  string  `json:"description" gorm:"type:text"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Country      string  `json:"country"`
	NightlyPrice float64 `json:"nightlyPrice"`
	CleaningFee  float64 `json:"cleaningFee"`
	// Refundable deposit collected with the first guest payment
	DamageDeposit  float64 `json:"damageDeposit"`
	MaintenanceFee float64 `json:"maintenanceFee"`
	// Stored pattern string; parsed once at the data boundary into a typed
	// WeekPattern (see services.ParseWeekPattern)
	WeekPattern string `json:"weekPattern" gorm:"size:32;default:'every_week'"`
	HouseManual string `json:"houseManual" gorm:"type:text"`
	IsActive    *bool  `json:"isActive" gorm:"default:true"`

	Host *User `json:"host,omitempty" gorm:"foreignKey:HostID"`
}

// Address joins the street-level address parts for display and documents.
func (l *Listing) Address() string {
	addr := l.AddressLine1
	if l.AddressLine2 != "" {
		addr += ", " + l.AddressLine2
	}
	if l.City != "" {
		addr += ", " + l.City
	}
	if l.State != "" {
		addr += ", " + l.State
	}
	if l.Zip != "" {
		addr += " " + l.Zip
	}
	return addr
}
