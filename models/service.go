package models

import (
	"time"
)

// ServiceCategory groups treatments on the price list.
type ServiceCategory string

const (
	CategoryBasic   ServiceCategory = "basic"
	CategoryWaxing  ServiceCategory = "waxing"
	CategoryMassage ServiceCategory = "massage"
	CategoryFacial  ServiceCategory = "facial"
)

// ServiceCategories lists every category in display order.
var ServiceCategories = []ServiceCategory{CategoryBasic, CategoryWaxing, CategoryMassage, CategoryFacial}

func (c ServiceCategory) Valid() bool {
	for _, known := range ServiceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Service is a bookable treatment. The ID is the slug of the label.
type Service struct {
	ID       string          `gorm:"type:varchar(120);primary_key" json:"id"`
	Label    string          `gorm:"not null" json:"label"`
	Price    int             `gorm:"not null" json:"price"`
	Duration int             `gorm:"not null" json:"duration"` // in minutes
	Category ServiceCategory `gorm:"type:varchar(20);not null;default:'basic'" json:"category"`
	Active   bool            `gorm:"not null;index" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot copies the fields a booking keeps immune to later catalog edits.
func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{ID: s.ID, Label: s.Label, Price: Price(s.Price), Duration: s.Duration}
}
