package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is total: an empty value never leaves the data layer.
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// OrDefault maps a missing status to pending.
func (s BookingStatus) OrDefault() BookingStatus {
	if s == "" {
		return StatusPending
	}
	return s
}

// Booking is one appointment covering one or more services back to back.
type Booking struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name   string    `gorm:"not null" json:"name"`
	Phone  string    `gorm:"not null" json:"phone"`
	Email  string    `json:"email,omitempty"`
	UserID string    `gorm:"index" json:"userId,omitempty"`

	UserName string `json:"userName,omitempty"`

	Date string `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD
	Time string `gorm:"type:varchar(5);not null" json:"time"`        // HH:MM

	ServiceIDs      StringList       `gorm:"type:jsonb" json:"services"`
	Services        ServiceSnapshots `gorm:"type:jsonb" json:"servicesMeta"`
	TotalPrice      int              `json:"totalPrice"`
	DurationMinutes int              `json:"durationMinutes"`
	Notes           string           `gorm:"type:text" json:"notes,omitempty"`

	Status     BookingStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	ApprovedAt *time.Time    `json:"approvedAt,omitempty"`
	RejectedAt *time.Time    `json:"rejectedAt,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

func (b *Booking) BeforeSave(tx *gorm.DB) (err error) {
	b.Status = b.Status.OrDefault()
	return
}

func (b *Booking) AfterFind(tx *gorm.DB) (err error) {
	b.Status = b.Status.OrDefault()
	return
}

// ServiceLabels lists the snapshot labels in booking order.
func (b Booking) ServiceLabels() []string {
	labels := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		labels = append(labels, s.Label)
	}
	return labels
}
