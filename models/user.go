package models

import (
	"strings"
	"time"

	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role string `gorm:"type:varchar(20);not null;default:'customer'"` // 'customer' or 'admin'

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = utils.RoleCustomer
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Identity returns the view of the account the booking engine consumes.
func (u User) Identity() Identity {
	return Identity{ID: u.ID.String(), DisplayName: u.Name, Email: u.Email, Role: u.Role}
}

// Identity is the authenticated caller as seen by the booking engine.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// IsPrivileged reports whether the identity may use admin operations.
func (i *Identity) IsPrivileged() bool {
	return i != nil && i.Role == utils.RoleAdmin
}
