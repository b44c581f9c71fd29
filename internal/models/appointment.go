package models

import (
	"time"
)

// Appointment is a calendar entry owned by a single user. EndTime is
// always strictly after StartTime; the service layer rejects anything else.
type Appointment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description *string   `json:"description"`
	Location    *string   `json:"location" gorm:"size:255"`
	StartTime   time.Time `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time `json:"end_time" gorm:"not null"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`

	User User `json:"-" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
