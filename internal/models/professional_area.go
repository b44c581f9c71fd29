package models

import (
	"time"
)

// ProfessionalArea is a named domain instructors can be granted access to.
// The name is unique; violations surface as a domain conflict, not a raw
// database error.
type ProfessionalArea struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Description string `json:"description" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProfessionalArea) TableName() string {
	return "professional_areas"
}

// InstructorAreaAssignment links an instructor to a professional area.
// Set semantics: the (user, area) pair is unique and both sides cascade
// their assignment rows on delete.
type InstructorAreaAssignment struct {
	ID                 uint `json:"-" gorm:"primaryKey"`
	UserID             uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_area;constraint:OnDelete:CASCADE"`
	ProfessionalAreaID uint `json:"professional_area_id" gorm:"not null;uniqueIndex:idx_user_area;constraint:OnDelete:CASCADE"`

	User             User             `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProfessionalArea ProfessionalArea `json:"-" gorm:"foreignKey:ProfessionalAreaID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InstructorAreaAssignment) TableName() string {
	return "user_to_professional_area"
}
