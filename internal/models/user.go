package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleTeacher    Role = "teacher"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleInstructor, RoleTeacher:
		return true
	}
	return false
}

type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

// RoleSet is the canonical in-memory representation of a user's roles.
// Role checks are set operations: HasAny for the "any of" policy, HasAll
// for "all of".
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if _, ok := s[r]; ok {
			return true
		}
	}
	return false
}

func (s RoleSet) HasAll(roles ...Role) bool {
	for _, r := range roles {
		if _, ok := s[r]; !ok {
			return false
		}
	}
	return true
}

func (s RoleSet) Slice() []Role {
	roles := make([]Role, 0, len(s))
	for _, r := range []Role{RoleUser, RoleAdmin, RoleInstructor, RoleTeacher} {
		if _, ok := s[r]; ok {
			roles = append(roles, r)
		}
	}
	return roles
}

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null;size:255"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Status       UserStatus `json:"status" gorm:"not null;size:20;default:pending"`

	Roles []UserRole `json:"roles" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Preferences datatypes.JSON `json:"preferences,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// RoleSet collapses the loaded role rows into a set.
func (u *User) RoleSet() RoleSet {
	set := make(RoleSet, len(u.Roles))
	for _, r := range u.Roles {
		set[r.Role] = struct{}{}
	}
	return set
}

func (u *User) HasStatus(status UserStatus) bool {
	return u.Status == status
}

// UserRole is one role tag held by a user. The pair is unique so assigning
// the same role twice keeps a single row.
type UserRole struct {
	ID     uint `json:"-" gorm:"primaryKey"`
	UserID uint `json:"-" gorm:"not null;uniqueIndex:idx_user_role"`
	Role   Role `json:"role" gorm:"not null;size:20;uniqueIndex:idx_user_role"`

	CreatedAt time.Time `json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// UserRef is the projection embedded in responses that reference a user.
// It never carries credentials.
type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
