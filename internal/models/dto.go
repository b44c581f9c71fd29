package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ===== AUTH =====

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Roles    []Role `json:"roles" validate:"required,min=1,dive,userrole"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// ===== ADMIN: USERS =====

type UserUpdateRequest struct {
	Name        *string        `json:"name" validate:"omitempty,max=255"`
	Email       *string        `json:"email" validate:"omitempty,email,max=255"`
	Status      *UserStatus    `json:"status" validate:"omitempty,userstatus"`
	Roles       []Role         `json:"roles" validate:"omitempty,min=1,dive,userrole"`
	Preferences datatypes.JSON `json:"preferences" validate:"omitempty"`
}

type UserListParams struct {
	Role   *Role       `form:"role" validate:"omitempty,userrole"`
	Status *UserStatus `form:"status" validate:"omitempty,userstatus"`
	Cursor string      `form:"cursor"`
	Limit  int         `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ===== ADMIN: INSTRUCTORS / AREAS =====

type InstructorListParams struct {
	Query  string `form:"query" validate:"omitempty,max=255"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type AreaCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type AreaUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty"`
}

type AreaListParams struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ===== FORUM =====

type TopicCreateRequest struct {
	Title              string  `json:"title" validate:"required,max=255"`
	Description        *string `json:"description"`
	ProfessionalAreaID uint    `json:"professional_area_id" validate:"required"`
}

type TopicUpdateRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type TopicListParams struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type PostListParams struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type PostCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

type PostUpdateRequest struct {
	Content string `json:"content" validate:"required"`
}

type ReactionRequest struct {
	Type ReactionType `json:"type" validate:"required,oneof=like dislike"`
}

// ===== CALENDAR =====

// FlexTime accepts RFC3339 strings and unix timestamps (seconds or
// milliseconds) on the wire; clients send both.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 9999999999 {
			n = n / 1000
		}
		t.Time = time.Unix(n, 0).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

type AppointmentRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description *string   `json:"description"`
	Location    *string   `json:"location" validate:"omitempty,max=255"`
	StartTime   *FlexTime `json:"start_time" validate:"required"`
	EndTime     *FlexTime `json:"end_time" validate:"required"`
}

type AppointmentResponse struct {
	*Appointment
	Creator UserRef `json:"creator"`
}

// ===== PAGINATION =====

// Page is the uniform paginated envelope: NextCursor is present iff more
// rows exist beyond the returned items.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor"`
}
