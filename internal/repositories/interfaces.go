package repositories

import (
	"context"

	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
)

// ListUsersFilter narrows the admin user listing. Nil fields are ignored.
type ListUsersFilter struct {
	Role   *models.Role
	Status *models.UserStatus
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// ReplaceRoles swaps the user's role set for the given one.
	ReplaceRoles(ctx context.Context, userID uint, roles []models.Role) error

	// List fetches limit+1 users ordered by (name, id) strictly after the
	// cursor position.
	List(ctx context.Context, filter ListUsersFilter, after *pagination.Cursor, limit int) ([]*models.User, error)

	// ListInstructors fetches limit+1 instructor projections ordered by
	// (name, id). A non-empty query prefix-matches name or email.
	ListInstructors(ctx context.Context, query string, after *pagination.Cursor, limit int) ([]models.UserRef, error)
	// AllInstructors returns the full roster ordered by name, for export.
	AllInstructors(ctx context.Context) ([]models.UserRef, error)
}

type AreaRepository interface {
	Create(ctx context.Context, area *models.ProfessionalArea) error
	GetByID(ctx context.Context, id uint) (*models.ProfessionalArea, error)
	Update(ctx context.Context, area *models.ProfessionalArea) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, after *pagination.Cursor, limit int) ([]*models.ProfessionalArea, error)
}

type AssignmentRepository interface {
	// Ensure inserts the (instructor, area) pair if absent. Reports whether
	// a row was created; an existing pair is a no-op success.
	Ensure(ctx context.Context, instructorID, areaID uint) (bool, error)
	// Remove deletes the pair if present; removing a missing pair succeeds.
	Remove(ctx context.Context, instructorID, areaID uint) error
	Exists(ctx context.Context, instructorID, areaID uint) (bool, error)
	ListInstructorsForArea(ctx context.Context, areaID uint) ([]models.UserRef, error)
	ListAreasForInstructor(ctx context.Context, instructorID uint) ([]*models.ProfessionalArea, error)
}

type TopicRepository interface {
	Create(ctx context.Context, topic *models.Topic) error
	GetByID(ctx context.Context, id uint) (*models.Topic, error)
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id uint) error

	// List fetches limit+1 topics ordered by (created_at DESC, id DESC).
	List(ctx context.Context, after *pagination.Cursor, limit int) ([]*models.Topic, error)
	// ListForInstructor restricts the listing to topics in areas the
	// instructor is assigned to.
	ListForInstructor(ctx context.Context, instructorID uint, after *pagination.Cursor, limit int) ([]*models.Topic, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.ForumPost) error
	GetByID(ctx context.Context, id uint) (*models.ForumPost, error)
	Update(ctx context.Context, post *models.ForumPost) error
	Delete(ctx context.Context, id uint) error
	ListByTopic(ctx context.Context, topicID uint, after *pagination.Cursor, limit int) ([]*models.ForumPost, error)
}

type ReactionRepository interface {
	// Upsert inserts the reaction or, when the (user, post) row already
	// exists, updates its type in place. The unique constraint is the
	// backstop; no pre-check is involved.
	Upsert(ctx context.Context, reaction *models.PostReaction) error
	Delete(ctx context.Context, userID, postID uint) error
	Counts(ctx context.Context, postID uint) (*models.ReactionCounts, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uint) error
	ListWithCreator(ctx context.Context) ([]*models.Appointment, error)
}

// Repository bundles the per-entity repositories. WithTransaction runs fn
// against a repository bound to one transaction: all rows change or none
// do, and a context cancelled mid-transaction rolls back fully.
type Repository interface {
	User() UserRepository
	Area() AreaRepository
	Assignment() AssignmentRepository
	Topic() TopicRepository
	Post() PostRepository
	Reaction() ReactionRepository
	Appointment() AppointmentRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
}
