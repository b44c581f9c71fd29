package services

import (
	"context"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
)

// Caller is the resolved identity a gate or domain operation runs as.
// It is passed explicitly into every call; there is no ambient session.
type Caller struct {
	ID    uint
	Roles models.RoleSet
}

func (c Caller) IsInstructorOnly() bool {
	return c.Roles.Has(models.RoleInstructor) &&
		!c.Roles.HasAny(models.RoleTeacher, models.RoleAdmin)
}

// ensureOwner is the single ownership predicate applied to every
// owner-gated mutation.
func ensureOwner(resourceUserID uint, caller Caller, reason string) error {
	if resourceUserID != caller.ID {
		return apperrors.Forbidden(reason)
	}
	return nil
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type UserService interface {
	List(ctx context.Context, params *models.UserListParams) (*models.Page[*models.User], error)
	Update(ctx context.Context, id uint, req *models.UserUpdateRequest) (*models.User, error)

	ListInstructors(ctx context.Context, params *models.InstructorListParams) (*models.Page[models.UserRef], error)
	ExportInstructors(ctx context.Context) ([]models.UserRef, error)
}

type AreaService interface {
	Create(ctx context.Context, req *models.AreaCreateRequest) (*models.ProfessionalArea, error)
	Get(ctx context.Context, id uint) (*models.ProfessionalArea, error)
	Update(ctx context.Context, id uint, req *models.AreaUpdateRequest) (*models.ProfessionalArea, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, cursor string, limit int) (*models.Page[*models.ProfessionalArea], error)
	Instructors(ctx context.Context, areaID uint) ([]models.UserRef, error)
}

type AssignmentService interface {
	// Assign grants the instructor access to the area. Assigning an
	// existing pair is a no-op success so the call is safe to retry.
	Assign(ctx context.Context, instructorID, areaID uint) error
	// Unassign revokes access; revoking a missing pair is a no-op success.
	Unassign(ctx context.Context, instructorID, areaID uint) error
	HasAccess(ctx context.Context, instructorID, areaID uint) (bool, error)
	AreasForInstructor(ctx context.Context, instructorID uint) ([]*models.ProfessionalArea, error)
}

type ForumService interface {
	ListTopics(ctx context.Context, caller Caller, params *models.TopicListParams) (*models.Page[*models.Topic], error)
	CreateTopic(ctx context.Context, caller Caller, req *models.TopicCreateRequest) (*models.Topic, error)
	GetTopic(ctx context.Context, caller Caller, id uint) (*models.Topic, error)
	UpdateTopic(ctx context.Context, caller Caller, id uint, req *models.TopicUpdateRequest) (*models.Topic, error)
	DeleteTopic(ctx context.Context, caller Caller, id uint) error

	// EnsureTopicAccess is the resource-scoped gate: the topic must exist
	// (checked first) and an instructor caller must be assigned to its
	// area. It reads, never writes.
	EnsureTopicAccess(ctx context.Context, caller Caller, topicID uint) (*models.Topic, error)

	ListPosts(ctx context.Context, caller Caller, topicID uint, cursor string, limit int) (*models.Page[*models.ForumPost], error)
	CreatePost(ctx context.Context, caller Caller, topicID uint, req *models.PostCreateRequest) (*models.ForumPost, error)
	GetPost(ctx context.Context, caller Caller, topicID, postID uint) (*models.ForumPost, error)
	UpdatePost(ctx context.Context, caller Caller, topicID, postID uint, req *models.PostUpdateRequest) (*models.ForumPost, error)
	DeletePost(ctx context.Context, caller Caller, topicID, postID uint) error

	ReactionCounts(ctx context.Context, caller Caller, topicID, postID uint) (*models.ReactionCounts, error)
	SetReaction(ctx context.Context, caller Caller, topicID, postID uint, reactionType models.ReactionType) error
	RemoveReaction(ctx context.Context, caller Caller, topicID, postID uint) error
}

type AppointmentService interface {
	List(ctx context.Context) ([]*models.AppointmentResponse, error)
	Create(ctx context.Context, caller Caller, req *models.AppointmentRequest) (*models.Appointment, error)
	Update(ctx context.Context, caller Caller, id uint, req *models.AppointmentRequest) (*models.Appointment, error)
	Delete(ctx context.Context, caller Caller, id uint) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Area() AreaService
	Assignment() AssignmentService
	Forum() ForumService
	Appointment() AppointmentService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
