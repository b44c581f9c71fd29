package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/craftportal/learning-service/internal/auth"
	"github.com/craftportal/learning-service/internal/events"
	"github.com/craftportal/learning-service/internal/pagination"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/validator"
)

// Config carries the cross-service settings the manager wires in.
type Config struct {
	// CursorSecret keys the HMAC on pagination tokens.
	CursorSecret string
	// JWTSecret and TokenTTL configure session tokens.
	JWTSecret string
	TokenTTL  time.Duration
}

type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.Publisher

	authService        AuthService
	userService        UserService
	areaService        AreaService
	assignmentService  AssignmentService
	forumService       ForumService
	appointmentService AppointmentService
}

func NewServiceManager(
	repo repositories.Repository,
	publisher events.Publisher,
	logger *slog.Logger,
	v *validator.Validator,
	cfg Config,
) ServiceManager {
	codec := pagination.NewCodec([]byte(cfg.CursorSecret))
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	assignmentService := NewAssignmentService(repo, logger)

	return &serviceManager{
		repo:               repo,
		logger:             logger,
		publisher:          publisher,
		authService:        NewAuthService(repo, tokens, logger, v),
		userService:        NewUserService(repo, codec, logger, v),
		areaService:        NewAreaService(repo, codec, logger, v),
		assignmentService:  assignmentService,
		forumService:       NewForumService(repo, assignmentService, publisher, codec, logger, v),
		appointmentService: NewAppointmentService(repo, logger, v),
	}
}

func (m *serviceManager) Auth() AuthService               { return m.authService }
func (m *serviceManager) User() UserService               { return m.userService }
func (m *serviceManager) Area() AreaService               { return m.areaService }
func (m *serviceManager) Assignment() AssignmentService   { return m.assignmentService }
func (m *serviceManager) Forum() ForumService             { return m.forumService }
func (m *serviceManager) Appointment() AppointmentService { return m.appointmentService }

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	if m.publisher != nil {
		return m.publisher.Close()
	}
	return nil
}
