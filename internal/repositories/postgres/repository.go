// Package postgres implements the repository interfaces on GORM. Database
// errors are classified here, once: nothing above this boundary inspects
// driver error codes. The gorm connection must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/cache"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
)

type gormRepository struct {
	db    *gorm.DB
	cache *cache.Helper

	user        repositories.UserRepository
	area        repositories.AreaRepository
	assignment  repositories.AssignmentRepository
	topic       repositories.TopicRepository
	post        repositories.PostRepository
	reaction    repositories.ReactionRepository
	appointment repositories.AppointmentRepository
}

func NewRepository(db *gorm.DB, cacheHelper *cache.Helper) repositories.Repository {
	return &gormRepository{
		db:          db,
		cache:       cacheHelper,
		user:        &userRepository{db: db},
		area:        &areaRepository{db: db, cache: cacheHelper},
		assignment:  &assignmentRepository{db: db, cache: cacheHelper},
		topic:       &topicRepository{db: db},
		post:        &postRepository{db: db},
		reaction:    &reactionRepository{db: db},
		appointment: &appointmentRepository{db: db},
	}
}

// Migrate creates or updates the schema for all domain tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.ProfessionalArea{},
		&models.InstructorAreaAssignment{},
		&models.Topic{},
		&models.ForumPost{},
		&models.PostReaction{},
		&models.Appointment{},
	)
}

func (r *gormRepository) User() repositories.UserRepository               { return r.user }
func (r *gormRepository) Area() repositories.AreaRepository               { return r.area }
func (r *gormRepository) Assignment() repositories.AssignmentRepository   { return r.assignment }
func (r *gormRepository) Topic() repositories.TopicRepository             { return r.topic }
func (r *gormRepository) Post() repositories.PostRepository               { return r.post }
func (r *gormRepository) Reaction() repositories.ReactionRepository       { return r.reaction }
func (r *gormRepository) Appointment() repositories.AppointmentRepository { return r.appointment }

func (r *gormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx, r.cache))
	})
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// classify maps a gorm error to the domain taxonomy. The resource name
// feeds the not-found and conflict messages.
func classify(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(resource + " already exists")
	default:
		return apperrors.Unexpected(err)
	}
}
