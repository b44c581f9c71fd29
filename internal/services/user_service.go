package services

import (
	"context"
	"log/slog"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	codec     *pagination.Codec
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, codec *pagination.Codec, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{repo: repo, codec: codec, logger: logger, validator: v}
}

func (s *userService) List(ctx context.Context, params *models.UserListParams) (*models.Page[*models.User], error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	after, err := s.decodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	limit := pagination.ClampLimit(params.Limit, pagination.DefaultLimit)

	users, err := s.repo.User().List(ctx, repositories.ListUsersFilter{
		Role:   params.Role,
		Status: params.Status,
	}, after, limit)
	if err != nil {
		s.logger.Error("listing users failed", "error", err)
		return nil, err
	}

	items, next, err := pagination.BuildPage(users, limit, s.codec, func(u *models.User) []any {
		return []any{u.Name, int64(u.ID)}
	})
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return &models.Page[*models.User]{Items: items, NextCursor: next}, nil
}

// Update applies a partial update; the field changes and any role resync
// land in one transaction.
func (s *userService) Update(ctx context.Context, id uint, req *models.UserUpdateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if len(req.Preferences) > 0 {
		user.Preferences = req.Preferences
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Update(ctx, user); err != nil {
			return err
		}
		if len(req.Roles) > 0 {
			return tx.User().ReplaceRoles(ctx, id, req.Roles)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflict("a user with this email already exists")
		}
		s.logger.Error("updating user failed", "user_id", id, "error", err)
		return nil, err
	}

	return s.repo.User().GetByID(ctx, id)
}

func (s *userService) ListInstructors(ctx context.Context, params *models.InstructorListParams) (*models.Page[models.UserRef], error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	after, err := s.decodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	limit := pagination.ClampLimit(params.Limit, pagination.DefaultLimit)

	refs, err := s.repo.User().ListInstructors(ctx, params.Query, after, limit)
	if err != nil {
		s.logger.Error("listing instructors failed", "error", err)
		return nil, err
	}

	items, next, err := pagination.BuildPage(refs, limit, s.codec, func(ref models.UserRef) []any {
		return []any{ref.Name, int64(ref.ID)}
	})
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return &models.Page[models.UserRef]{Items: items, NextCursor: next}, nil
}

func (s *userService) ExportInstructors(ctx context.Context) ([]models.UserRef, error) {
	refs, err := s.repo.User().AllInstructors(ctx)
	if err != nil {
		s.logger.Error("exporting instructors failed", "error", err)
	}
	return refs, err
}

func (s *userService) decodeCursor(token string) (*pagination.Cursor, error) {
	if token == "" {
		return nil, nil
	}
	return s.codec.Decode(token)
}
