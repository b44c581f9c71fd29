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

type areaService struct {
	repo      repositories.Repository
	codec     *pagination.Codec
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAreaService(repo repositories.Repository, codec *pagination.Codec, logger *slog.Logger, v *validator.Validator) AreaService {
	return &areaService{repo: repo, codec: codec, logger: logger, validator: v}
}

func (s *areaService) Create(ctx context.Context, req *models.AreaCreateRequest) (*models.ProfessionalArea, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	area := &models.ProfessionalArea{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Area().Create(ctx, area); err != nil {
		if !apperrors.IsConflict(err) {
			s.logger.Error("creating professional area failed", "name", req.Name, "error", err)
		}
		return nil, err
	}

	s.logger.Info("professional area created", "area_id", area.ID, "name", area.Name)
	return area, nil
}

func (s *areaService) Get(ctx context.Context, id uint) (*models.ProfessionalArea, error) {
	return s.repo.Area().GetByID(ctx, id)
}

func (s *areaService) Update(ctx context.Context, id uint, req *models.AreaUpdateRequest) (*models.ProfessionalArea, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	area, err := s.repo.Area().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		area.Name = *req.Name
	}
	if req.Description != nil {
		area.Description = *req.Description
	}

	if err := s.repo.Area().Update(ctx, area); err != nil {
		if !apperrors.IsConflict(err) {
			s.logger.Error("updating professional area failed", "area_id", id, "error", err)
		}
		return nil, err
	}
	return area, nil
}

// Delete removes the area together with its instructor assignments; the
// repository runs both deletes in one transaction.
func (s *areaService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Area().Delete(ctx, id); err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error("deleting professional area failed", "area_id", id, "error", err)
		}
		return err
	}
	s.logger.Info("professional area deleted", "area_id", id)
	return nil
}

func (s *areaService) List(ctx context.Context, cursor string, limit int) (*models.Page[*models.ProfessionalArea], error) {
	var after *pagination.Cursor
	if cursor != "" {
		decoded, err := s.codec.Decode(cursor)
		if err != nil {
			return nil, err
		}
		after = decoded
	}
	limit = pagination.ClampLimit(limit, pagination.DefaultLimit)

	areas, err := s.repo.Area().List(ctx, after, limit)
	if err != nil {
		s.logger.Error("listing professional areas failed", "error", err)
		return nil, err
	}

	items, next, err := pagination.BuildPage(areas, limit, s.codec, func(a *models.ProfessionalArea) []any {
		return []any{a.Name, int64(a.ID)}
	})
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return &models.Page[*models.ProfessionalArea]{Items: items, NextCursor: next}, nil
}

func (s *areaService) Instructors(ctx context.Context, areaID uint) ([]models.UserRef, error) {
	if _, err := s.repo.Area().GetByID(ctx, areaID); err != nil {
		return nil, err
	}
	return s.repo.Assignment().ListInstructorsForArea(ctx, areaID)
}
