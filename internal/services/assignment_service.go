package services

import (
	"context"
	"log/slog"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
)

type assignmentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAssignmentService(repo repositories.Repository, logger *slog.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// Assign verifies both ends of the pair before touching the junction
// table: the user must exist and actually hold the instructor role, and
// the area must exist.
func (s *assignmentService) Assign(ctx context.Context, instructorID, areaID uint) error {
	user, err := s.repo.User().GetByID(ctx, instructorID)
	if err != nil {
		return err
	}
	if !user.RoleSet().Has(models.RoleInstructor) {
		return apperrors.ValidationMsg("user_id", "user is not an instructor")
	}
	if _, err := s.repo.Area().GetByID(ctx, areaID); err != nil {
		return err
	}

	created, err := s.repo.Assignment().Ensure(ctx, instructorID, areaID)
	if err != nil {
		s.logger.Error("assigning instructor failed", "user_id", instructorID, "area_id", areaID, "error", err)
		return err
	}
	if created {
		s.logger.Info("instructor assigned to area", "user_id", instructorID, "area_id", areaID)
	}
	return nil
}

func (s *assignmentService) Unassign(ctx context.Context, instructorID, areaID uint) error {
	if _, err := s.repo.User().GetByID(ctx, instructorID); err != nil {
		return err
	}
	if _, err := s.repo.Area().GetByID(ctx, areaID); err != nil {
		return err
	}

	if err := s.repo.Assignment().Remove(ctx, instructorID, areaID); err != nil {
		s.logger.Error("unassigning instructor failed", "user_id", instructorID, "area_id", areaID, "error", err)
		return err
	}
	s.logger.Info("instructor unassigned from area", "user_id", instructorID, "area_id", areaID)
	return nil
}

func (s *assignmentService) HasAccess(ctx context.Context, instructorID, areaID uint) (bool, error) {
	return s.repo.Assignment().Exists(ctx, instructorID, areaID)
}

func (s *assignmentService) AreasForInstructor(ctx context.Context, instructorID uint) ([]*models.ProfessionalArea, error) {
	if _, err := s.repo.User().GetByID(ctx, instructorID); err != nil {
		return nil, err
	}
	return s.repo.Assignment().ListAreasForInstructor(ctx, instructorID)
}
