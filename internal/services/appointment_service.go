package services

import (
	"context"
	"log/slog"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/validator"
)

type appointmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAppointmentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AppointmentService {
	return &appointmentService{repo: repo, logger: logger, validator: v}
}

func (s *appointmentService) List(ctx context.Context) ([]*models.AppointmentResponse, error) {
	appointments, err := s.repo.Appointment().ListWithCreator(ctx)
	if err != nil {
		s.logger.Error("listing appointments failed", "error", err)
		return nil, err
	}

	responses := make([]*models.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, &models.AppointmentResponse{
			Appointment: appointment,
			Creator: models.UserRef{
				ID:   appointment.User.ID,
				Name: appointment.User.Name,
			},
		})
	}
	return responses, nil
}

func (s *appointmentService) Create(ctx context.Context, caller Caller, req *models.AppointmentRequest) (*models.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime.Time,
		EndTime:     req.EndTime.Time,
		UserID:      caller.ID,
	}
	if err := s.repo.Appointment().Create(ctx, appointment); err != nil {
		s.logger.Error("creating appointment failed", "user_id", caller.ID, "error", err)
		return nil, err
	}

	s.logger.Info("appointment created", "appointment_id", appointment.ID, "user_id", caller.ID)
	return appointment, nil
}

func (s *appointmentService) Update(ctx context.Context, caller Caller, id uint, req *models.AppointmentRequest) (*models.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Appointment().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(appointment.UserID, caller, "only the appointment creator may modify it"); err != nil {
		return nil, err
	}

	appointment.Title = req.Title
	appointment.Description = req.Description
	appointment.Location = req.Location
	appointment.StartTime = req.StartTime.Time
	appointment.EndTime = req.EndTime.Time

	if err := s.repo.Appointment().Update(ctx, appointment); err != nil {
		s.logger.Error("updating appointment failed", "appointment_id", id, "error", err)
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Delete(ctx context.Context, caller Caller, id uint) error {
	appointment, err := s.repo.Appointment().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureOwner(appointment.UserID, caller, "only the appointment creator may modify it"); err != nil {
		return err
	}

	if err := s.repo.Appointment().Delete(ctx, id); err != nil {
		s.logger.Error("deleting appointment failed", "appointment_id", id, "error", err)
		return err
	}
	s.logger.Info("appointment deleted", "appointment_id", id, "user_id", caller.ID)
	return nil
}

func (s *appointmentService) validateRequest(req *models.AppointmentRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if !req.EndTime.After(req.StartTime.Time) {
		return apperrors.ValidationMsg("end_time", "must be after start_time")
	}
	return nil
}
