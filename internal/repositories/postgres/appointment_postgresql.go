package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftportal/learning-service/internal/models"
)

type appointmentRepository struct {
	db *gorm.DB
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return classify(r.db.WithContext(ctx).Create(appointment).Error, "appointment")
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, classify(err, "appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	err := r.db.WithContext(ctx).Model(appointment).
		Select("Title", "Description", "Location", "StartTime", "EndTime").
		Updates(appointment).Error
	return classify(err, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if result.Error != nil {
		return classify(result.Error, "appointment")
	}
	if result.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "appointment")
	}
	return nil
}

func (r *appointmentRepository) ListWithCreator(ctx context.Context) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Order("start_time, id").
		Find(&appointments).Error
	if err != nil {
		return nil, classify(err, "appointment")
	}
	return appointments, nil
}
