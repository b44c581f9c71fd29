package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/cache"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
)

var areaOrder = []pagination.Order{{Column: "name"}, {Column: "id"}}

type areaRepository struct {
	db    *gorm.DB
	cache *cache.Helper
}

func (r *areaRepository) Create(ctx context.Context, area *models.ProfessionalArea) error {
	err := r.db.WithContext(ctx).Create(area).Error
	return classifyAreaErr(err, area.Name)
}

func (r *areaRepository) GetByID(ctx context.Context, id uint) (*models.ProfessionalArea, error) {
	var area models.ProfessionalArea
	if err := r.db.WithContext(ctx).First(&area, id).Error; err != nil {
		return nil, classify(err, "professional area")
	}
	return &area, nil
}

func (r *areaRepository) Update(ctx context.Context, area *models.ProfessionalArea) error {
	err := r.db.WithContext(ctx).Model(area).
		Select("Name", "Description").
		Updates(area).Error
	return classifyAreaErr(err, area.Name)
}

func (r *areaRepository) Delete(ctx context.Context, id uint) error {
	// Assignment rows go with the area in one transaction; the FK cascade
	// covers deployments where the constraint exists, the explicit delete
	// covers the rest.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("professional_area_id = ?", id).
			Delete(&models.InstructorAreaAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProfessionalArea{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return classify(err, "professional area")
	}
	// Access verdicts for this area are stale for every instructor.
	if r.cache != nil {
		_ = r.cache.DeletePattern(ctx, fmt.Sprintf("access:*:%d", id))
	}
	return nil
}

func (r *areaRepository) List(ctx context.Context, after *pagination.Cursor, limit int) ([]*models.ProfessionalArea, error) {
	query := r.db.WithContext(ctx).Model(&models.ProfessionalArea{})
	query, err := applyKeyset(query, areaOrder, after)
	if err != nil {
		return nil, err
	}

	var areas []*models.ProfessionalArea
	if err := query.Limit(limit + 1).Find(&areas).Error; err != nil {
		return nil, classify(err, "professional area")
	}
	return areas, nil
}

// classifyAreaErr keeps the conflicting name in the duplicate message so
// clients can show which area already exists.
func classifyAreaErr(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(fmt.Sprintf("The professional area %q already exists", name))
	}
	return classify(err, "professional area")
}
