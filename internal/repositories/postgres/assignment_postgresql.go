package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftportal/learning-service/internal/cache"
	"github.com/craftportal/learning-service/internal/models"
)

type assignmentRepository struct {
	db    *gorm.DB
	cache *cache.Helper
}

func accessKey(instructorID, areaID uint) string {
	return fmt.Sprintf("access:%d:%d", instructorID, areaID)
}

func (r *assignmentRepository) Ensure(ctx context.Context, instructorID, areaID uint) (bool, error) {
	// DoNothing makes a concurrent duplicate insert a no-op instead of a
	// constraint error; the unique index on the pair is the backstop.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "professional_area_id"}},
			DoNothing: true,
		}).
		Create(&models.InstructorAreaAssignment{
			UserID:             instructorID,
			ProfessionalAreaID: areaID,
		})
	if result.Error != nil {
		return false, classify(result.Error, "assignment")
	}
	if r.cache != nil {
		_ = r.cache.Delete(ctx, accessKey(instructorID, areaID))
	}
	return result.RowsAffected > 0, nil
}

func (r *assignmentRepository) Remove(ctx context.Context, instructorID, areaID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND professional_area_id = ?", instructorID, areaID).
		Delete(&models.InstructorAreaAssignment{}).Error
	if err != nil {
		return classify(err, "assignment")
	}
	if r.cache != nil {
		_ = r.cache.Delete(ctx, accessKey(instructorID, areaID))
	}
	return nil
}

func (r *assignmentRepository) Exists(ctx context.Context, instructorID, areaID uint) (bool, error) {
	key := accessKey(instructorID, areaID)
	// A cache miss or a broken cache falls through to the database; the
	// gate never fails on cache errors.
	if r.cache != nil {
		var allowed bool
		if err := r.cache.Get(ctx, key, &allowed); err == nil {
			return allowed, nil
		}
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InstructorAreaAssignment{}).
		Where("user_id = ? AND professional_area_id = ?", instructorID, areaID).
		Count(&count).Error
	if err != nil {
		return false, classify(err, "assignment")
	}
	exists := count > 0
	if r.cache != nil {
		_ = r.cache.Set(ctx, key, exists, cache.AccessTTL)
	}
	return exists, nil
}

func (r *assignmentRepository) ListInstructorsForArea(ctx context.Context, areaID uint) ([]models.UserRef, error) {
	var refs []models.UserRef
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN user_to_professional_area utpa ON utpa.user_id = users.id").
		Where("utpa.professional_area_id = ?", areaID).
		Order("users.name, users.id").
		Scan(&refs).Error
	if err != nil {
		return nil, classify(err, "assignment")
	}
	return refs, nil
}

func (r *assignmentRepository) ListAreasForInstructor(ctx context.Context, instructorID uint) ([]*models.ProfessionalArea, error) {
	var areas []*models.ProfessionalArea
	err := r.db.WithContext(ctx).
		Model(&models.ProfessionalArea{}).
		Select("professional_areas.id, professional_areas.name, professional_areas.description").
		Joins("JOIN user_to_professional_area utpa ON utpa.professional_area_id = professional_areas.id").
		Where("utpa.user_id = ?", instructorID).
		Order("professional_areas.name, professional_areas.id").
		Scan(&areas).Error
	if err != nil {
		return nil, classify(err, "assignment")
	}
	return areas, nil
}
