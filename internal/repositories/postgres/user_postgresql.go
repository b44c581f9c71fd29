package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
	"github.com/craftportal/learning-service/internal/repositories"
)

// userOrder is the deterministic composite key for people listings. The id
// column breaks ties between equal names.
var userOrder = []pagination.Order{{Column: "users.name"}, {Column: "users.id"}}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return classify(r.db.WithContext(ctx).Create(user).Error, "user")
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	if err != nil {
		return nil, classify(err, "user")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, classify(err, "user")
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).
		Select("Name", "Email", "Status", "Preferences").
		Updates(user).Error
	return classify(err, "user")
}

func (r *userRepository) ReplaceRoles(ctx context.Context, userID uint, roles []models.Role) error {
	// The role set is never empty after registration.
	if len(roles) == 0 {
		return apperrors.ValidationMsg("roles", "at least one role is required")
	}
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		rows := make([]models.UserRole, 0, len(roles))
		for _, role := range models.NewRoleSet(roles...).Slice() {
			rows = append(rows, models.UserRole{UserID: userID, Role: role})
		}
		return tx.Create(&rows).Error
	}), "user")
}

func (r *userRepository) List(ctx context.Context, filter repositories.ListUsersFilter, after *pagination.Cursor, limit int) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Preload("Roles")

	if filter.Role != nil {
		query = query.Joins("JOIN user_roles ON user_roles.user_id = users.id").
			Where("user_roles.role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("users.status = ?", *filter.Status)
	}

	query, err := applyKeyset(query, userOrder, after)
	if err != nil {
		return nil, err
	}

	var users []*models.User
	if err := query.Limit(limit + 1).Find(&users).Error; err != nil {
		return nil, classify(err, "user")
	}
	return users, nil
}

func (r *userRepository) ListInstructors(ctx context.Context, query string, after *pagination.Cursor, limit int) ([]models.UserRef, error) {
	q := r.instructorProjection(ctx)

	// Prefix match on name or email, applied before the keyset predicate.
	if query != "" {
		pattern := query + "%"
		q = q.Where("users.name LIKE ? OR users.email LIKE ?", pattern, pattern)
	}

	q, err := applyKeyset(q, userOrder, after)
	if err != nil {
		return nil, err
	}

	var refs []models.UserRef
	if err := q.Limit(limit + 1).Scan(&refs).Error; err != nil {
		return nil, classify(err, "instructor")
	}
	return refs, nil
}

func (r *userRepository) AllInstructors(ctx context.Context) ([]models.UserRef, error) {
	var refs []models.UserRef
	err := r.instructorProjection(ctx).Order(pagination.OrderBy(userOrder)).Scan(&refs).Error
	if err != nil {
		return nil, classify(err, "instructor")
	}
	return refs, nil
}

// instructorProjection selects id/name/email only; credential-bearing
// columns never leave this repository through instructor listings.
func (r *userRepository) instructorProjection(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role = ?", models.RoleInstructor)
}

// applyKeyset adds the strictly-after predicate and deterministic order.
func applyKeyset(query *gorm.DB, orders []pagination.Order, after *pagination.Cursor) (*gorm.DB, error) {
	if after != nil {
		where, args, err := pagination.WhereAfter(orders, after.Keys)
		if err != nil {
			return nil, err
		}
		query = query.Where(where, args...)
	}
	return query.Order(pagination.OrderBy(orders)), nil
}
