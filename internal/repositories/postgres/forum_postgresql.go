package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
)

// Topics and posts page newest-first; created_at alone is not unique, so
// id rides along to keep page boundaries stable under ties.
var (
	topicOrder = []pagination.Order{
		{Column: "topics.created_at", Desc: true},
		{Column: "topics.id", Desc: true},
	}
	postOrder = []pagination.Order{
		{Column: "forum_posts.created_at", Desc: true},
		{Column: "forum_posts.id", Desc: true},
	}
)

// ===== TOPICS =====

type topicRepository struct {
	db *gorm.DB
}

func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	return classify(r.db.WithContext(ctx).Create(topic).Error, "topic")
}

func (r *topicRepository) GetByID(ctx context.Context, id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		return nil, classify(err, "topic")
	}
	return &topic, nil
}

func (r *topicRepository) Update(ctx context.Context, topic *models.Topic) error {
	err := r.db.WithContext(ctx).Model(topic).
		Select("Title", "Description").
		Updates(topic).Error
	return classify(err, "topic")
}

func (r *topicRepository) Delete(ctx context.Context, id uint) error {
	// Posts and their reactions go with the topic atomically.
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.ForumPost{}).
			Where("topic_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("forum_post_id IN ?", postIDs).
				Delete(&models.PostReaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("topic_id = ?", id).
				Delete(&models.ForumPost{}).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.Topic{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "topic")
}

func (r *topicRepository) List(ctx context.Context, after *pagination.Cursor, limit int) ([]*models.Topic, error) {
	query := r.db.WithContext(ctx).Model(&models.Topic{})
	return r.fetch(query, after, limit)
}

func (r *topicRepository) ListForInstructor(ctx context.Context, instructorID uint, after *pagination.Cursor, limit int) ([]*models.Topic, error) {
	query := r.db.WithContext(ctx).Model(&models.Topic{}).
		Joins("JOIN user_to_professional_area utpa ON utpa.professional_area_id = topics.professional_area_id").
		Where("utpa.user_id = ?", instructorID)
	return r.fetch(query, after, limit)
}

func (r *topicRepository) fetch(query *gorm.DB, after *pagination.Cursor, limit int) ([]*models.Topic, error) {
	after, err := normalizeTimeCursor(after)
	if err != nil {
		return nil, err
	}
	query, err = applyKeyset(query, topicOrder, after)
	if err != nil {
		return nil, err
	}
	var topics []*models.Topic
	if err := query.Limit(limit + 1).Find(&topics).Error; err != nil {
		return nil, classify(err, "topic")
	}
	return topics, nil
}

// normalizeTimeCursor coerces the leading created_at key back into a
// timestamp so the predicate compares times, not strings.
func normalizeTimeCursor(after *pagination.Cursor) (*pagination.Cursor, error) {
	if after == nil {
		return nil, nil
	}
	if len(after.Keys) != 2 {
		return nil, apperrors.ValidationMsg("cursor", "invalid cursor token")
	}
	ts, err := pagination.ParseTimeKey(after.Keys[0])
	if err != nil {
		return nil, err
	}
	return &pagination.Cursor{Keys: []any{ts, after.Keys[1]}}, nil
}

// ===== POSTS =====

type postRepository struct {
	db *gorm.DB
}

func (r *postRepository) Create(ctx context.Context, post *models.ForumPost) error {
	return classify(r.db.WithContext(ctx).Create(post).Error, "post")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, classify(err, "post")
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.ForumPost) error {
	err := r.db.WithContext(ctx).Model(post).
		Select("Content").
		Updates(post).Error
	return classify(err, "post")
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("forum_post_id = ?", id).
			Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ForumPost{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "post")
}

func (r *postRepository) ListByTopic(ctx context.Context, topicID uint, after *pagination.Cursor, limit int) ([]*models.ForumPost, error) {
	after, err := normalizeTimeCursor(after)
	if err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("topic_id = ?", topicID)
	query, err = applyKeyset(query, postOrder, after)
	if err != nil {
		return nil, err
	}
	var posts []*models.ForumPost
	if err := query.Limit(limit + 1).Find(&posts).Error; err != nil {
		return nil, classify(err, "post")
	}
	return posts, nil
}

// ===== REACTIONS =====

type reactionRepository struct {
	db *gorm.DB
}

func (r *reactionRepository) Upsert(ctx context.Context, reaction *models.PostReaction) error {
	// Insert-or-update keyed on the (user, post) unique index. A concurrent
	// double-insert collapses into an update instead of surfacing an error.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "forum_post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "updated_at"}),
		}).
		Create(reaction).Error
	return classify(err, "reaction")
}

func (r *reactionRepository) Delete(ctx context.Context, userID, postID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND forum_post_id = ?", userID, postID).
		Delete(&models.PostReaction{})
	if result.Error != nil {
		return classify(result.Error, "reaction")
	}
	if result.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "reaction")
	}
	return nil
}

func (r *reactionRepository) Counts(ctx context.Context, postID uint) (*models.ReactionCounts, error) {
	counts := &models.ReactionCounts{}
	err := r.db.WithContext(ctx).
		Model(&models.PostReaction{}).
		Where("forum_post_id = ? AND type = ?", postID, models.ReactionLike).
		Count(&counts.Likes).Error
	if err != nil {
		return nil, classify(err, "reaction")
	}
	err = r.db.WithContext(ctx).
		Model(&models.PostReaction{}).
		Where("forum_post_id = ? AND type = ?", postID, models.ReactionDislike).
		Count(&counts.Dislikes).Error
	if err != nil {
		return nil, classify(err, "reaction")
	}
	return counts, nil
}
