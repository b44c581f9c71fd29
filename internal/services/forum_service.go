package services

import (
	"context"
	"log/slog"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/events"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/validator"
)

// defaultTopicLimit keeps the topic feed shorter than the other listings.
const defaultTopicLimit = 15

type forumService struct {
	repo        repositories.Repository
	assignments AssignmentService
	publisher   events.Publisher
	codec       *pagination.Codec
	logger      *slog.Logger
	validator   *validator.Validator
}

func NewForumService(
	repo repositories.Repository,
	assignments AssignmentService,
	publisher events.Publisher,
	codec *pagination.Codec,
	logger *slog.Logger,
	v *validator.Validator,
) ForumService {
	return &forumService{
		repo:        repo,
		assignments: assignments,
		publisher:   publisher,
		codec:       codec,
		logger:      logger,
		validator:   v,
	}
}

// ===== TOPICS =====

func (s *forumService) ListTopics(ctx context.Context, caller Caller, params *models.TopicListParams) (*models.Page[*models.Topic], error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	after, err := s.decodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	limit := pagination.ClampLimit(params.Limit, defaultTopicLimit)

	var topics []*models.Topic
	if caller.IsInstructorOnly() {
		topics, err = s.repo.Topic().ListForInstructor(ctx, caller.ID, after, limit)
	} else {
		topics, err = s.repo.Topic().List(ctx, after, limit)
	}
	if err != nil {
		s.logger.Error("listing topics failed", "user_id", caller.ID, "error", err)
		return nil, err
	}

	items, next, err := pagination.BuildPage(topics, limit, s.codec, topicKey)
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return &models.Page[*models.Topic]{Items: items, NextCursor: next}, nil
}

func (s *forumService) CreateTopic(ctx context.Context, caller Caller, req *models.TopicCreateRequest) (*models.Topic, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Area().GetByID(ctx, req.ProfessionalAreaID); err != nil {
		return nil, err
	}
	if err := s.ensureAreaAccess(ctx, caller, req.ProfessionalAreaID); err != nil {
		return nil, err
	}

	topic := &models.Topic{
		Title:              req.Title,
		Description:        req.Description,
		UserID:             caller.ID,
		ProfessionalAreaID: req.ProfessionalAreaID,
	}
	if err := s.repo.Topic().Create(ctx, topic); err != nil {
		s.logger.Error("creating topic failed", "user_id", caller.ID, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTopicCreated, events.TopicCreatedPayload{
		TopicID:            topic.ID,
		Title:              topic.Title,
		UserID:             topic.UserID,
		ProfessionalAreaID: topic.ProfessionalAreaID,
	})
	s.logger.Info("topic created", "topic_id", topic.ID, "user_id", caller.ID)
	return topic, nil
}

func (s *forumService) GetTopic(ctx context.Context, caller Caller, id uint) (*models.Topic, error) {
	return s.EnsureTopicAccess(ctx, caller, id)
}

func (s *forumService) UpdateTopic(ctx context.Context, caller Caller, id uint, req *models.TopicUpdateRequest) (*models.Topic, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	topic, err := s.EnsureTopicAccess(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(topic.UserID, caller, "only the topic creator may modify it"); err != nil {
		return nil, err
	}

	topic.Title = req.Title
	if err := s.repo.Topic().Update(ctx, topic); err != nil {
		s.logger.Error("updating topic failed", "topic_id", id, "error", err)
		return nil, err
	}
	return topic, nil
}

// DeleteTopic cascades to the topic's posts and their reactions; the
// repository runs the deletes in one transaction.
func (s *forumService) DeleteTopic(ctx context.Context, caller Caller, id uint) error {
	topic, err := s.EnsureTopicAccess(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := ensureOwner(topic.UserID, caller, "only the topic creator may delete it"); err != nil {
		return err
	}

	if err := s.repo.Topic().Delete(ctx, id); err != nil {
		s.logger.Error("deleting topic failed", "topic_id", id, "error", err)
		return err
	}
	s.logger.Info("topic deleted", "topic_id", id, "user_id", caller.ID)
	return nil
}

// EnsureTopicAccess resolves the topic first so a missing topic reads as
// not found rather than forbidden, then applies the area gate to
// instructor-only callers.
func (s *forumService) EnsureTopicAccess(ctx context.Context, caller Caller, topicID uint) (*models.Topic, error) {
	topic, err := s.repo.Topic().GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAreaAccess(ctx, caller, topic.ProfessionalAreaID); err != nil {
		return nil, err
	}
	return topic, nil
}

// ===== POSTS =====

func (s *forumService) ListPosts(ctx context.Context, caller Caller, topicID uint, cursor string, limit int) (*models.Page[*models.ForumPost], error) {
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return nil, err
	}

	after, err := s.decodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	limit = pagination.ClampLimit(limit, pagination.DefaultLimit)

	posts, err := s.repo.Post().ListByTopic(ctx, topicID, after, limit)
	if err != nil {
		s.logger.Error("listing posts failed", "topic_id", topicID, "error", err)
		return nil, err
	}

	items, next, err := pagination.BuildPage(posts, limit, s.codec, postKey)
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return &models.Page[*models.ForumPost]{Items: items, NextCursor: next}, nil
}

func (s *forumService) CreatePost(ctx context.Context, caller Caller, topicID uint, req *models.PostCreateRequest) (*models.ForumPost, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return nil, err
	}

	post := &models.ForumPost{
		Content: req.Content,
		UserID:  caller.ID,
		TopicID: topicID,
	}
	if err := s.repo.Post().Create(ctx, post); err != nil {
		s.logger.Error("creating post failed", "topic_id", topicID, "user_id", caller.ID, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventPostCreated, events.PostCreatedPayload{
		PostID:  post.ID,
		TopicID: post.TopicID,
		UserID:  post.UserID,
	})
	return post, nil
}

func (s *forumService) GetPost(ctx context.Context, caller Caller, topicID, postID uint) (*models.ForumPost, error) {
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return nil, err
	}
	return s.postInTopic(ctx, topicID, postID)
}

func (s *forumService) UpdatePost(ctx context.Context, caller Caller, topicID, postID uint, req *models.PostUpdateRequest) (*models.ForumPost, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return nil, err
	}

	post, err := s.postInTopic(ctx, topicID, postID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(post.UserID, caller, "only the post author may modify it"); err != nil {
		return nil, err
	}

	post.Content = req.Content
	if err := s.repo.Post().Update(ctx, post); err != nil {
		s.logger.Error("updating post failed", "post_id", postID, "error", err)
		return nil, err
	}
	return post, nil
}

func (s *forumService) DeletePost(ctx context.Context, caller Caller, topicID, postID uint) error {
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return err
	}

	post, err := s.postInTopic(ctx, topicID, postID)
	if err != nil {
		return err
	}
	if err := ensureOwner(post.UserID, caller, "only the post author may delete it"); err != nil {
		return err
	}

	if err := s.repo.Post().Delete(ctx, postID); err != nil {
		s.logger.Error("deleting post failed", "post_id", postID, "error", err)
		return err
	}
	return nil
}

// ===== REACTIONS =====

func (s *forumService) ReactionCounts(ctx context.Context, caller Caller, topicID, postID uint) (*models.ReactionCounts, error) {
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return nil, err
	}
	if _, err := s.postInTopic(ctx, topicID, postID); err != nil {
		return nil, err
	}
	return s.repo.Reaction().Counts(ctx, postID)
}

// SetReaction records the caller's reaction; reacting again replaces the
// previous reaction in place, so a user never holds two.
func (s *forumService) SetReaction(ctx context.Context, caller Caller, topicID, postID uint, reactionType models.ReactionType) error {
	if !reactionType.Valid() {
		return apperrors.ValidationMsg("type", "must be like or dislike")
	}
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return err
	}
	if _, err := s.postInTopic(ctx, topicID, postID); err != nil {
		return err
	}

	reaction := &models.PostReaction{
		UserID:      caller.ID,
		ForumPostID: postID,
		Type:        reactionType,
	}
	if err := s.repo.Reaction().Upsert(ctx, reaction); err != nil {
		s.logger.Error("setting reaction failed", "post_id", postID, "user_id", caller.ID, "error", err)
		return err
	}
	return nil
}

func (s *forumService) RemoveReaction(ctx context.Context, caller Caller, topicID, postID uint) error {
	if _, err := s.EnsureTopicAccess(ctx, caller, topicID); err != nil {
		return err
	}
	if _, err := s.postInTopic(ctx, topicID, postID); err != nil {
		return err
	}
	return s.repo.Reaction().Delete(ctx, caller.ID, postID)
}

// ===== HELPERS =====

// ensureAreaAccess applies the area gate: only instructor-only callers
// are restricted, and only to areas they are assigned to.
func (s *forumService) ensureAreaAccess(ctx context.Context, caller Caller, areaID uint) error {
	if !caller.IsInstructorOnly() {
		return nil
	}
	ok, err := s.assignments.HasAccess(ctx, caller.ID, areaID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbidden("you are not assigned to this professional area")
	}
	return nil
}

// postInTopic resolves a post and verifies it belongs to the topic in the
// URL; a post reached through the wrong topic reads as not found.
func (s *forumService) postInTopic(ctx context.Context, topicID, postID uint) (*models.ForumPost, error) {
	post, err := s.repo.Post().GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.TopicID != topicID {
		return nil, apperrors.NotFound("post")
	}
	return post, nil
}

func (s *forumService) publish(ctx context.Context, eventType string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("publishing forum event failed", "event_type", eventType, "error", err)
	}
}

func (s *forumService) decodeCursor(token string) (*pagination.Cursor, error) {
	if token == "" {
		return nil, nil
	}
	return s.codec.Decode(token)
}

func topicKey(t *models.Topic) []any {
	return []any{pagination.TimeKey(t.CreatedAt), int64(t.ID)}
}

func postKey(p *models.ForumPost) []any {
	return []any{pagination.TimeKey(p.CreatedAt), int64(p.ID)}
}
