package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/services"
)

type ForumHandler struct {
	BaseHandler
	service services.ForumService
}

func NewForumHandler(service services.ForumService, logger *slog.Logger) *ForumHandler {
	return &ForumHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== TOPICS =====

// ListTopics returns the topic feed, newest first. Instructor-only
// callers see only topics in their assigned areas.
func (h *ForumHandler) ListTopics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var params models.TopicListParams
	if !h.bindQuery(c, &params) {
		return
	}

	page, err := h.service.ListTopics(c.Request.Context(), caller, &params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ForumHandler) CreateTopic(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req models.TopicCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	topic, err := h.service.CreateTopic(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

func (h *ForumHandler) GetTopic(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	topic, err := h.service.GetTopic(c.Request.Context(), caller, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

func (h *ForumHandler) UpdateTopic(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.TopicUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	topic, err := h.service.UpdateTopic(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

func (h *ForumHandler) DeleteTopic(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTopic(c.Request.Context(), caller, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== POSTS =====

func (h *ForumHandler) ListPosts(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var params models.PostListParams
	if !h.bindQuery(c, &params) {
		return
	}

	page, err := h.service.ListPosts(c.Request.Context(), caller, topicID, params.Cursor, params.Limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.PostCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), caller, topicID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *ForumHandler) GetPost(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := h.parseIDParam(c, "postId")
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), caller, topicID, postID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *ForumHandler) UpdatePost(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := h.parseIDParam(c, "postId")
	if !ok {
		return
	}

	var req models.PostUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), caller, topicID, postID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *ForumHandler) DeletePost(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := h.parseIDParam(c, "postId")
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), caller, topicID, postID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== REACTIONS =====

func (h *ForumHandler) GetReactions(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := h.parseIDParam(c, "postId")
	if !ok {
		return
	}

	counts, err := h.service.ReactionCounts(c.Request.Context(), caller, topicID, postID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// SetReaction records the caller's like or dislike; a second reaction
// from the same caller replaces the first.
func (h *ForumHandler) SetReaction(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := h.parseIDParam(c, "postId")
	if !ok {
		return
	}

	var req models.ReactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.service.SetReaction(c.Request.Context(), caller, topicID, postID, req.Type); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": req.Type})
}

func (h *ForumHandler) RemoveReaction(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	topicID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := h.parseIDParam(c, "postId")
	if !ok {
		return
	}

	if err := h.service.RemoveReaction(c.Request.Context(), caller, topicID, postID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
