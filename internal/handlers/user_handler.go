package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/export"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/services"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListUsers lists users filtered by role and status, keyset-paginated.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var params models.UserListParams
	if !h.bindQuery(c, &params) {
		return
	}

	page, err := h.service.List(c.Request.Context(), &params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateUser applies a partial update to name, email, status or roles.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListInstructors lists the instructor roster with optional prefix search
// on name or email.
func (h *UserHandler) ListInstructors(c *gin.Context) {
	var params models.InstructorListParams
	if !h.bindQuery(c, &params) {
		return
	}

	page, err := h.service.ListInstructors(c.Request.Context(), &params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ExportInstructors streams the full roster as an xlsx attachment.
func (h *UserHandler) ExportInstructors(c *gin.Context) {
	instructors, err := h.service.ExportInstructors(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	workbook, err := export.InstructorsWorkbook(instructors)
	if err != nil {
		h.logger.Error("building roster workbook failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "unexpected",
			Message: "an internal error occurred",
		})
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("writing roster workbook failed", "error", err)
	}
}
