package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/services"
)

type AreaHandler struct {
	BaseHandler
	areas       services.AreaService
	assignments services.AssignmentService
}

func NewAreaHandler(areas services.AreaService, assignments services.AssignmentService, logger *slog.Logger) *AreaHandler {
	return &AreaHandler{
		BaseHandler: NewBaseHandler(logger),
		areas:       areas,
		assignments: assignments,
	}
}

// ===== PROFESSIONAL AREAS =====

func (h *AreaHandler) CreateArea(c *gin.Context) {
	var req models.AreaCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	area, err := h.areas.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, area)
}

func (h *AreaHandler) GetArea(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	area, err := h.areas.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) UpdateArea(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AreaUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	area, err := h.areas.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) DeleteArea(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.areas.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AreaHandler) ListAreas(c *gin.Context) {
	var params models.AreaListParams
	if !h.bindQuery(c, &params) {
		return
	}

	page, err := h.areas.List(c.Request.Context(), params.Cursor, params.Limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// AreaInstructors lists the instructors assigned to an area, as the
// id/name/email projection.
func (h *AreaHandler) AreaInstructors(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	instructors, err := h.areas.Instructors(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"instructors": instructors})
}

// ===== INSTRUCTOR ASSIGNMENTS =====

// AssignInstructor grants an instructor access to an area. Repeating an
// existing assignment succeeds without change.
func (h *AreaHandler) AssignInstructor(c *gin.Context) {
	instructorID, ok := h.parseIDParam(c, "instructorId")
	if !ok {
		return
	}
	areaID, ok := h.parseIDParam(c, "areaId")
	if !ok {
		return
	}

	if err := h.assignments.Assign(c.Request.Context(), instructorID, areaID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assigned": true})
}

// UnassignInstructor revokes the assignment; revoking a missing one
// succeeds without change.
func (h *AreaHandler) UnassignInstructor(c *gin.Context) {
	instructorID, ok := h.parseIDParam(c, "instructorId")
	if !ok {
		return
	}
	areaID, ok := h.parseIDParam(c, "areaId")
	if !ok {
		return
	}

	if err := h.assignments.Unassign(c.Request.Context(), instructorID, areaID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assigned": false})
}
