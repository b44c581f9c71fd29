package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/services"
)

type AppointmentHandler struct {
	BaseHandler
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListAppointments returns all appointments with the creator projection.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req models.AppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appointment, err := h.service.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appointment, err := h.service.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
