package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/services"
)

// ErrorResponse is the uniform error envelope: error carries the machine
// kind, message the human text, fields the per-field validation detail.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// handleServiceError is the single place service error kinds become HTTP
// statuses. Unexpected errors log the cause and return a generic body.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	resp := ErrorResponse{Error: string(kind)}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Fields = appErr.Fields
	}

	switch kind {
	case apperrors.KindValidation:
		c.JSON(http.StatusBadRequest, resp)
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, resp)
	case apperrors.KindForbidden:
		c.JSON(http.StatusForbidden, resp)
	case apperrors.KindInactive:
		c.JSON(http.StatusForbidden, resp)
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, resp)
	default:
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   string(apperrors.KindUnexpected),
			Message: "an internal error occurred",
		})
	}
}

func (h *BaseHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindValidation),
			Message: "invalid request payload",
		})
		return false
	}
	return true
}

func (h *BaseHandler) bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindValidation),
			Message: "invalid query parameters",
		})
		return false
	}
	return true
}

func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindValidation),
			Message: "invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// caller returns the identity resolved by the auth middleware. Routes
// behind AuthMiddleware always have one; its absence is a routing bug.
func (h *BaseHandler) caller(c *gin.Context) (services.Caller, bool) {
	value, exists := c.Get(contextCaller)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return services.Caller{}, false
	}
	return value.(services.Caller), true
}
