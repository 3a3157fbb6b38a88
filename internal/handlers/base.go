package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
	"github.com/internlink/internship-service/internal/validator"
)

// Every endpoint answers with this envelope: success plus either a data
// payload and optional message, or an error string.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

func (h *BaseHandler) respondError(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Success: false, Error: message, Details: details})
}

// parseIDParam parses a numeric path parameter. On failure it writes the
// 400 itself and returns 0; 0 is never a valid entity ID.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "Invalid "+param, nil)
		return 0
	}
	return uint(id)
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message; the detail goes to
// the log, not the client.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.respondError(c, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.respondError(c, http.StatusBadRequest, validationError.Error(), nil)
		return
	}

	if services.IsAuthenticationError(err) {
		h.respondError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.respondError(c, http.StatusForbidden, "Access denied", map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	var notFoundError *services.NotFoundError
	if errors.As(err, &notFoundError) {
		h.respondError(c, http.StatusNotFound, notFoundError.Error(), nil)
		return
	}

	var transitionError *services.InvalidTransitionError
	if errors.As(err, &transitionError) {
		h.respondError(c, http.StatusConflict, transitionError.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, services.ErrDuplicateApplication):
		h.respondError(c, http.StatusConflict, "You have already applied to this internship", nil)
	case errors.Is(err, services.ErrEmailTaken):
		h.respondError(c, http.StatusConflict, "Email is already registered", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
	default:
		utils.FromContext(c, h.logger).Error("request failed", "error", err, "path", c.Request.URL.Path)
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
