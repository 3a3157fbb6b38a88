package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
	"github.com/internlink/internship-service/internal/validator"
)

type ApplicationHandler struct {
	BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        NewBaseHandler(logger),
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req services.ApplicationCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	application, err := h.applicationService.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, "Application submitted", application)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.applicationService.Withdraw(c.Request.Context(), CurrentUser(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Application withdrawn", nil)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ApplicationStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	application, err := h.applicationService.UpdateStatus(
		c.Request.Context(), CurrentUser(c), id, models.ApplicationStatus(req.Status))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Application status updated", application)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)
	applications, err := h.applicationService.ListByStudent(c.Request.Context(), user, user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", applications)
}

func (h *ApplicationHandler) ListForMentor(c *gin.Context) {
	applications, err := h.applicationService.ListForMentor(c.Request.Context(), CurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", applications)
}

func (h *ApplicationHandler) ListByInternship(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	applications, err := h.applicationService.ListByInternship(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", applications)
}
