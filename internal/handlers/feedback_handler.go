package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
)

type FeedbackHandler struct {
	BaseHandler
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService, logger utils.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler:     NewBaseHandler(logger),
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req services.FeedbackCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	feedback, err := h.feedbackService.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, "Feedback submitted", feedback)
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var update models.FeedbackUpdate
	if err := c.ShouldBind(&update); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	feedback, err := h.feedbackService.Update(c.Request.Context(), CurrentUser(c), id, &update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Feedback updated", feedback)
}

func (h *FeedbackHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)

	// Students see feedback about them, mentors see feedback they wrote.
	if user.Role == models.RoleStudent {
		feedback, err := h.feedbackService.ListByStudent(c.Request.Context(), user, user.ID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		h.respond(c, http.StatusOK, "", feedback)
		return
	}

	feedback, err := h.feedbackService.ListByMentor(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", feedback)
}

func (h *FeedbackHandler) ListByStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	feedback, err := h.feedbackService.ListByStudent(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", feedback)
}

func (h *FeedbackHandler) ListByInternship(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	feedback, err := h.feedbackService.ListByInternship(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", feedback)
}
