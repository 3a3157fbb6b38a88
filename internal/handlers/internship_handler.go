package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
)

type InternshipHandler struct {
	BaseHandler
	internshipService services.InternshipService
}

func NewInternshipHandler(internshipService services.InternshipService, logger utils.Logger) *InternshipHandler {
	return &InternshipHandler{
		BaseHandler:       NewBaseHandler(logger),
		internshipService: internshipService,
	}
}

func (h *InternshipHandler) Create(c *gin.Context) {
	var req services.InternshipCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	internship, err := h.internshipService.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, "Internship created", internship)
}

func (h *InternshipHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	internship, err := h.internshipService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", internship)
}

func (h *InternshipHandler) List(c *gin.Context) {
	internships, total, err := h.internshipService.List(c.Request.Context(), h.parseInternshipFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", gin.H{"internships": internships, "total": total})
}

func (h *InternshipHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)
	internships, err := h.internshipService.ListByMentor(c.Request.Context(), user, user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", internships)
}

func (h *InternshipHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var update models.InternshipUpdate
	if err := c.ShouldBind(&update); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	internship, err := h.internshipService.Update(c.Request.Context(), CurrentUser(c), id, &update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Internship updated", internship)
}

func (h *InternshipHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting internship", "internship_id", id)

	if err := h.internshipService.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Internship and all associated data deleted", nil)
}

func (h *InternshipHandler) parseInternshipFilters(c *gin.Context) repositories.InternshipFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	filters := repositories.InternshipFilters{
		Query:     strings.TrimSpace(c.Query("q")),
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	// Listings default to active postings; only an explicit all=true widens.
	filters.ActiveOnly = c.Query("all") != "true"
	return filters
}
