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

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// ===== PROFILE =====

func (h *UserHandler) GetProfile(c *gin.Context) {
	user := CurrentUser(c)
	profile, err := h.userService.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBind(&update); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user := CurrentUser(c)
	profile, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, &update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Profile updated", profile)
}

func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Could not read uploaded file", nil)
		return
	}
	defer src.Close()

	user := CurrentUser(c)
	profile, err := h.userService.SetProfilePicture(c.Request.Context(), user.ID, file.Filename, src)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Profile picture updated", profile)
}

func (h *UserHandler) RemoveProfilePicture(c *gin.Context) {
	user := CurrentUser(c)
	if err := h.userService.RemoveProfilePicture(c.Request.Context(), user.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Profile picture removed", nil)
}

// ===== ADMIN =====

func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := h.parseUserFilters(c)

	users, total, err := h.userService.List(c.Request.Context(), CurrentUser(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", gin.H{"users": users, "total": total})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var update models.AdminUserUpdate
	if err := c.ShouldBind(&update); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	user, err := h.userService.AdminUpdate(c.Request.Context(), CurrentUser(c), id, &update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "User updated", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting user", "target_id", id)

	if err := h.userService.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "User and all associated data deleted", nil)
}

func (h *UserHandler) SystemStats(c *gin.Context) {
	stats, err := h.userService.SystemStats(c.Request.Context(), CurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", stats)
}

func (h *UserHandler) MentorStats(c *gin.Context) {
	stats, err := h.userService.MentorStats(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", stats)
}

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	filters := repositories.UserFilters{
		Query:     strings.TrimSpace(c.Query("q")),
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if role := c.Query("role"); role != "" {
		userRole := models.UserRole(role)
		filters.Role = &userRole
	}
	return filters
}
