package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
	"github.com/internlink/internship-service/internal/validator"
)

type TaskHandler struct {
	BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService, logger utils.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		taskService: taskService,
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req services.TaskCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, "Task assigned", task)
}

func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.TaskProgressRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	task, err := h.taskService.UpdateProgress(c.Request.Context(), CurrentUser(c), id, req.Progress)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Progress updated", task)
}

func (h *TaskHandler) Cancel(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	task, err := h.taskService.Cancel(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Task cancelled", task)
}

func (h *TaskHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)
	tasks, err := h.taskService.ListByStudent(c.Request.Context(), user, user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", tasks)
}

func (h *TaskHandler) ListByStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	tasks, err := h.taskService.ListByStudent(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", tasks)
}

func (h *TaskHandler) ListByInternship(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	tasks, err := h.taskService.ListByInternship(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", tasks)
}
