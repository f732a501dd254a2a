package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/utils"
)

type TaskHandler struct {
	tasks     *services.TaskService
	lifecycle *services.LifecycleService
}

func NewTaskHandler(tasks *services.TaskService, lifecycle *services.LifecycleService) *TaskHandler {
	return &TaskHandler{tasks: tasks, lifecycle: lifecycle}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), utils.GetOptionalPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListOperatorTasks returns the tasks assigned to :user_id
func (h *TaskHandler) ListOperatorTasks(c *gin.Context) {
	tasks, err := h.tasks.ByOperator(c.Request.Context(), middleware.GetIDParam(c, "user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), middleware.GetIDParam(c, "id"), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) StartTask(c *gin.Context) {
	task, err := h.lifecycle.StartTask(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskStarted(task))
}

// CompleteTask also awards the task's operator one performance point
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	result, err := h.lifecycle.CompleteTask(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskCompleted(result))
}

func (h *TaskHandler) RejectTask(c *gin.Context) {
	var req dto.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.lifecycle.RejectTask(c.Request.Context(), middleware.GetIDParam(c, "id"), req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskRejected(result))
}
