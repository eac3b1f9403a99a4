package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	ProjectID   uint       `json:"project_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssigneeID  *uint      `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	AssigneeID  *uint      `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	task, err := h.tasks.Create(services.CreateTaskInput{
		ProjectID:   body.ProjectID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			httperr.NotFound(ctx, "Project not found")
		case errors.Is(err, services.ErrInvalidTaskStatus):
			httperr.BadRequest(ctx, "Invalid task status")
		default:
			respondStorageError(ctx, err, "Failed to create task")
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(*task))
}

func (h *TaskHandler) ListByProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByProject(projectID)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve tasks")
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	taskID, ok := parseIDParam(ctx, "task_id")
	if !ok {
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	task, err := h.tasks.Update(taskID, services.UpdateTaskInput{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			httperr.NotFound(ctx, "Task not found")
		case errors.Is(err, services.ErrInvalidTaskStatus):
			httperr.BadRequest(ctx, "Invalid task status")
		default:
			respondStorageError(ctx, err, "Failed to update task")
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	taskID, ok := parseIDParam(ctx, "task_id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			httperr.NotFound(ctx, "Task not found")
			return
		}
		respondStorageError(ctx, err, "Failed to delete task")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *TaskHandler) AddComment(ctx *gin.Context) {
	taskID, ok := parseIDParam(ctx, "task_id")
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	var body CreateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	comment, err := h.tasks.AddComment(taskID, userID, body.Body)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			httperr.NotFound(ctx, "Task not found")
			return
		}
		respondStorageError(ctx, err, "Failed to add comment")
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskCommentResponse(*comment))
}

func (h *TaskHandler) ListComments(ctx *gin.Context) {
	taskID, ok := parseIDParam(ctx, "task_id")
	if !ok {
		return
	}

	comments, err := h.tasks.ListComments(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			httperr.NotFound(ctx, "Task not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve comments")
		return
	}

	response := make([]types.TaskCommentResponse, 0, len(comments))
	for _, comment := range comments {
		response = append(response, types.NewTaskCommentResponse(comment))
	}

	ctx.JSON(http.StatusOK, response)
}
