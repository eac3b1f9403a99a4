package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("status must be todo, in_progress, or done")
)

// TaskService manages per-project task items. Status changes drive the
// owning project's progress recomputation and task_done notifications.
type TaskService struct {
	tasks         repository.TaskRepository
	projects      repository.ProjectRepository
	notifications *NotificationService
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, notifications *NotificationService) *TaskService {
	return &TaskService{
		tasks:         tasks,
		projects:      projects,
		notifications: notifications,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID   uint
	Title       string
	Description string
	Status      string
	AssigneeID  *uint
	DueDate     *time.Time
}

func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
	}

	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// A task created with tasks on the books shifts the ratio immediately.
	if err := s.RecalculateProgress(task.ProjectID); err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		s.notifications.notifyQuietly(*task.AssigneeID, models.NotificationTaskDone, map[string]interface{}{
			"task_id":    task.ID,
			"task_title": task.Title,
			"project_id": task.ProjectID,
		})
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	AssigneeID  *uint
	DueDate     *time.Time
}

// Update applies the partial update. When the status actually changes, the
// project's progress is recomputed; when the new status is done, the project
// owner is notified.
func (s *TaskService) Update(taskID uint, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	oldStatus := task.Status

	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if task.Status != oldStatus {
		if err := s.RecalculateProgress(task.ProjectID); err != nil {
			return nil, err
		}

		if task.Status == models.TaskStatusDone {
			project, err := s.projects.FindByID(task.ProjectID)
			if err == nil {
				s.notifications.notifyQuietly(project.CreatedBy, models.NotificationTaskDone, map[string]interface{}{
					"task_id":     task.ID,
					"task_title":  task.Title,
					"project_id":  task.ProjectID,
					"assignee_id": task.AssigneeID,
				})
			}
		}
	}

	return task, nil
}

func (s *TaskService) Delete(taskID uint) error {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.tasks.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return s.RecalculateProgress(task.ProjectID)
}

func (s *TaskService) ListByProject(projectID uint) ([]models.Task, error) {
	return s.tasks.ListByProject(projectID)
}

// RecalculateProgress re-scans every task of the project and writes
// 100 * done / total (0 when the project has no tasks). The full scan stays
// correct under concurrent edits and arbitrary insert/delete order.
func (s *TaskService) RecalculateProgress(projectID uint) error {
	tasks, err := s.tasks.ListByProject(projectID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	progress := 0.0
	if len(tasks) > 0 {
		done := 0
		for _, task := range tasks {
			if task.Status == models.TaskStatusDone {
				done++
			}
		}
		progress = float64(done) / float64(len(tasks)) * 100
	}

	if err := s.projects.UpdateProgress(projectID, progress); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// AddComment attaches a free-text comment to a task.
func (s *TaskService) AddComment(taskID, authorID uint, body string) (*models.TaskComment, error) {
	if _, err := s.tasks.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.TaskComment{
		TaskID:   taskID,
		AuthorID: authorID,
		Body:     body,
	}

	if err := s.tasks.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *TaskService) ListComments(taskID uint) ([]models.TaskComment, error) {
	if _, err := s.tasks.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return s.tasks.ListComments(taskID)
}
