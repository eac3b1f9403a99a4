package types

import (
	"encoding/json"
	"time"

	"github.com/teamup-dev/teamup/internal/models"
)

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Skills    []string  `json:"skills"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Skills:    user.Skills,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

type ProjectResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatedBy       uint       `json:"created_by"`
	Status          string     `json:"status"`
	TechStack       []string   `json:"tech_stack"`
	ProgressPercent float64    `json:"progress_percent"`
	Prize           string     `json:"prize,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	HackathonID     *uint      `json:"hackathon_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:              project.ID,
		Title:           project.Title,
		Description:     project.Description,
		CreatedBy:       project.CreatedBy,
		Status:          project.Status,
		TechStack:       project.TechStack,
		ProgressPercent: project.ProgressPercent,
		Prize:           project.Prize,
		Deadline:        project.Deadline,
		MaxParticipants: project.MaxParticipants,
		HackathonID:     project.HackathonID,
		CreatedAt:       project.CreatedAt,
	}
}

type HackathonResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Prize           string    `json:"prize,omitempty"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	CreatedBy       uint      `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewHackathonResponse(hackathon models.Hackathon) HackathonResponse {
	return HackathonResponse{
		ID:              hackathon.ID,
		Title:           hackathon.Title,
		Description:     hackathon.Description,
		StartAt:         hackathon.StartAt,
		EndAt:           hackathon.EndAt,
		Prize:           hackathon.Prize,
		MaxParticipants: hackathon.MaxParticipants,
		CreatedBy:       hackathon.CreatedBy,
		CreatedAt:       hackathon.CreatedAt,
	}
}

type ApplicationResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	TargetID    uint      `json:"target_id"`
	ApplicantID uint      `json:"applicant_id"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewApplicationResponse(app models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		Type:        app.Type,
		TargetID:    app.TargetID,
		ApplicantID: app.ApplicantID,
		Message:     app.Message,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

type MembershipResponse struct {
	ID         uint      `json:"id"`
	ProjectID  uint      `json:"project_id"`
	UserID     uint      `json:"user_id"`
	RoleInTeam string    `json:"role_in_team"`
	Status     string    `json:"status"`
	InvitedBy  *uint     `json:"invited_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewMembershipResponse(membership models.Membership) MembershipResponse {
	return MembershipResponse{
		ID:         membership.ID,
		ProjectID:  membership.ProjectID,
		UserID:     membership.UserID,
		RoleInTeam: membership.RoleInTeam,
		Status:     membership.Status,
		InvitedBy:  membership.InvitedBy,
		CreatedAt:  membership.CreatedAt,
	}
}

type TaskResponse struct {
	ID          uint       `json:"id"`
	ProjectID   uint       `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	AssigneeID  *uint      `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssigneeID:  task.AssigneeID,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type TaskCommentResponse struct {
	ID        uint      `json:"id"`
	TaskID    uint      `json:"task_id"`
	AuthorID  uint      `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTaskCommentResponse(comment models.TaskComment) TaskCommentResponse {
	return TaskCommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

type NotificationResponse struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewNotificationResponse(notification models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Payload:   json.RawMessage(notification.Payload),
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}
