package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler backs the /admin surface. Every route behind it runs after
// RequireAdmin.
type AdminHandler struct {
	applications *services.ApplicationService
	projects     *services.ProjectService
	users        repository.UserRepository
	stats        repository.StatsRepository
}

func NewAdminHandler(
	applications *services.ApplicationService,
	projects *services.ProjectService,
	users repository.UserRepository,
	stats repository.StatsRepository,
) *AdminHandler {
	return &AdminHandler{
		applications: applications,
		projects:     projects,
		users:        users,
		stats:        stats,
	}
}

type AdminUpdateUserRequest struct {
	Name      *string  `json:"name"`
	Role      *string  `json:"role"`
	Skills    []string `json:"skills"`
	Bio       *string  `json:"bio"`
	AvatarURL *string  `json:"avatar_url"`
}

func (h *AdminHandler) ListApplications(ctx *gin.Context) {
	status := ctx.Query("status")
	targetType := ctx.Query("type")

	if status != "" && status != models.ApplicationPending &&
		status != models.ApplicationApproved && status != models.ApplicationRejected {
		httperr.BadRequest(ctx, "Invalid status filter")
		return
	}
	if targetType != "" && !models.ValidTargetType(targetType) {
		httperr.BadRequest(ctx, "Invalid type filter")
		return
	}

	apps, err := h.applications.ListAll(status, targetType)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve applications")
		return
	}

	ctx.JSON(http.StatusOK, applicationListResponse(apps))
}

func (h *AdminHandler) GetApplication(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "application_id")
	if !ok {
		return
	}

	app, err := h.applications.Get(applicationID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			httperr.NotFound(ctx, "Application not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve application")
		return
	}

	ctx.JSON(http.StatusOK, types.NewApplicationResponse(*app))
}

func (h *AdminHandler) ApproveApplication(ctx *gin.Context) {
	h.resolveApplication(ctx, h.applications.Approve)
}

func (h *AdminHandler) RejectApplication(ctx *gin.Context) {
	h.resolveApplication(ctx, h.applications.Reject)
}

func (h *AdminHandler) resolveApplication(ctx *gin.Context, action func(uint) (*models.Application, error)) {
	applicationID, ok := parseIDParam(ctx, "application_id")
	if !ok {
		return
	}

	app, err := action(applicationID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			httperr.NotFound(ctx, "Application not found")
		case errors.Is(err, services.ErrApplicationProcessed):
			httperr.Conflict(ctx, "Application already processed")
		case errors.Is(err, services.ErrAlreadyMember):
			httperr.Conflict(ctx, "Applicant is already a member of this project")
		case errors.Is(err, services.ErrAlreadyParticipant):
			httperr.Conflict(ctx, "Applicant is already a participant of this hackathon")
		default:
			respondStorageError(ctx, err, "Failed to resolve application")
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewApplicationResponse(*app))
}

func (h *AdminHandler) CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	project, err := h.projects.Create(services.CreateProjectInput{
		Title:           body.Title,
		Description:     body.Description,
		CreatedBy:       userID,
		TechStack:       body.TechStack,
		Prize:           body.Prize,
		Deadline:        body.Deadline,
		MaxParticipants: body.MaxParticipants,
		HackathonID:     body.HackathonID,
	})

	if err != nil {
		respondStorageError(ctx, err, "Failed to create project")
		return
	}

	ctx.JSON(http.StatusCreated, types.NewProjectResponse(*project))
}

func (h *AdminHandler) ListProjects(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && !models.ValidProjectStatus(status) {
		httperr.BadRequest(ctx, "Invalid status filter")
		return
	}

	projects, err := h.projects.List(repository.ProjectFilter{Status: status})
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve projects")
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		response = append(response, types.NewProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *AdminHandler) DeleteProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	if err := h.projects.Delete(projectID); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			httperr.NotFound(ctx, "Project not found")
			return
		}
		respondStorageError(ctx, err, "Failed to delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListUsers(ctx *gin.Context) {
	role := ctx.Query("role")
	if role != "" && !models.ValidRole(role) {
		httperr.BadRequest(ctx, "Invalid role filter")
		return
	}

	users, err := h.users.List(role)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve users")
		return
	}

	response := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *AdminHandler) GetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(ctx, "User not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve user")
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *AdminHandler) UpdateUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	var body AdminUpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	if body.Role != nil && !models.ValidRole(*body.Role) {
		httperr.BadRequest(ctx, "Invalid role")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(ctx, "User not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve user")
		return
	}

	if body.Name != nil {
		user.Name = *body.Name
	}
	if body.Role != nil {
		user.Role = *body.Role
	}
	if body.Skills != nil {
		user.Skills = body.Skills
	}
	if body.Bio != nil {
		user.Bio = *body.Bio
	}
	if body.AvatarURL != nil {
		user.AvatarURL = *body.AvatarURL
	}

	if err := h.users.Update(user); err != nil {
		respondStorageError(ctx, err, "Failed to update user")
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *AdminHandler) DeleteUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	currentID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	if userID == currentID {
		httperr.BadRequest(ctx, "Cannot delete yourself")
		return
	}

	if _, err := h.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(ctx, "User not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve user")
		return
	}

	if err := h.users.Delete(userID); err != nil {
		respondStorageError(ctx, err, "Failed to delete user")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *AdminHandler) GetStats(ctx *gin.Context) {
	stats, err := h.stats.Collect()
	if err != nil {
		httperr.Internal(ctx, "Failed to collect statistics")
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
