package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
)

type ProjectHandler struct {
	projects    *services.ProjectService
	memberships *services.MembershipService
}

func NewProjectHandler(projects *services.ProjectService, memberships *services.MembershipService) *ProjectHandler {
	return &ProjectHandler{
		projects:    projects,
		memberships: memberships,
	}
}

type CreateProjectRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	TechStack       []string   `json:"tech_stack"`
	Prize           string     `json:"prize"`
	Deadline        *time.Time `json:"deadline"`
	MaxParticipants *int       `json:"max_participants"`
	HackathonID     *uint      `json:"hackathon_id"`
}

type UpdateProjectRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status"`
	TechStack       []string   `json:"tech_stack"`
	Prize           *string    `json:"prize"`
	Deadline        *time.Time `json:"deadline"`
	MaxParticipants *int       `json:"max_participants"`
}

type InviteRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	RoleInTeam string `json:"role_in_team"`
}

type RoleRequirementRequest struct {
	RoleName string `json:"role_name" binding:"required"`
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
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

func (h *ProjectHandler) List(ctx *gin.Context) {
	filter := repository.ProjectFilter{
		Status: ctx.Query("status"),
	}

	if filter.Status != "" && !models.ValidProjectStatus(filter.Status) {
		httperr.BadRequest(ctx, "Invalid status filter")
		return
	}

	filter.TechStack = ctx.QueryArray("tech_stack")

	if skip := ctx.Query("skip"); skip != "" {
		value, err := strconv.Atoi(skip)
		if err != nil || value < 0 {
			httperr.BadRequest(ctx, "Invalid skip")
			return
		}
		filter.Skip = value
	}

	if limit := ctx.Query("limit"); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil || value < 1 {
			httperr.BadRequest(ctx, "Invalid limit")
			return
		}
		filter.Limit = value
	}

	projects, err := h.projects.List(filter)
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

func (h *ProjectHandler) Get(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			httperr.NotFound(ctx, "Project not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve project")
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(*project))
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			httperr.NotFound(ctx, "Project not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve project")
		return
	}

	if project.CreatedBy != user.ID {
		httperr.Forbidden(ctx, "Only the project owner can update it")
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	updated, err := h.projects.Update(projectID, services.UpdateProjectInput{
		Title:           body.Title,
		Description:     body.Description,
		Status:          body.Status,
		TechStack:       body.TechStack,
		Prize:           body.Prize,
		Deadline:        body.Deadline,
		MaxParticipants: body.MaxParticipants,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			httperr.NotFound(ctx, "Project not found")
		case errors.Is(err, services.ErrInvalidProjectStatus):
			httperr.BadRequest(ctx, "Invalid project status")
		default:
			respondStorageError(ctx, err, "Failed to update project")
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(*updated))
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			httperr.NotFound(ctx, "Project not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve project")
		return
	}

	if project.CreatedBy != user.ID && user.Role != models.RoleAdmin && user.Role != models.RoleMentor {
		httperr.Forbidden(ctx, "Not allowed to delete this project")
		return
	}

	if err := h.projects.Delete(projectID); err != nil {
		respondStorageError(ctx, err, "Failed to delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProjectHandler) Invite(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	var body InviteRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	membership, err := h.memberships.Invite(services.InviteInput{
		ProjectID:  projectID,
		InviterID:  userID,
		UserID:     body.UserID,
		RoleInTeam: body.RoleInTeam,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			httperr.NotFound(ctx, "Project not found")
		case errors.Is(err, services.ErrUserNotFound):
			httperr.NotFound(ctx, "User not found")
		case errors.Is(err, services.ErrNotProjectOwner):
			httperr.Forbidden(ctx, "Only the project owner can invite")
		case errors.Is(err, services.ErrAlreadyMember):
			httperr.Conflict(ctx, "User is already a member of this project")
		default:
			respondStorageError(ctx, err, "Failed to create invitation")
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.NewMembershipResponse(*membership))
}

func (h *ProjectHandler) AddRoleRequirement(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			httperr.NotFound(ctx, "Project not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve project")
		return
	}

	if project.CreatedBy != user.ID && user.Role != models.RoleAdmin {
		httperr.Forbidden(ctx, "Only the project owner can add required roles")
		return
	}

	var body RoleRequirementRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	requirement, err := h.projects.AddRoleRequirement(projectID, body.RoleName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleRequirementExists):
			httperr.Conflict(ctx, "Role already exists for this project")
		default:
			respondStorageError(ctx, err, "Failed to add required role")
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":         requirement.ID,
		"project_id": requirement.ProjectID,
		"role_name":  requirement.RoleName,
	})
}
