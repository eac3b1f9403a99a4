package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type SubmitApplicationRequest struct {
	Type     string `json:"type" binding:"required"`
	TargetID uint   `json:"target_id" binding:"required"`
	Message  string `json:"message"`
}

func (h *ApplicationHandler) Submit(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	var body SubmitApplicationRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	app, err := h.applications.Submit(services.SubmitInput{
		ApplicantID: userID,
		Type:        body.Type,
		TargetID:    body.TargetID,
		Message:     body.Message,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTargetType):
			httperr.BadRequest(ctx, "Type must be project or hackathon")
		case errors.Is(err, services.ErrTargetNotFound):
			httperr.NotFound(ctx, "Target not found")
		case errors.Is(err, services.ErrAlreadyApplied):
			httperr.Conflict(ctx, "Already applied to this target")
		case errors.Is(err, services.ErrCreatorApplicationExists):
			httperr.Conflict(ctx, "Only one active application per creator is allowed")
		case errors.Is(err, services.ErrAlreadyMember):
			httperr.Conflict(ctx, "Already a member of this project")
		case errors.Is(err, services.ErrAlreadyParticipant):
			httperr.Conflict(ctx, "Already a participant of this hackathon")
		default:
			respondStorageError(ctx, err, "Failed to submit application")
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.NewApplicationResponse(*app))
}

// List serves two views. Without query parameters it returns the caller's own
// applications. With type and target_id it returns applications for that
// target, visible only to the target owner or an admin.
func (h *ApplicationHandler) List(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	targetType := ctx.Query("type")
	rawTargetID := ctx.Query("target_id")

	if targetType == "" && rawTargetID == "" {
		apps, err := h.applications.ListByUser(user.ID)
		if err != nil {
			httperr.Internal(ctx, "Failed to retrieve applications")
			return
		}
		ctx.JSON(http.StatusOK, applicationListResponse(apps))
		return
	}

	if targetType == "" || rawTargetID == "" {
		httperr.BadRequest(ctx, "Both type and target_id are required")
		return
	}

	if !models.ValidTargetType(targetType) {
		httperr.BadRequest(ctx, "Type must be project or hackathon")
		return
	}

	targetID64, err := strconv.ParseUint(rawTargetID, 10, 64)
	if err != nil || targetID64 == 0 {
		httperr.BadRequest(ctx, "Invalid target_id")
		return
	}
	targetID := uint(targetID64)

	ownerID, err := h.applications.ResolveTargetOwner(targetType, targetID)
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			httperr.NotFound(ctx, "Target not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve target")
		return
	}

	if ownerID != user.ID && user.Role != models.RoleAdmin {
		httperr.Forbidden(ctx, "Only the target owner can view its applications")
		return
	}

	apps, err := h.applications.ListByTarget(targetType, targetID)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve applications")
		return
	}

	ctx.JSON(http.StatusOK, applicationListResponse(apps))
}

func (h *ApplicationHandler) Approve(ctx *gin.Context) {
	h.resolve(ctx, h.applications.Approve)
}

func (h *ApplicationHandler) Reject(ctx *gin.Context) {
	h.resolve(ctx, h.applications.Reject)
}

func (h *ApplicationHandler) resolve(ctx *gin.Context, action func(uint) (*models.Application, error)) {
	applicationID, ok := parseIDParam(ctx, "application_id")
	if !ok {
		return
	}

	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
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

	if user.Role != models.RoleAdmin {
		ownerID, err := h.applications.ResolveTargetOwner(app.Type, app.TargetID)
		if err != nil {
			if errors.Is(err, services.ErrTargetNotFound) {
				httperr.NotFound(ctx, "Target not found")
				return
			}
			httperr.Internal(ctx, "Failed to retrieve target")
			return
		}
		if ownerID != user.ID {
			httperr.Forbidden(ctx, "Only the target owner can resolve applications")
			return
		}
	}

	resolved, err := action(applicationID)
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

	ctx.JSON(http.StatusOK, types.NewApplicationResponse(*resolved))
}

func applicationListResponse(apps []models.Application) []types.ApplicationResponse {
	response := make([]types.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		response = append(response, types.NewApplicationResponse(app))
	}
	return response
}
