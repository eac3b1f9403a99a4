package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
)

type HackathonHandler struct {
	hackathons   *services.HackathonService
	applications *services.ApplicationService
}

func NewHackathonHandler(hackathons *services.HackathonService, applications *services.ApplicationService) *HackathonHandler {
	return &HackathonHandler{
		hackathons:   hackathons,
		applications: applications,
	}
}

type CreateHackathonRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at" binding:"required"`
	EndAt           time.Time `json:"end_at" binding:"required"`
	Prize           string    `json:"prize"`
	MaxParticipants *int      `json:"max_participants"`
}

type JoinHackathonRequest struct {
	Message string `json:"message"`
}

func (h *HackathonHandler) Create(ctx *gin.Context) {
	var body CreateHackathonRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	if !body.EndAt.After(body.StartAt) {
		httperr.BadRequest(ctx, "end_at must be after start_at")
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	hackathon, err := h.hackathons.Create(services.CreateHackathonInput{
		Title:           body.Title,
		Description:     body.Description,
		StartAt:         body.StartAt,
		EndAt:           body.EndAt,
		Prize:           body.Prize,
		MaxParticipants: body.MaxParticipants,
		CreatedBy:       userID,
	})

	if err != nil {
		respondStorageError(ctx, err, "Failed to create hackathon")
		return
	}

	ctx.JSON(http.StatusCreated, types.NewHackathonResponse(*hackathon))
}

func (h *HackathonHandler) List(ctx *gin.Context) {
	hackathons, err := h.hackathons.List()
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve hackathons")
		return
	}

	ctx.JSON(http.StatusOK, hackathonListResponse(hackathons))
}

func (h *HackathonHandler) ListActive(ctx *gin.Context) {
	hackathons, err := h.hackathons.ListActive()
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve hackathons")
		return
	}

	ctx.JSON(http.StatusOK, hackathonListResponse(hackathons))
}

func (h *HackathonHandler) Get(ctx *gin.Context) {
	hackathonID, ok := parseIDParam(ctx, "hackathon_id")
	if !ok {
		return
	}

	hackathon, err := h.hackathons.Get(hackathonID)
	if err != nil {
		if errors.Is(err, services.ErrHackathonNotFound) {
			httperr.NotFound(ctx, "Hackathon not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve hackathon")
		return
	}

	ctx.JSON(http.StatusOK, types.NewHackathonResponse(*hackathon))
}

// Join submits a hackathon application for the current user. The admission
// checks are the same ones the generic application endpoint runs.
func (h *HackathonHandler) Join(ctx *gin.Context) {
	hackathonID, ok := parseIDParam(ctx, "hackathon_id")
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	var body JoinHackathonRequest

	if ctx.Request.ContentLength > 0 {
		if err := ctx.BindJSON(&body); err != nil {
			httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
			return
		}
	}

	app, err := h.applications.Submit(services.SubmitInput{
		ApplicantID: userID,
		Type:        models.TargetHackathon,
		TargetID:    hackathonID,
		Message:     body.Message,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrTargetNotFound):
			httperr.NotFound(ctx, "Hackathon not found")
		case errors.Is(err, services.ErrAlreadyApplied):
			httperr.Conflict(ctx, "Already applied to this hackathon")
		case errors.Is(err, services.ErrCreatorApplicationExists):
			httperr.Conflict(ctx, "Only one active application per creator is allowed")
		case errors.Is(err, services.ErrAlreadyParticipant):
			httperr.Conflict(ctx, "Already a participant of this hackathon")
		default:
			respondStorageError(ctx, err, "Failed to submit application")
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.NewApplicationResponse(*app))
}

func (h *HackathonHandler) Delete(ctx *gin.Context) {
	hackathonID, ok := parseIDParam(ctx, "hackathon_id")
	if !ok {
		return
	}

	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	hackathon, err := h.hackathons.Get(hackathonID)
	if err != nil {
		if errors.Is(err, services.ErrHackathonNotFound) {
			httperr.NotFound(ctx, "Hackathon not found")
			return
		}
		httperr.Internal(ctx, "Failed to retrieve hackathon")
		return
	}

	if hackathon.CreatedBy != user.ID && user.Role != models.RoleAdmin && user.Role != models.RoleMentor {
		httperr.Forbidden(ctx, "Not allowed to delete this hackathon")
		return
	}

	if err := h.hackathons.Delete(hackathonID); err != nil {
		respondStorageError(ctx, err, "Failed to delete hackathon")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func hackathonListResponse(hackathons []models.Hackathon) []types.HackathonResponse {
	response := make([]types.HackathonResponse, 0, len(hackathons))
	for _, hackathon := range hackathons {
		response = append(response, types.NewHackathonResponse(hackathon))
	}
	return response
}
