package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
)

type MembershipHandler struct {
	memberships *services.MembershipService
}

func NewMembershipHandler(memberships *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

func (h *MembershipHandler) ListByProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "project_id")
	if !ok {
		return
	}

	memberships, err := h.memberships.ListByProject(projectID)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve memberships")
		return
	}

	ctx.JSON(http.StatusOK, membershipListResponse(memberships))
}

func (h *MembershipHandler) ListByUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	memberships, err := h.memberships.ListByUser(userID)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve memberships")
		return
	}

	ctx.JSON(http.StatusOK, membershipListResponse(memberships))
}

// Accept flips an invited membership to active. Only the invited user can
// accept.
func (h *MembershipHandler) Accept(ctx *gin.Context) {
	membershipID, ok := parseIDParam(ctx, "membership_id")
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	membership, err := h.memberships.Accept(membershipID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMembershipNotFound):
			httperr.NotFound(ctx, "Membership not found")
		case errors.Is(err, services.ErrNotInvitedUser):
			httperr.Forbidden(ctx, "Only the invited user can accept")
		case errors.Is(err, services.ErrMembershipNotInvited):
			httperr.Conflict(ctx, "Membership is not in invited status")
		default:
			respondStorageError(ctx, err, "Failed to accept invitation")
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewMembershipResponse(*membership))
}

func membershipListResponse(memberships []models.Membership) []types.MembershipResponse {
	response := make([]types.MembershipResponse, 0, len(memberships))
	for _, membership := range memberships {
		response = append(response, types.NewMembershipResponse(membership))
	}
	return response
}
