package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
	"gorm.io/gorm"
)

// UserHandler serves profile reads and self-updates straight from the
// repository. There is no user service: profiles carry no workflow.
type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Skills    []string `json:"skills"`
	Bio       *string  `json:"bio"`
	AvatarURL *string  `json:"avatar_url"`
}

func (h *UserHandler) Me(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve user")
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *UserHandler) UpdateMe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve user")
		return
	}

	if body.Name != nil {
		user.Name = *body.Name
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

func (h *UserHandler) GetUser(ctx *gin.Context) {
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
