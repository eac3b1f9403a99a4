package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Name     string   `json:"name" binding:"required"`
	Role     string   `json:"role"`
	Skills   []string `json:"skills"`
	Bio      string   `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	tokens, err := h.auth.Register(services.RegisterInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Role:     body.Role,
		Skills:   body.Skills,
		Bio:      body.Bio,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			httperr.Conflict(ctx, "Email already registered")
		case errors.Is(err, services.ErrInvalidRole):
			httperr.BadRequest(ctx, "Invalid role")
		default:
			respondStorageError(ctx, err, "Failed to register user")
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	tokens, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httperr.Unauthorized(ctx, "Incorrect email or password")
			return
		}
		httperr.Internal(ctx, "Failed to log in")
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var body RefreshRequest

	if err := ctx.BindJSON(&body); err != nil {
		httperr.BadRequestWithDetails(ctx, "Invalid request", err.Error())
		return
	}

	tokens, err := h.auth.Refresh(body.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			httperr.Unauthorized(ctx, "Invalid refresh token")
			return
		}
		httperr.Internal(ctx, "Failed to refresh tokens")
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
