package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/db"
	"github.com/teamup-dev/teamup/internal/auth"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			httperr.Unauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			httperr.Unauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		userID, err := auth.VerifyToken(parts[1], auth.TokenTypeAccess)

		if err != nil {
			httperr.Unauthorized(ctx, "Invalid or expired token")
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			httperr.Unauthorized(ctx, "User not found")
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get(types.ContextUserKey)
		if !exists {
			httperr.Unauthorized(ctx, "User not authenticated")
			return
		}

		if authUser, ok := user.(AuthenticatedUser); !ok || authUser.Role != models.RoleAdmin {
			httperr.Forbidden(ctx, "Admin access required")
			return
		}

		ctx.Next()
	}
}

// RequireProjectCreator gates project/hackathon creation to admins and
// mentors. Must run after AuthMiddleware.
func RequireProjectCreator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get(types.ContextUserKey)
		if !exists {
			httperr.Unauthorized(ctx, "User not authenticated")
			return
		}

		authUser, ok := user.(AuthenticatedUser)
		if !ok || (authUser.Role != models.RoleAdmin && authUser.Role != models.RoleMentor) {
			httperr.Forbidden(ctx, "Only admins and mentors can create projects")
			return
		}

		ctx.Next()
	}
}
