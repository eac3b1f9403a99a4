package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/utils"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	unreadOnly := ctx.Query("unread_only") == "true"

	notifications, err := h.notifications.ListByUser(userID, unreadOnly)
	if err != nil {
		httperr.Internal(ctx, "Failed to retrieve notifications")
		return
	}

	response := make([]types.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		response = append(response, types.NewNotificationResponse(notification))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkAsRead(ctx *gin.Context) {
	notificationID, ok := parseIDParam(ctx, "notification_id")
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		httperr.Unauthorized(ctx, "User not authenticated")
		return
	}

	notification, err := h.notifications.MarkAsRead(notificationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			httperr.NotFound(ctx, "Notification not found")
			return
		}
		respondStorageError(ctx, err, "Failed to mark notification read")
		return
	}

	ctx.JSON(http.StatusOK, types.NewNotificationResponse(*notification))
}
