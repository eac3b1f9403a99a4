package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/ws"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService persists notification records and pushes them to live
// WebSocket connections when the target user is online. Delivery is best
// effort: a failed push is logged and never retried; the row stays queryable.
type NotificationService struct {
	notifications repository.NotificationRepository
	hub           *ws.Hub
}

func NewNotificationService(notifications repository.NotificationRepository, hub *ws.Hub) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		hub:           hub,
	}
}

// Create persists the notification and dispatches the push on a background
// goroutine so a slow or dead socket cannot stall the triggering request.
// A marshalling or storage failure is returned; push failures are not.
func (s *NotificationService) Create(userID uint, notifType string, payload map[string]interface{}) (*models.Notification, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Payload: raw,
	}

	if err := s.notifications.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	frame := types.NewNotificationResponse(*notification)
	go s.hub.SendToUser(userID, frame)

	return notification, nil
}

func (s *NotificationService) ListByUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	return s.notifications.ListByUser(userID, unreadOnly)
}

// MarkAsRead flips is_read for a notification owned by userID. Foreign or
// missing notifications report ErrNotificationNotFound; marking an already
// read notification is a no-op.
func (s *NotificationService) MarkAsRead(notificationID, userID uint) (*models.Notification, error) {
	notification, err := s.notifications.FindByIDAndUser(notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.IsRead {
		return notification, nil
	}

	notification.IsRead = true
	if err := s.notifications.Update(notification); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return notification, nil
}

// notifyQuietly is for callers whose main operation must not fail because a
// notification could not be written.
func (s *NotificationService) notifyQuietly(userID uint, notifType string, payload map[string]interface{}) {
	if _, err := s.Create(userID, notifType, payload); err != nil {
		log.Printf("Failed to create %s notification for user %d: %v", notifType, userID, err)
	}
}
