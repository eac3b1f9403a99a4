package repository

import (
	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *GormNotificationRepository) FindByIDAndUser(id, userID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *GormNotificationRepository) ListByUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification

	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}
