package repository

import (
	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

func (r *GormApplicationRepository) FindByID(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormApplicationRepository) FindPending(targetType string, targetID, applicantID uint) (*models.Application, error) {
	var app models.Application
	err := r.db.Where(
		"type = ? AND target_id = ? AND applicant_id = ? AND status = ?",
		targetType, targetID, applicantID, models.ApplicationPending,
	).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormApplicationRepository) ListPendingByApplicant(applicantID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("applicant_id = ? AND status = ?", applicantID, models.ApplicationPending).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormApplicationRepository) ListByTarget(targetType string, targetID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("type = ? AND target_id = ?", targetType, targetID).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormApplicationRepository) ListByApplicant(applicantID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("applicant_id = ?", applicantID).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormApplicationRepository) ListAll(filter ApplicationFilter) ([]models.Application, error) {
	var apps []models.Application

	query := r.db.Model(&models.Application{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if err := query.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Resolve finalizes a pending application. The status update is guarded so a
// replayed approve/reject cannot fire twice, and the membership/participant
// insert rides the same transaction: either both rows land or neither does.
func (r *GormApplicationRepository) Resolve(app *models.Application, status string, membership *models.Membership, participant *models.HackathonParticipant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationPending).
			Update("status", status)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNoPendingApplication
		}

		if membership != nil {
			if err := tx.Create(membership).Error; err != nil {
				return err
			}
		}
		if participant != nil {
			if err := tx.Create(participant).Error; err != nil {
				return err
			}
		}

		app.Status = status
		return nil
	})
}
