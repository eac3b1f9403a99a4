package repository

import (
	"time"

	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/gorm"
)

// GormHackathonRepository is a GORM implementation of HackathonRepository
type GormHackathonRepository struct {
	db *gorm.DB
}

func NewHackathonRepository(db *gorm.DB) HackathonRepository {
	return &GormHackathonRepository{db: db}
}

func (r *GormHackathonRepository) Create(hackathon *models.Hackathon) error {
	return r.db.Create(hackathon).Error
}

func (r *GormHackathonRepository) FindByID(id uint) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	if err := r.db.First(&hackathon, id).Error; err != nil {
		return nil, err
	}
	return &hackathon, nil
}

func (r *GormHackathonRepository) List() ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	if err := r.db.Find(&hackathons).Error; err != nil {
		return nil, err
	}
	return hackathons, nil
}

func (r *GormHackathonRepository) ListActive(now time.Time) ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	if err := r.db.Where("start_at <= ? AND end_at >= ?", now, now).
		Find(&hackathons).Error; err != nil {
		return nil, err
	}
	return hackathons, nil
}

func (r *GormHackathonRepository) Delete(id uint) error {
	return r.db.Delete(&models.Hackathon{}, id).Error
}

func (r *GormHackathonRepository) FindParticipant(hackathonID, userID uint) (*models.HackathonParticipant, error) {
	var participant models.HackathonParticipant
	if err := r.db.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}
