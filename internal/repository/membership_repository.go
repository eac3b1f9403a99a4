package repository

import (
	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/gorm"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

func (r *GormMembershipRepository) FindByID(id uint) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.First(&membership, id).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *GormMembershipRepository) FindByProjectAndUser(projectID, userID uint) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *GormMembershipRepository) ListByProject(projectID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Where("project_id = ?", projectID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *GormMembershipRepository) ListByUser(userID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *GormMembershipRepository) Update(membership *models.Membership) error {
	return r.db.Save(membership).Error
}
