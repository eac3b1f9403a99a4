package repository

import (
	"github.com/lib/pq"
	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *GormProjectRepository) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.TechStack) > 0 {
		// Postgres array containment: every requested tech must be present
		query = query.Where("tech_stack @> ?", pq.StringArray(filter.TechStack))
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	if err := query.Limit(limit).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *GormProjectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

func (r *GormProjectRepository) UpdateProgress(projectID uint, progress float64) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("progress_percent", progress).Error
}

func (r *GormProjectRepository) CreateRoleRequirement(req *models.RoleRequirement) error {
	return r.db.Create(req).Error
}

func (r *GormProjectRepository) FindRoleRequirement(projectID uint, roleName string) (*models.RoleRequirement, error) {
	var req models.RoleRequirement
	if err := r.db.Where("project_id = ? AND role_name = ?", projectID, roleName).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
