package repository

import (
	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository is a GORM implementation of StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) Collect() (*Stats, error) {
	stats := &Stats{
		UsersByRole:          make(map[string]int64),
		ProjectsByStatus:     make(map[string]int64),
		ApplicationsByStatus: make(map[string]int64),
		ApplicationsByType:   make(map[string]int64),
	}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.UsersTotal},
		{&models.Project{}, &stats.ProjectsTotal},
		{&models.Application{}, &stats.ApplicationsTotal},
		{&models.Membership{}, &stats.Memberships},
		{&models.Task{}, &stats.Tasks},
		{&models.Hackathon{}, &stats.Hackathons},
		{&models.HackathonParticipant{}, &stats.HackathonParticipants},
	}

	for _, c := range counts {
		if err := r.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	for _, role := range []string{models.RoleStudent, models.RoleMentor, models.RoleCustomer, models.RoleAdmin} {
		var n int64
		if err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.UsersByRole[role] = n
	}

	for _, status := range []string{models.ProjectStatusRecruiting, models.ProjectStatusActive, models.ProjectStatusCompleted} {
		var n int64
		if err := r.db.Model(&models.Project{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ProjectsByStatus[status] = n
	}

	for _, status := range []string{models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected} {
		var n int64
		if err := r.db.Model(&models.Application{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ApplicationsByStatus[status] = n
	}

	for _, targetType := range []string{models.TargetProject, models.TargetHackathon} {
		var n int64
		if err := r.db.Model(&models.Application{}).Where("type = ?", targetType).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.ApplicationsByType[targetType] = n
	}

	return stats, nil
}
