package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidProjectStatus  = errors.New("status must be recruiting, active, or completed")
	ErrRoleRequirementExists = errors.New("role already exists for this project")
)

// ProjectService handles project CRUD and role requirements.
type ProjectService struct {
	projects repository.ProjectRepository
}

func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Title           string
	Description     string
	CreatedBy       uint
	TechStack       []string
	Prize           string
	Deadline        *time.Time
	MaxParticipants *int
	HackathonID     *uint
}

func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Title:           input.Title,
		Description:     input.Description,
		CreatedBy:       input.CreatedBy,
		Status:          models.ProjectStatusRecruiting,
		TechStack:       input.TechStack,
		Prize:           input.Prize,
		Deadline:        input.Deadline,
		MaxParticipants: input.MaxParticipants,
		HackathonID:     input.HackathonID,
	}

	if err := s.projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(projectID uint) (*models.Project, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) List(filter repository.ProjectFilter) ([]models.Project, error) {
	return s.projects.List(filter)
}

// UpdateProjectInput represents a partial project update
type UpdateProjectInput struct {
	Title           *string
	Description     *string
	Status          *string
	TechStack       []string
	Prize           *string
	Deadline        *time.Time
	MaxParticipants *int
}

func (s *ProjectService) Update(projectID uint, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !models.ValidProjectStatus(*input.Status) {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = *input.Status
	}
	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.TechStack != nil {
		project.TechStack = input.TechStack
	}
	if input.Prize != nil {
		project.Prize = *input.Prize
	}
	if input.Deadline != nil {
		project.Deadline = input.Deadline
	}
	if input.MaxParticipants != nil {
		project.MaxParticipants = input.MaxParticipants
	}

	if err := s.projects.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(projectID uint) error {
	if _, err := s.Get(projectID); err != nil {
		return err
	}
	if err := s.projects.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddRoleRequirement registers an open role slot; role names are unique per
// project.
func (s *ProjectService) AddRoleRequirement(projectID uint, roleName string) (*models.RoleRequirement, error) {
	if _, err := s.Get(projectID); err != nil {
		return nil, err
	}

	if _, err := s.projects.FindRoleRequirement(projectID, roleName); err == nil {
		return nil, ErrRoleRequirementExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check role requirement: %w", err)
	}

	req := &models.RoleRequirement{
		ProjectID: projectID,
		RoleName:  roleName,
	}
	if err := s.projects.CreateRoleRequirement(req); err != nil {
		return nil, fmt.Errorf("failed to create role requirement: %w", err)
	}
	return req, nil
}
