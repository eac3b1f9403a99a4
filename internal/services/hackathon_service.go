package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"gorm.io/gorm"
)

var ErrHackathonNotFound = errors.New("hackathon not found")

// HackathonService handles hackathon CRUD. Joining a hackathon goes through
// the application workflow.
type HackathonService struct {
	hackathons repository.HackathonRepository
}

func NewHackathonService(hackathons repository.HackathonRepository) *HackathonService {
	return &HackathonService{hackathons: hackathons}
}

// CreateHackathonInput represents input for creating a hackathon
type CreateHackathonInput struct {
	Title           string
	Description     string
	StartAt         time.Time
	EndAt           time.Time
	Prize           string
	MaxParticipants *int
	CreatedBy       uint
}

func (s *HackathonService) Create(input CreateHackathonInput) (*models.Hackathon, error) {
	hackathon := &models.Hackathon{
		Title:           input.Title,
		Description:     input.Description,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		Prize:           input.Prize,
		MaxParticipants: input.MaxParticipants,
		CreatedBy:       input.CreatedBy,
	}

	if err := s.hackathons.Create(hackathon); err != nil {
		return nil, fmt.Errorf("failed to create hackathon: %w", err)
	}
	return hackathon, nil
}

func (s *HackathonService) Get(hackathonID uint) (*models.Hackathon, error) {
	hackathon, err := s.hackathons.FindByID(hackathonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHackathonNotFound
		}
		return nil, fmt.Errorf("failed to find hackathon: %w", err)
	}
	return hackathon, nil
}

func (s *HackathonService) List() ([]models.Hackathon, error) {
	return s.hackathons.List()
}

func (s *HackathonService) ListActive() ([]models.Hackathon, error) {
	return s.hackathons.ListActive(time.Now())
}

func (s *HackathonService) Delete(hackathonID uint) error {
	if _, err := s.Get(hackathonID); err != nil {
		return err
	}
	if err := s.hackathons.Delete(hackathonID); err != nil {
		return fmt.Errorf("failed to delete hackathon: %w", err)
	}
	return nil
}
