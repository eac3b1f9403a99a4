package services

import (
	"errors"
	"fmt"

	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidTargetType        = errors.New("target type must be project or hackathon")
	ErrAlreadyApplied           = errors.New("already applied to this target")
	ErrCreatorApplicationExists = errors.New("only one active application per creator is allowed")
	ErrAlreadyMember            = errors.New("already a member of this project")
	ErrAlreadyParticipant       = errors.New("already a participant of this hackathon")
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationProcessed     = errors.New("application already processed")
	ErrTargetNotFound           = errors.New("target not found")
)

// ApplicationService mediates requests to join a project or hackathon and
// materializes approval as a membership or hackathon participation.
type ApplicationService struct {
	apps          repository.ApplicationRepository
	projects      repository.ProjectRepository
	hackathons    repository.HackathonRepository
	memberships   repository.MembershipRepository
	notifications *NotificationService
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	projects repository.ProjectRepository,
	hackathons repository.HackathonRepository,
	memberships repository.MembershipRepository,
	notifications *NotificationService,
) *ApplicationService {
	return &ApplicationService{
		apps:          apps,
		projects:      projects,
		hackathons:    hackathons,
		memberships:   memberships,
		notifications: notifications,
	}
}

// SubmitInput represents a user's request to join a target
type SubmitInput struct {
	ApplicantID uint
	Type        string
	TargetID    uint
	Message     string
}

// Submit creates a pending application after running the admission checks in
// order: valid type, no duplicate pending application for the exact target,
// no other pending application to a target owned by the same creator, and not
// already a member/participant. Submission itself emits no notification.
func (s *ApplicationService) Submit(input SubmitInput) (*models.Application, error) {
	if !models.ValidTargetType(input.Type) {
		return nil, ErrInvalidTargetType
	}

	if _, err := s.apps.FindPending(input.Type, input.TargetID, input.ApplicantID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	ownerID, err := s.ResolveTargetOwner(input.Type, input.TargetID)
	if err != nil {
		return nil, err
	}

	pending, err := s.apps.ListPendingByApplicant(input.ApplicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending applications: %w", err)
	}
	for _, app := range pending {
		appOwnerID, err := s.ResolveTargetOwner(app.Type, app.TargetID)
		if err != nil {
			if errors.Is(err, ErrTargetNotFound) {
				// Target deleted since the application was filed; it cannot
				// block new submissions.
				continue
			}
			return nil, err
		}
		if appOwnerID == ownerID {
			return nil, ErrCreatorApplicationExists
		}
	}

	switch input.Type {
	case models.TargetProject:
		if _, err := s.memberships.FindByProjectAndUser(input.TargetID, input.ApplicantID); err == nil {
			return nil, ErrAlreadyMember
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
	case models.TargetHackathon:
		if _, err := s.hackathons.FindParticipant(input.TargetID, input.ApplicantID); err == nil {
			return nil, ErrAlreadyParticipant
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check participation: %w", err)
		}
	}

	app := &models.Application{
		Type:        input.Type,
		TargetID:    input.TargetID,
		ApplicantID: input.ApplicantID,
		Message:     input.Message,
		Status:      models.ApplicationPending,
	}

	if err := s.apps.Create(app); err != nil {
		// The partial unique index catches a submit racing the duplicate check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// Approve transitions a pending application to approved and, in the same
// transaction, provisions the membership or hackathon participation. The
// applicant is then notified asynchronously.
func (s *ApplicationService) Approve(applicationID uint) (*models.Application, error) {
	app, err := s.apps.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if app.Status != models.ApplicationPending {
		return nil, ErrApplicationProcessed
	}

	var membership *models.Membership
	var participant *models.HackathonParticipant

	switch app.Type {
	case models.TargetProject:
		membership = &models.Membership{
			ProjectID:  app.TargetID,
			UserID:     app.ApplicantID,
			RoleInTeam: "member",
			Status:     models.MembershipActive,
		}
	case models.TargetHackathon:
		participant = &models.HackathonParticipant{
			HackathonID: app.TargetID,
			UserID:      app.ApplicantID,
		}
	}

	if err := s.apps.Resolve(app, models.ApplicationApproved, membership, participant); err != nil {
		if errors.Is(err, repository.ErrNoPendingApplication) {
			return nil, ErrApplicationProcessed
		}
		// The membership/participant insert trips its unique index when the
		// applicant was invited (or otherwise added) after applying.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if app.Type == models.TargetHackathon {
				return nil, ErrAlreadyParticipant
			}
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to approve application: %w", err)
	}

	s.notifications.notifyQuietly(app.ApplicantID, models.NotificationApplicationStatus, map[string]interface{}{
		"application_id": app.ID,
		"type":           app.Type,
		"target_id":      app.TargetID,
		"status":         models.ApplicationApproved,
	})

	return app, nil
}

// Reject transitions a pending application to rejected. No membership row is
// created and the applicant is not notified.
func (s *ApplicationService) Reject(applicationID uint) (*models.Application, error) {
	app, err := s.apps.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if app.Status != models.ApplicationPending {
		return nil, ErrApplicationProcessed
	}

	if err := s.apps.Resolve(app, models.ApplicationRejected, nil, nil); err != nil {
		if errors.Is(err, repository.ErrNoPendingApplication) {
			return nil, ErrApplicationProcessed
		}
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}

	return app, nil
}

// ResolveTargetOwner returns the id of the user who created the application
// target. Every owner-based authorization check goes through here.
func (s *ApplicationService) ResolveTargetOwner(targetType string, targetID uint) (uint, error) {
	switch targetType {
	case models.TargetProject:
		project, err := s.projects.FindByID(targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrTargetNotFound
			}
			return 0, fmt.Errorf("failed to find project: %w", err)
		}
		return project.CreatedBy, nil
	case models.TargetHackathon:
		hackathon, err := s.hackathons.FindByID(targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrTargetNotFound
			}
			return 0, fmt.Errorf("failed to find hackathon: %w", err)
		}
		return hackathon.CreatedBy, nil
	default:
		return 0, ErrInvalidTargetType
	}
}

func (s *ApplicationService) Get(applicationID uint) (*models.Application, error) {
	app, err := s.apps.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) ListByTarget(targetType string, targetID uint) ([]models.Application, error) {
	return s.apps.ListByTarget(targetType, targetID)
}

func (s *ApplicationService) ListByUser(applicantID uint) ([]models.Application, error) {
	return s.apps.ListByApplicant(applicantID)
}

func (s *ApplicationService) ListAll(status, targetType string) ([]models.Application, error) {
	return s.apps.ListAll(repository.ApplicationFilter{Status: status, Type: targetType})
}
