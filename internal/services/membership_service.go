package services

import (
	"errors"
	"fmt"

	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrNotInvitedUser       = errors.New("only the invited user can accept")
	ErrMembershipNotInvited = errors.New("membership is not in invited status")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotProjectOwner      = errors.New("only the project owner can invite")
)

// MembershipService tracks who belongs to which project team.
type MembershipService struct {
	memberships   repository.MembershipRepository
	projects      repository.ProjectRepository
	users         repository.UserRepository
	notifications *NotificationService
}

func NewMembershipService(
	memberships repository.MembershipRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	notifications *NotificationService,
) *MembershipService {
	return &MembershipService{
		memberships:   memberships,
		projects:      projects,
		users:         users,
		notifications: notifications,
	}
}

// InviteInput represents a project owner's invitation
type InviteInput struct {
	ProjectID  uint
	InviterID  uint
	UserID     uint
	RoleInTeam string
}

// Invite creates an invited membership and notifies the invited user.
func (s *MembershipService) Invite(input InviteInput) (*models.Membership, error) {
	project, err := s.projects.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.CreatedBy != input.InviterID {
		return nil, ErrNotProjectOwner
	}

	if _, err := s.users.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.memberships.FindByProjectAndUser(input.ProjectID, input.UserID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	roleInTeam := input.RoleInTeam
	if roleInTeam == "" {
		roleInTeam = "member"
	}

	membership := &models.Membership{
		ProjectID:  input.ProjectID,
		UserID:     input.UserID,
		RoleInTeam: roleInTeam,
		Status:     models.MembershipInvited,
		InvitedBy:  &input.InviterID,
	}

	if err := s.memberships.Create(membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	s.notifications.notifyQuietly(input.UserID, models.NotificationInvite, map[string]interface{}{
		"project_id":    project.ID,
		"project_title": project.Title,
		"membership_id": membership.ID,
	})

	return membership, nil
}

// Accept transitions an invited membership to active. Only the invited user
// may accept, exactly once.
func (s *MembershipService) Accept(membershipID, callerID uint) (*models.Membership, error) {
	membership, err := s.memberships.FindByID(membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	if membership.UserID != callerID {
		return nil, ErrNotInvitedUser
	}

	if membership.Status != models.MembershipInvited {
		return nil, ErrMembershipNotInvited
	}

	membership.Status = models.MembershipActive
	if err := s.memberships.Update(membership); err != nil {
		return nil, fmt.Errorf("failed to accept membership: %w", err)
	}

	return membership, nil
}

func (s *MembershipService) ListByProject(projectID uint) ([]models.Membership, error) {
	return s.memberships.ListByProject(projectID)
}

func (s *MembershipService) ListByUser(userID uint) ([]models.Membership, error) {
	return s.memberships.ListByUser(userID)
}
