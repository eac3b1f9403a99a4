package repository

import (
	"errors"
	"time"

	"github.com/teamup-dev/teamup/internal/models"
)

// ErrNoPendingApplication signals that a resolve hit an application that is
// missing or no longer pending. Approval and rejection are never replayed.
var ErrNoPendingApplication = errors.New("application is not pending")

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error

	// List retrieves users, optionally filtered by role, newest first
	List(role string) ([]models.User, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Status    string
	TechStack []string
	Skip      int
	Limit     int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint) (*models.Project, error)
	List(filter ProjectFilter) ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id uint) error

	// UpdateProgress writes a recomputed progress_percent
	UpdateProgress(projectID uint, progress float64) error

	// Role requirements
	CreateRoleRequirement(req *models.RoleRequirement) error
	FindRoleRequirement(projectID uint, roleName string) (*models.RoleRequirement, error)
}

// HackathonRepository defines the interface for hackathon data access
type HackathonRepository interface {
	Create(hackathon *models.Hackathon) error
	FindByID(id uint) (*models.Hackathon, error)
	List() ([]models.Hackathon, error)

	// ListActive returns hackathons whose window contains now
	ListActive(now time.Time) ([]models.Hackathon, error)
	Delete(id uint) error

	FindParticipant(hackathonID, userID uint) (*models.HackathonParticipant, error)
}

// ApplicationFilter holds filtering options for admin application listings
type ApplicationFilter struct {
	Status string
	Type   string
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uint) (*models.Application, error)

	// FindPending finds the applicant's pending application for an exact
	// (type, target) pair
	FindPending(targetType string, targetID, applicantID uint) (*models.Application, error)

	// ListPendingByApplicant returns every pending application the applicant
	// holds, across all targets
	ListPendingByApplicant(applicantID uint) ([]models.Application, error)

	ListByTarget(targetType string, targetID uint) ([]models.Application, error)
	ListByApplicant(applicantID uint) ([]models.Application, error)

	// ListAll returns applications for admin views, newest first
	ListAll(filter ApplicationFilter) ([]models.Application, error)

	// Resolve transitions a pending application to its final status and, in
	// the same transaction, inserts the membership or participant row when
	// one is given. Returns ErrNoPendingApplication when the status guard
	// fails.
	Resolve(app *models.Application, status string, membership *models.Membership, participant *models.HackathonParticipant) error
}

// MembershipRepository defines the interface for membership data access
type MembershipRepository interface {
	Create(membership *models.Membership) error
	FindByID(id uint) (*models.Membership, error)
	FindByProjectAndUser(projectID, userID uint) (*models.Membership, error)
	ListByProject(projectID uint) ([]models.Membership, error)
	ListByUser(userID uint) ([]models.Membership, error)
	Update(membership *models.Membership) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint) (*models.Task, error)
	ListByProject(projectID uint) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uint) error

	CreateComment(comment *models.TaskComment) error
	ListComments(taskID uint) ([]models.TaskComment, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error

	// FindByIDAndUser scopes the lookup to the owning user
	FindByIDAndUser(id, userID uint) (*models.Notification, error)

	// ListByUser returns the user's notifications, newest first
	ListByUser(userID uint, unreadOnly bool) ([]models.Notification, error)
	Update(notification *models.Notification) error
}

// Stats aggregates platform-wide counters for the admin view.
type Stats struct {
	UsersTotal            int64            `json:"users_total"`
	UsersByRole           map[string]int64 `json:"users_by_role"`
	ProjectsTotal         int64            `json:"projects_total"`
	ProjectsByStatus      map[string]int64 `json:"projects_by_status"`
	ApplicationsTotal     int64            `json:"applications_total"`
	ApplicationsByStatus  map[string]int64 `json:"applications_by_status"`
	ApplicationsByType    map[string]int64 `json:"applications_by_type"`
	Memberships           int64            `json:"memberships"`
	Tasks                 int64            `json:"tasks"`
	Hackathons            int64            `json:"hackathons"`
	HackathonParticipants int64            `json:"hackathon_participants"`
}

// StatsRepository collects platform statistics
type StatsRepository interface {
	Collect() (*Stats, error)
}
