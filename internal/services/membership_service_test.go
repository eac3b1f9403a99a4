package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/ws"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MembershipServiceTestSuite defines the test suite for MembershipService
type MembershipServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *MembershipService
	owner   *models.User
	invitee *models.User
	project *models.Project
}

// SetupTest runs before each test
func (suite *MembershipServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Membership{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	notifications := NewNotificationService(repository.NewNotificationRepository(suite.db), ws.NewHub())

	suite.service = NewMembershipService(
		repository.NewMembershipRepository(suite.db),
		repository.NewProjectRepository(suite.db),
		repository.NewUserRepository(suite.db),
		notifications,
	)

	suite.owner = &models.User{Email: "owner@example.com", PasswordHash: "x", Name: "Owner", Role: models.RoleMentor}
	suite.db.Create(suite.owner)

	suite.invitee = &models.User{Email: "invitee@example.com", PasswordHash: "x", Name: "Invitee", Role: models.RoleStudent}
	suite.db.Create(suite.invitee)

	suite.project = &models.Project{Title: "Test Project", CreatedBy: suite.owner.ID, Status: models.ProjectStatusRecruiting}
	suite.db.Create(suite.project)
}

// TearDownTest runs after each test
func (suite *MembershipServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *MembershipServiceTestSuite) invite() *models.Membership {
	membership, err := suite.service.Invite(InviteInput{
		ProjectID: suite.project.ID,
		InviterID: suite.owner.ID,
		UserID:    suite.invitee.ID,
	})
	suite.Require().NoError(err)
	return membership
}

func (suite *MembershipServiceTestSuite) TestInvite_Success() {
	membership := suite.invite()

	assert.Equal(suite.T(), models.MembershipInvited, membership.Status)
	assert.Equal(suite.T(), "member", membership.RoleInTeam)
	suite.Require().NotNil(membership.InvitedBy)
	assert.Equal(suite.T(), suite.owner.ID, *membership.InvitedBy)

	var notifications []models.Notification
	suite.db.Where("user_id = ?", suite.invitee.ID).Find(&notifications)
	suite.Require().Len(notifications, 1)
	assert.Equal(suite.T(), models.NotificationInvite, notifications[0].Type)
}

func (suite *MembershipServiceTestSuite) TestInvite_NotOwner() {
	_, err := suite.service.Invite(InviteInput{
		ProjectID: suite.project.ID,
		InviterID: suite.invitee.ID,
		UserID:    suite.owner.ID,
	})
	assert.ErrorIs(suite.T(), err, ErrNotProjectOwner)
}

func (suite *MembershipServiceTestSuite) TestInvite_AlreadyMember() {
	suite.invite()

	_, err := suite.service.Invite(InviteInput{
		ProjectID: suite.project.ID,
		InviterID: suite.owner.ID,
		UserID:    suite.invitee.ID,
	})
	assert.ErrorIs(suite.T(), err, ErrAlreadyMember)
}

func (suite *MembershipServiceTestSuite) TestInvite_UserMissing() {
	_, err := suite.service.Invite(InviteInput{
		ProjectID: suite.project.ID,
		InviterID: suite.owner.ID,
		UserID:    9999,
	})
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *MembershipServiceTestSuite) TestAccept_Success() {
	membership := suite.invite()

	accepted, err := suite.service.Accept(membership.ID, suite.invitee.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.MembershipActive, accepted.Status)
}

func (suite *MembershipServiceTestSuite) TestAccept_ForeignCaller() {
	membership := suite.invite()

	_, err := suite.service.Accept(membership.ID, suite.owner.ID)
	assert.ErrorIs(suite.T(), err, ErrNotInvitedUser)
}

func (suite *MembershipServiceTestSuite) TestAccept_AlreadyActive() {
	membership := suite.invite()

	_, err := suite.service.Accept(membership.ID, suite.invitee.ID)
	suite.Require().NoError(err)

	_, err = suite.service.Accept(membership.ID, suite.invitee.ID)
	assert.ErrorIs(suite.T(), err, ErrMembershipNotInvited)
}

func (suite *MembershipServiceTestSuite) TestAccept_NotFound() {
	_, err := suite.service.Accept(9999, suite.invitee.ID)
	assert.ErrorIs(suite.T(), err, ErrMembershipNotFound)
}

func TestMembershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}
