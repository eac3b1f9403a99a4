package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/ws"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NotificationServiceTestSuite defines the test suite for NotificationService
type NotificationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *NotificationService
	user    *models.User
}

// SetupTest runs before each test
func (suite *NotificationServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Notification{})
	suite.Require().NoError(err)

	suite.service = NewNotificationService(repository.NewNotificationRepository(suite.db), ws.NewHub())

	suite.user = &models.User{Email: "user@example.com", PasswordHash: "x", Name: "User", Role: models.RoleStudent}
	suite.db.Create(suite.user)
}

// TearDownTest runs after each test
func (suite *NotificationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *NotificationServiceTestSuite) TestCreate_PersistsPayload() {
	notification, err := suite.service.Create(suite.user.ID, models.NotificationInvite, map[string]interface{}{
		"project_id":    1,
		"project_title": "Test Project",
		"membership_id": 2,
	})
	suite.Require().NoError(err)
	assert.False(suite.T(), notification.IsRead)

	var stored models.Notification
	suite.Require().NoError(suite.db.First(&stored, notification.ID).Error)

	var payload map[string]interface{}
	suite.Require().NoError(json.Unmarshal(stored.Payload, &payload))
	assert.Equal(suite.T(), "Test Project", payload["project_title"])
}

func (suite *NotificationServiceTestSuite) TestListByUser_UnreadOnly() {
	_, err := suite.service.Create(suite.user.ID, models.NotificationInvite, map[string]interface{}{"project_id": 1})
	suite.Require().NoError(err)
	read, err := suite.service.Create(suite.user.ID, models.NotificationTaskDone, map[string]interface{}{"task_id": 1})
	suite.Require().NoError(err)

	_, err = suite.service.MarkAsRead(read.ID, suite.user.ID)
	suite.Require().NoError(err)

	all, err := suite.service.ListByUser(suite.user.ID, false)
	suite.Require().NoError(err)
	assert.Len(suite.T(), all, 2)

	unread, err := suite.service.ListByUser(suite.user.ID, true)
	suite.Require().NoError(err)
	suite.Require().Len(unread, 1)
	assert.Equal(suite.T(), models.NotificationInvite, unread[0].Type)
}

func (suite *NotificationServiceTestSuite) TestMarkAsRead_Idempotent() {
	notification, err := suite.service.Create(suite.user.ID, models.NotificationInvite, map[string]interface{}{"project_id": 1})
	suite.Require().NoError(err)

	first, err := suite.service.MarkAsRead(notification.ID, suite.user.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), first.IsRead)

	second, err := suite.service.MarkAsRead(notification.ID, suite.user.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), second.IsRead)
}

func (suite *NotificationServiceTestSuite) TestMarkAsRead_ForeignUser() {
	other := &models.User{Email: "other@example.com", PasswordHash: "x", Name: "Other", Role: models.RoleStudent}
	suite.db.Create(other)

	notification, err := suite.service.Create(suite.user.ID, models.NotificationInvite, map[string]interface{}{"project_id": 1})
	suite.Require().NoError(err)

	_, err = suite.service.MarkAsRead(notification.ID, other.ID)
	assert.ErrorIs(suite.T(), err, ErrNotificationNotFound)

	// The row stays unread for the owner.
	var stored models.Notification
	suite.Require().NoError(suite.db.First(&stored, notification.ID).Error)
	assert.False(suite.T(), stored.IsRead)
}

func (suite *NotificationServiceTestSuite) TestMarkAsRead_NotFound() {
	_, err := suite.service.MarkAsRead(9999, suite.user.ID)
	assert.ErrorIs(suite.T(), err, ErrNotificationNotFound)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
