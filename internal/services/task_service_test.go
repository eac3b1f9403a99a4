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

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	owner   *models.User
	project *models.Project
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskComment{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	notifications := NewNotificationService(repository.NewNotificationRepository(suite.db), ws.NewHub())

	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewProjectRepository(suite.db),
		notifications,
	)

	suite.owner = &models.User{
		Email:        "owner@example.com",
		PasswordHash: "hashedpassword",
		Name:         "Owner",
		Role:         models.RoleMentor,
	}
	suite.db.Create(suite.owner)

	suite.project = &models.Project{
		Title:     "Test Project",
		CreatedBy: suite.owner.ID,
		Status:    models.ProjectStatusActive,
	}
	suite.db.Create(suite.project)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) projectProgress() float64 {
	var project models.Project
	suite.Require().NoError(suite.db.First(&project, suite.project.ID).Error)
	return project.ProgressPercent
}

func (suite *TaskServiceTestSuite) TestCreate_DefaultsToTodo() {
	task, err := suite.service.Create(CreateTaskInput{
		ProjectID: suite.project.ID,
		Title:     "First Task",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.Equal(suite.T(), 0.0, suite.projectProgress())
}

func (suite *TaskServiceTestSuite) TestCreate_InvalidStatus() {
	_, err := suite.service.Create(CreateTaskInput{
		ProjectID: suite.project.ID,
		Title:     "Bad Task",
		Status:    "blocked",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidTaskStatus)
}

func (suite *TaskServiceTestSuite) TestCreate_ProjectMissing() {
	_, err := suite.service.Create(CreateTaskInput{
		ProjectID: 9999,
		Title:     "Orphan Task",
	})

	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

// Progress walks 0 -> 50 -> 100 as tasks flip to done.
func (suite *TaskServiceTestSuite) TestUpdate_ProgressRecomputed() {
	task1, err := suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task 1"})
	suite.Require().NoError(err)
	task2, err := suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task 2"})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 0.0, suite.projectProgress())

	done := models.TaskStatusDone

	_, err = suite.service.Update(task1.ID, UpdateTaskInput{Status: &done})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 50.0, suite.projectProgress())

	_, err = suite.service.Update(task2.ID, UpdateTaskInput{Status: &done})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 100.0, suite.projectProgress())
}

func (suite *TaskServiceTestSuite) TestUpdate_DoneNotifiesOwner() {
	task, err := suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task"})
	suite.Require().NoError(err)

	done := models.TaskStatusDone
	_, err = suite.service.Update(task.ID, UpdateTaskInput{Status: &done})
	suite.Require().NoError(err)

	var notifications []models.Notification
	suite.db.Where("user_id = ?", suite.owner.ID).Find(&notifications)
	suite.Require().Len(notifications, 1)
	assert.Equal(suite.T(), models.NotificationTaskDone, notifications[0].Type)
}

func (suite *TaskServiceTestSuite) TestUpdate_SameStatusDoesNotNotify() {
	task, err := suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task"})
	suite.Require().NoError(err)

	title := "Renamed"
	_, err = suite.service.Update(task.ID, UpdateTaskInput{Title: &title})
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Notification{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TaskServiceTestSuite) TestDelete_RecomputesProgress() {
	task1, err := suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task 1"})
	suite.Require().NoError(err)
	_, err = suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task 2", Status: models.TaskStatusDone})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), 50.0, suite.projectProgress())

	suite.Require().NoError(suite.service.Delete(task1.ID))
	assert.Equal(suite.T(), 100.0, suite.projectProgress())
}

func (suite *TaskServiceTestSuite) TestComments_RoundTrip() {
	task, err := suite.service.Create(CreateTaskInput{ProjectID: suite.project.ID, Title: "Task"})
	suite.Require().NoError(err)

	comment, err := suite.service.AddComment(task.ID, suite.owner.ID, "Looks good")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), suite.owner.ID, comment.AuthorID)

	comments, err := suite.service.ListComments(task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 1)
	assert.Equal(suite.T(), "Looks good", comments[0].Body)
}

func (suite *TaskServiceTestSuite) TestComments_TaskMissing() {
	_, err := suite.service.AddComment(9999, suite.owner.ID, "Hello")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
