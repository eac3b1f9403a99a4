package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teamup-dev/teamup/db"
	"github.com/teamup-dev/teamup/internal/auth"
	"github.com/teamup-dev/teamup/internal/handlers"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/services"
	"github.com/teamup-dev/teamup/internal/ws"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RouterTestSuite exercises the API end to end through the mounted routes,
// including the auth middleware and role gates.
type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *RouterTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.Project{},
		&models.RoleRequirement{},
		&models.Task{},
		&models.TaskComment{},
		&models.Membership{},
		&models.HackathonParticipant{},
		&models.Application{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	db.SetDB(suite.db)

	err = auth.InitJWT("test-secret", 30, 7)
	suite.Require().NoError(err)

	users := repository.NewUserRepository(suite.db)
	projects := repository.NewProjectRepository(suite.db)
	hackathons := repository.NewHackathonRepository(suite.db)
	applications := repository.NewApplicationRepository(suite.db)
	memberships := repository.NewMembershipRepository(suite.db)
	tasks := repository.NewTaskRepository(suite.db)
	notifications := repository.NewNotificationRepository(suite.db)
	stats := repository.NewStatsRepository(suite.db)

	hub := ws.NewHub()
	notificationService := services.NewNotificationService(notifications, hub)
	membershipService := services.NewMembershipService(memberships, projects, users, notificationService)
	applicationService := services.NewApplicationService(applications, projects, hackathons, memberships, notificationService)

	gin.SetMode(gin.TestMode)

	suite.router = New(Handlers{
		Auth:          handlers.NewAuthHandler(services.NewAuthService(users)),
		Users:         handlers.NewUserHandler(users),
		Projects:      handlers.NewProjectHandler(services.NewProjectService(projects), membershipService),
		Tasks:         handlers.NewTaskHandler(services.NewTaskService(tasks, projects, notificationService)),
		Applications:  handlers.NewApplicationHandler(applicationService),
		Memberships:   handlers.NewMembershipHandler(membershipService),
		Hackathons:    handlers.NewHackathonHandler(services.NewHackathonService(hackathons), applicationService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Admin:         handlers.NewAdminHandler(applicationService, services.NewProjectService(projects), users, stats),
		WS:            handlers.NewWSHandler(hub),
	})
}

// TearDownTest runs after each test
func (suite *RouterTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RouterTestSuite) request(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var req *http.Request

	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its access token.
func (suite *RouterTestSuite) register(email, role string) string {
	w := suite.request("POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
		"role":     role,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var tokens map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tokens))
	return tokens["access_token"]
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.request("GET", "/health", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestMe_RequiresToken() {
	w := suite.request("GET", "/api/v1/users/me", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestMe_Success() {
	token := suite.register("student@example.com", models.RoleStudent)

	w := suite.request("GET", "/api/v1/users/me", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "student@example.com", suite.decode(w)["email"])
}

func (suite *RouterTestSuite) TestCreateProject_RoleGate() {
	student := suite.register("student@example.com", models.RoleStudent)
	mentor := suite.register("mentor@example.com", models.RoleMentor)

	payload := map[string]interface{}{
		"title":       "Test Project",
		"description": "A project",
	}

	w := suite.request("POST", "/api/v1/projects", student, payload)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("POST", "/api/v1/projects", mentor, payload)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Equal(suite.T(), "recruiting", suite.decode(w)["status"])
}

func (suite *RouterTestSuite) TestProjects_ListIsPublic() {
	mentor := suite.register("mentor@example.com", models.RoleMentor)
	suite.request("POST", "/api/v1/projects", mentor, map[string]interface{}{
		"title":       "Test Project",
		"description": "A project",
	})

	w := suite.request("GET", "/api/v1/projects", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var projects []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(suite.T(), projects, 1)
}

// The full happy path: apply, approve as owner, membership materializes and
// the applicant holds one unread application_status notification.
func (suite *RouterTestSuite) TestApplicationLifecycle() {
	mentor := suite.register("mentor@example.com", models.RoleMentor)
	student := suite.register("student@example.com", models.RoleStudent)

	w := suite.request("POST", "/api/v1/projects", mentor, map[string]interface{}{
		"title":       "Test Project",
		"description": "A project",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	projectID := uint(suite.decode(w)["id"].(float64))

	w = suite.request("POST", "/api/v1/applications", student, map[string]interface{}{
		"type":      "project",
		"target_id": projectID,
		"message":   "Let me in",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	applicationID := uint(suite.decode(w)["id"].(float64))

	// A second identical submission conflicts.
	w = suite.request("POST", "/api/v1/applications", student, map[string]interface{}{
		"type":      "project",
		"target_id": projectID,
	})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	// Only the target owner resolves.
	approvePath := fmt.Sprintf("/api/v1/applications/%d/approve", applicationID)
	w = suite.request("POST", approvePath, student, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("POST", approvePath, mentor, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "approved", suite.decode(w)["status"])

	// Replay conflicts and leaves a single membership.
	w = suite.request("POST", approvePath, mentor, nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/v1/memberships/project/%d", projectID), mentor, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var memberships []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &memberships))
	suite.Require().Len(memberships, 1)
	assert.Equal(suite.T(), "active", memberships[0]["status"])

	w = suite.request("GET", "/api/v1/notifications?unread_only=true", student, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var notifications []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &notifications))
	suite.Require().Len(notifications, 1)
	assert.Equal(suite.T(), "application_status", notifications[0]["type"])
}

func (suite *RouterTestSuite) TestAdmin_RoleGate() {
	student := suite.register("student@example.com", models.RoleStudent)
	admin := suite.register("admin@example.com", models.RoleAdmin)

	w := suite.request("GET", "/api/v1/admin/stats", student, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("GET", "/api/v1/admin/stats", admin, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	stats := suite.decode(w)
	assert.Equal(suite.T(), float64(2), stats["users_total"])
}

func (suite *RouterTestSuite) TestAdmin_CannotDeleteSelf() {
	admin := suite.register("admin@example.com", models.RoleAdmin)

	w := suite.request("GET", "/api/v1/users/me", admin, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	adminID := uint(suite.decode(w)["id"].(float64))

	w = suite.request("DELETE", fmt.Sprintf("/api/v1/admin/users/%d", adminID), admin, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestValidationErrorCarriesDetails() {
	w := suite.request("POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "short@example.com",
		"password": "short",
		"name":     "Short Password",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	body := suite.decode(w)
	errBody, ok := body["error"].(map[string]interface{})
	suite.Require().True(ok)
	assert.NotEmpty(suite.T(), errBody["details"])
}

func (suite *RouterTestSuite) TestErrorEnvelopeShape() {
	w := suite.request("GET", "/api/v1/users/me", "", nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	body := suite.decode(w)
	errBody, ok := body["error"].(map[string]interface{})
	suite.Require().True(ok)
	assert.Equal(suite.T(), float64(http.StatusUnauthorized), errBody["code"])
	assert.Equal(suite.T(), "/api/v1/users/me", errBody["path"])
	assert.NotEmpty(suite.T(), errBody["message"])
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
