package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teamup-dev/teamup/internal/auth"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"github.com/teamup-dev/teamup/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *AuthHandler
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	err = auth.InitJWT("test-secret", 30, 7)
	suite.Require().NoError(err)

	suite.handler = NewAuthHandler(services.NewAuthService(repository.NewUserRepository(suite.db)))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthHandlerTestSuite) createContext(method, url string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func (suite *AuthHandlerTestSuite) register(email string) map[string]string {
	c, w := suite.createContext("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})

	suite.handler.Register(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var tokens map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tokens))
	return tokens
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	tokens := suite.register("test@example.com")

	assert.NotEmpty(suite.T(), tokens["access_token"])
	assert.NotEmpty(suite.T(), tokens["refresh_token"])

	var user models.User
	err := suite.db.Where("email = ?", "test@example.com").First(&user).Error
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleStudent, user.Role)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
}

func (suite *AuthHandlerTestSuite) TestRegister_EmailTaken() {
	suite.register("test@example.com")

	c, w := suite.createContext("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Second User",
	})

	suite.handler.Register(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	c, w := suite.createContext("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    "test@example.com",
		"password": "short",
		"name":     "Test User",
	})

	suite.handler.Register(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidRole() {
	c, w := suite.createContext("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Test User",
		"role":     "superuser",
	})

	suite.handler.Register(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	suite.register("test@example.com")

	c, w := suite.createContext("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "password123",
	})

	suite.handler.Login(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tokens map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tokens))
	assert.NotEmpty(suite.T(), tokens["access_token"])
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.register("test@example.com")

	c, w := suite.createContext("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "wrongpassword",
	})

	suite.handler.Login(c)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_Success() {
	tokens := suite.register("test@example.com")

	c, w := suite.createContext("POST", "/api/v1/auth/refresh", map[string]interface{}{
		"refresh_token": tokens["refresh_token"],
	})

	suite.handler.Refresh(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var refreshed map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.NotEmpty(suite.T(), refreshed["access_token"])
}

// An access token is not accepted where a refresh token is expected.
func (suite *AuthHandlerTestSuite) TestRefresh_AccessTokenRejected() {
	tokens := suite.register("test@example.com")

	c, w := suite.createContext("POST", "/api/v1/auth/refresh", map[string]interface{}{
		"refresh_token": tokens["access_token"],
	})

	suite.handler.Refresh(c)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
