//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dealerbid/internal/domain/auth"
	"dealerbid/internal/handler/api"
	"dealerbid/internal/pkg/config"
	"dealerbid/internal/pkg/jwt"
	"dealerbid/internal/usecase/commands"
	"dealerbid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAuthCommands struct {
	result *commands.LoginResult
	err    error
}

func (s *stubAuthCommands) Login(_ context.Context, _ auth.Credentials) (*commands.LoginResult, error) {
	return s.result, s.err
}

type stubUserQueries struct {
	view *queries.AuthorizedUserView
	err  error
}

func (s *stubUserQueries) GetCurrentUser(_ context.Context, _ uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.view, s.err
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubAuthCommands
	queries  *stubUserQueries
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubAuthCommands{}
	s.queries = &stubUserQueries{}

	jwtService := jwt.NewService("test-secret", time.Hour)
	handler := api.NewAuthHandler(s.commands, s.queries, jwtService, config.NewTestConfig())

	s.router.POST("/api/auth/login", handler.Login)
	s.router.POST("/api/auth/logout", handler.Logout)
	s.router.GET("/api/auth/me", func(c *gin.Context) {
		// Stand-in for the auth middleware.
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", uuid.New())
		}
		handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) postLogin(body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) TestLogin() {
	userID := uuid.New()
	s.commands.result = &commands.LoginResult{
		Token: "signed-token",
		User:  &queries.AuthorizedUserView{ID: userID, Email: "seller@example.com", Role: "seller", IsActive: true},
	}

	w := s.postLogin(`{"email":"seller@example.com","password":"correct-horse"}`)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "signed-token")
	s.Contains(w.Body.String(), "seller@example.com")

	var hasAuthCookie bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" && c.Value != "" {
			hasAuthCookie = true
		}
	}
	s.True(hasAuthCookie, "login should set the access token cookie")
}

func (s *AuthHandlerTestSuite) TestLogin_BadPayload() {
	w := s.postLogin(`{"email":"not-an-email","password":"short"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	s.commands.err = commands.ErrInvalidCredentials

	w := s.postLogin(`{"email":"seller@example.com","password":"wrong-password"}`)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogin_InactiveAccount() {
	s.commands.err = queries.ErrUserInactive

	w := s.postLogin(`{"email":"seller@example.com","password":"correct-horse"}`)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.queries.view = &queries.AuthorizedUserView{ID: uuid.New(), Email: "seller@example.com", Role: "seller", IsActive: true}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "seller@example.com")
}

func (s *AuthHandlerTestSuite) TestMe_Unauthenticated() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}
