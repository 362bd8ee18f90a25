package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devtrails/bootcamp-directory/internal/api/handlers"
	"github.com/devtrails/bootcamp-directory/internal/application/services"
	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
)

type stubUserService struct {
	user  *entities.User
	users []*entities.User
	err   error

	created int
}

func (s *stubUserService) Create(ctx context.Context, input services.UserInput) (*entities.User, error) {
	if s.err == nil {
		s.created++
	}
	return s.user, s.err
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserService) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Update(ctx context.Context, id string, patch services.UserPatch) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.err
}

func TestUserHandler_AdminGate(t *testing.T) {
	service := &stubUserService{}
	handler := handlers.NewUserHandler(service)

	// Anonymous caller
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	w := httptest.NewRecorder()
	handler.ListUsers(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated but not admin
	req = httptest.NewRequest("GET", "/api/v1/users", nil)
	req = asActor(req, policy.Actor{ID: "u1", Role: entities.RoleUser})
	w = httptest.NewRecorder()
	handler.ListUsers(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin
	req = httptest.NewRequest("GET", "/api/v1/users", nil)
	req = asActor(req, policy.Actor{ID: "a1", Role: entities.RoleAdmin})
	w = httptest.NewRecorder()
	handler.ListUsers(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_CreateUser(t *testing.T) {
	service := &stubUserService{user: &entities.User{ID: "u1", Name: "Dana", Email: "dana@example.com"}}
	handler := handlers.NewUserHandler(service)

	req := httptest.NewRequest("POST", "/api/v1/users", strings.NewReader(`{"name":"Dana","email":"dana@example.com"}`))
	req = asActor(req, policy.Actor{ID: "a1", Role: entities.RoleAdmin})
	w := httptest.NewRecorder()

	handler.CreateUser(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, service.created)
}

func TestUserHandler_CreateUser_NonAdminNeverReachesService(t *testing.T) {
	service := &stubUserService{user: &entities.User{ID: "u1"}}
	handler := handlers.NewUserHandler(service)

	req := httptest.NewRequest("POST", "/api/v1/users", strings.NewReader(`{"name":"Dana"}`))
	req = asActor(req, policy.Actor{ID: "u1", Role: entities.RoleUser})
	w := httptest.NewRecorder()

	handler.CreateUser(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, service.created)
}
