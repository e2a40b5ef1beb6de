package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/api/handlers"
	"github.com/carecost/predictor/internal/application/services"
	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

type memoryUserRepo struct {
	users map[string]*entities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*entities.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *memoryUserRepo) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func newAuthHandler() *handlers.AuthHandler {
	svc := services.NewAuthService(newMemoryUserRepo(), "test-secret", time.Hour)
	return handlers.NewAuthHandler(svc)
}

func TestAuthHandler_SignupAndLogin(t *testing.T) {
	handler := newAuthHandler()

	body := `{"username":"alice","email":"alice@example.com","password":"correct-horse"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var user entities.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
	// The hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password_hash")

	loginBody := `{"username":"alice","password":"correct-horse"}`
	req = httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(loginBody))
	w = httptest.NewRecorder()

	handler.Login(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string        `json:"token"`
		User  entities.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "alice", response.User.Username)
}

func TestAuthHandler_SignupDuplicate(t *testing.T) {
	handler := newAuthHandler()

	body := `{"username":"alice","email":"alice@example.com","password":"correct-horse"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.Signup(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w = httptest.NewRecorder()
	handler.Signup(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	handler := newAuthHandler()

	body := `{"username":"ghost","password":"whatever-password"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SignupWeakPassword(t *testing.T) {
	handler := newAuthHandler()

	body := `{"username":"alice","email":"alice@example.com","password":"short"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
