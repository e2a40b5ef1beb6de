package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/api/middleware"
	"github.com/carecost/predictor/internal/application/services"
	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

type singleUserRepo struct {
	user *entities.User
}

func (r *singleUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.user = user
	return nil
}

func (r *singleUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *singleUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *singleUserRepo) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	if r.user == nil {
		return nil, nil
	}
	return []*entities.User{r.user}, nil
}

func authFixture(t *testing.T) (*middleware.AuthMiddleware, string, string) {
	t.Helper()
	svc := services.NewAuthService(&singleUserRepo{}, "test-secret", time.Hour)

	user, err := svc.Signup(context.Background(), "alice", "a@example.com", "correct-horse")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	return middleware.NewAuthMiddleware(svc), token, user.ID
}

func TestAuthMiddleware_RequiredAcceptsValidToken(t *testing.T) {
	mw, token, userID := authFixture(t)

	var gotUserID, gotUsername string
	handler := mw.Required(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = middleware.UserIDFromContext(r.Context())
		gotUsername = middleware.UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/predictions/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "alice", gotUsername)
}

func TestAuthMiddleware_RequiredRejectsMissingToken(t *testing.T) {
	mw, _, _ := authFixture(t)

	handler := mw.Required(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/api/predictions/history", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RequiredRejectsBadToken(t *testing.T) {
	mw, token, _ := authFixture(t)

	handler := mw.Required(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/api/predictions/history", nil)
	req.Header.Set("Authorization", "Bearer "+token+"tampered")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_OptionalLetsAnonymousThrough(t *testing.T) {
	mw, _, _ := authFixture(t)

	handler := mw.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, middleware.UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/predictions", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_OptionalAttachesClaims(t *testing.T) {
	mw, token, userID := authFixture(t)

	handler := mw.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userID, middleware.UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/predictions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
