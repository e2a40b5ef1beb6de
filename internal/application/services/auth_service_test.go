package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

type stubUserRepo struct {
	byUsername map[string]*entities.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byUsername: make(map[string]*entities.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *entities.User) error {
	s.byUsername[user.Username] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	for _, u := range s.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if u, ok := s.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(s.byUsername))
	for _, u := range s.byUsername {
		out = append(out, u)
	}
	return out, nil
}

func newTestAuthService() *AuthService {
	return NewAuthService(newStubUserRepo(), "test-secret", time.Hour)
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	user, err := svc.Signup(ctx, "alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthService_SignupValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	_, err := svc.Signup(ctx, "", "a@example.com", "long-enough-password")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Signup(ctx, "bob", "b@example.com", "short")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAuthService_SignupDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	_, err := svc.Signup(ctx, "alice", "a@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "alice", "other@example.com", "battery-staple")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	_, err := svc.Signup(ctx, "alice", "a@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, _, err = svc.Login(ctx, "nobody", "whatever-password")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_VerifyTokenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	_, err := svc.Signup(ctx, "alice", "a@example.com", "correct-horse")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token + "x")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	// A token signed with a different secret is rejected.
	other := NewAuthService(newStubUserRepo(), "other-secret", time.Hour)
	_, err = other.VerifyToken(token)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newStubUserRepo(), "test-secret", -time.Minute)

	_, err := svc.Signup(ctx, "alice", "a@example.com", "correct-horse")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}
