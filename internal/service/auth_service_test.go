package service

import (
	"testing"
	"time"

	"schoolnet_backend/internal/config"
	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"
	"schoolnet_backend/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(newTestStore(t)), testConfig())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("first user becomes approved admin", func(t *testing.T) {
		svc := newTestAuthService(t)

		user, err := svc.Register("admin@school.edu", "password123", "Admin", "")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.Equal(t, model.StatusApproved, user.Status)
	})

	t.Run("subsequent users are pending", func(t *testing.T) {
		svc := newTestAuthService(t)

		_, err := svc.Register("admin@school.edu", "password123", "Admin", "")
		require.NoError(t, err)

		user, err := svc.Register("bob@school.edu", "password123", "Bob", "10年级")
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, user.Role)
		assert.Equal(t, model.StatusPending, user.Status)
		assert.Equal(t, "10年级", user.Grade)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc := newTestAuthService(t)

		_, err := svc.Register("dup@school.edu", "password123", "A", "")
		require.NoError(t, err)

		_, err = svc.Register("dup@school.edu", "otherpass", "B", "")
		assert.ErrorIs(t, err, util.ErrEmailRegistered)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		svc := newTestAuthService(t)

		user, err := svc.Register("a@school.edu", "plaintext", "A", "")
		require.NoError(t, err)
		assert.NotEqual(t, "plaintext", user.Password)
		assert.NotEmpty(t, user.Password)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials return user and token", func(t *testing.T) {
		svc := newTestAuthService(t)
		_, err := svc.Register("a@school.edu", "password123", "A", "")
		require.NoError(t, err)

		user, token, err := svc.Login("a@school.edu", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "a@school.edu", user.Email)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc := newTestAuthService(t)
		_, err := svc.Register("a@school.edu", "password123", "A", "")
		require.NoError(t, err)

		_, _, errMissing := svc.Login("nobody@school.edu", "password123")
		_, _, errWrong := svc.Login("a@school.edu", "badpassword")

		assert.ErrorIs(t, errMissing, util.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, util.ErrInvalidCredentials)
	})

	t.Run("rejected account cannot login even with correct password", func(t *testing.T) {
		st := newTestStore(t)
		userRepo := repository.NewUserRepository(st)
		svc := NewAuthService(userRepo, testConfig())

		_, err := svc.Register("admin@school.edu", "password123", "Admin", "")
		require.NoError(t, err)
		rejected, err := svc.Register("bad@school.edu", "password123", "Bad", "")
		require.NoError(t, err)

		require.NoError(t, userRepo.Update(rejected.ID, func(u *model.User) {
			u.Status = model.StatusRejected
		}))

		_, _, err = svc.Login("bad@school.edu", "password123")
		assert.ErrorIs(t, err, util.ErrAccountRejected)
	})

	t.Run("pending account still gets a token", func(t *testing.T) {
		svc := newTestAuthService(t)
		_, err := svc.Register("admin@school.edu", "password123", "Admin", "")
		require.NoError(t, err)
		_, err = svc.Register("new@school.edu", "password123", "New", "")
		require.NoError(t, err)

		user, token, err := svc.Login("new@school.edu", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, model.StatusPending, user.Status)
	})
}
