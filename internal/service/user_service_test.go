package service

import (
	"fmt"
	"testing"
	"time"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *repository.UserRepository) {
	t.Helper()
	userRepo := repository.NewUserRepository(newTestStore(t))
	return NewUserService(userRepo), userRepo
}

func strptr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	svc, repo := newTestUserService(t)
	require.NoError(t, repo.Create(model.User{ID: "u1", Name: "Alice", Bio: "old bio", Grade: "9年级"}))

	// 只改提交的字段，其余保持原值
	user, err := svc.UpdateProfile("u1", ProfileUpdate{Bio: strptr("new bio")})
	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "9年级", user.Grade)

	_, err = svc.UpdateProfile("missing", ProfileUpdate{Bio: strptr("x")})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUserService_Search(t *testing.T) {
	svc, repo := newTestUserService(t)
	require.NoError(t, repo.Create(model.User{ID: "me", Name: "Searcher", Status: model.StatusApproved}))
	require.NoError(t, repo.Create(model.User{ID: "u1", Name: "Alice Zhang", Email: "alice@school.edu", Status: model.StatusApproved, Password: "hash"}))
	require.NoError(t, repo.Create(model.User{ID: "u2", Name: "Alina Chen", Email: "alina@school.edu", Status: model.StatusPending}))
	require.NoError(t, repo.Create(model.User{ID: "u3", Name: "Bob Li", Grade: "10年级", Status: model.StatusApproved}))

	t.Run("short query returns empty", func(t *testing.T) {
		assert.Empty(t, svc.Search("me", "a"))
		assert.Empty(t, svc.Search("me", ""))
	})

	t.Run("single multibyte character counts as one character", func(t *testing.T) {
		svc, repo := newTestUserService(t)
		require.NoError(t, repo.Create(model.User{ID: "u1", Name: "张伟", Status: model.StatusApproved}))
		require.NoError(t, repo.Create(model.User{ID: "u2", Name: "Жанна", Status: model.StatusApproved}))

		// 一个汉字或西里尔字母是多个字节，但仍只算一个字符，不满足最少两字符
		assert.Empty(t, svc.Search("me", "张"))
		assert.Empty(t, svc.Search("me", "Ж"))

		// 两个字符起正常匹配
		assert.Len(t, svc.Search("me", "张伟"), 1)
		assert.Len(t, svc.Search("me", "Жа"), 1)
	})

	t.Run("matches name case insensitively", func(t *testing.T) {
		results := svc.Search("me", "ALICE")
		require.Len(t, results, 1)
		assert.Equal(t, "u1", results[0].ID)
		assert.Empty(t, results[0].Password)
	})

	t.Run("pending users excluded", func(t *testing.T) {
		results := svc.Search("me", "alina")
		assert.Empty(t, results)
	})

	t.Run("matches email and grade", func(t *testing.T) {
		assert.Len(t, svc.Search("me", "school.edu"), 1)
		assert.Len(t, svc.Search("me", "10年级"), 1)
	})

	t.Run("excludes the searcher", func(t *testing.T) {
		assert.Empty(t, svc.Search("me", "Searcher"))
	})

	t.Run("capped at 20 results", func(t *testing.T) {
		svc, repo := newTestUserService(t)
		for i := 0; i < 30; i++ {
			require.NoError(t, repo.Create(model.User{
				ID:     fmt.Sprintf("s%d", i),
				Name:   fmt.Sprintf("Student %d", i),
				Status: model.StatusApproved,
			}))
		}
		assert.Len(t, svc.Search("me", "Student"), util.SearchMaxResults)
	})
}

func TestUserService_AdminUpdateUser(t *testing.T) {
	svc, repo := newTestUserService(t)
	require.NoError(t, repo.Create(model.User{ID: "u1", Name: "Alice", Role: model.RoleUser, Status: model.StatusPending}))

	role := model.RoleAdmin
	status := model.StatusApproved
	user, err := svc.AdminUpdateUser("u1", AdminUpdate{Role: &role, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, model.StatusApproved, user.Status)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserService_ApproveAndReject(t *testing.T) {
	svc, repo := newTestUserService(t)
	require.NoError(t, repo.Create(model.User{ID: "u1", Status: model.StatusPending}))
	require.NoError(t, repo.Create(model.User{ID: "u2", Status: model.StatusPending}))

	require.NoError(t, svc.ApproveUser("u1"))
	require.NoError(t, svc.RejectUser("u2"))

	assert.Equal(t, model.StatusApproved, repo.GetByID("u1").Status)
	assert.Equal(t, model.StatusRejected, repo.GetByID("u2").Status)

	assert.ErrorIs(t, svc.ApproveUser("missing"), util.ErrUserNotFound)
	assert.ErrorIs(t, svc.RejectUser("missing"), util.ErrUserNotFound)
}

func TestUserService_FixFirstUser(t *testing.T) {
	svc, repo := newTestUserService(t)

	_, err := svc.FixFirstUser()
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	now := time.Now()
	require.NoError(t, repo.Create(model.User{ID: "second", Role: model.RoleUser, Status: model.StatusPending, CreatedAt: now}))
	require.NoError(t, repo.Create(model.User{ID: "first", Role: model.RoleUser, Status: model.StatusPending, CreatedAt: now.Add(-time.Hour)}))

	fixed, err := svc.FixFirstUser()
	require.NoError(t, err)
	assert.Equal(t, "first", fixed.ID)
	assert.Equal(t, model.RoleAdmin, fixed.Role)
	assert.Equal(t, model.StatusApproved, fixed.Status)

	// 其他用户不受影响
	assert.Equal(t, model.RoleUser, repo.GetByID("second").Role)
}
