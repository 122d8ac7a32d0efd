package repository

import (
	"testing"

	"schoolnet_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendshipRepository_FindIsSymmetric(t *testing.T) {
	repo := NewFriendshipRepository(newTestStore(t))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f1", UserID: "alice", FriendID: "bob", Status: model.FriendshipPending,
	}))

	assert.NotNil(t, repo.Find("alice", "bob"))
	assert.NotNil(t, repo.Find("bob", "alice"))
	assert.Nil(t, repo.Find("alice", "carol"))
}

func TestFriendshipRepository_GetFriendIDs(t *testing.T) {
	repo := NewFriendshipRepository(newTestStore(t))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f1", UserID: "alice", FriendID: "bob", Status: model.FriendshipAccepted,
	}))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f2", UserID: "carol", FriendID: "alice", Status: model.FriendshipAccepted,
	}))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f3", UserID: "alice", FriendID: "dave", Status: model.FriendshipPending,
	}))

	// 不论 alice 是发起方还是接收方都算好友，pending 不算
	ids := repo.GetFriendIDs("alice")
	assert.ElementsMatch(t, []string{"bob", "carol"}, ids)
}

func TestFriendshipRepository_GetPendingFor(t *testing.T) {
	repo := NewFriendshipRepository(newTestStore(t))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f1", UserID: "bob", FriendID: "alice", Status: model.FriendshipPending,
	}))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f2", UserID: "alice", FriendID: "carol", Status: model.FriendshipPending,
	}))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f3", UserID: "dave", FriendID: "alice", Status: model.FriendshipAccepted,
	}))

	// 只包含发给 alice 且尚未处理的请求，自己发出的不算
	pending := repo.GetPendingFor("alice")
	require.Len(t, pending, 1)
	assert.Equal(t, "f1", pending[0].ID)
}

func TestFriendshipRepository_UpdateStatus(t *testing.T) {
	repo := NewFriendshipRepository(newTestStore(t))
	require.NoError(t, repo.Create(model.Friendship{
		ID: "f1", UserID: "alice", FriendID: "bob", Status: model.FriendshipPending,
	}))

	require.NoError(t, repo.Update("f1", func(f *model.Friendship) {
		f.Status = model.FriendshipAccepted
	}))

	got := repo.GetByID("f1")
	require.NotNil(t, got)
	assert.Equal(t, model.FriendshipAccepted, got.Status)
}
