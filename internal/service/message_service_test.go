package service

import (
	"testing"
	"time"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessageService(t *testing.T) *MessageService {
	t.Helper()
	st := newTestStore(t)
	userRepo := repository.NewUserRepository(st)
	require.NoError(t, userRepo.Create(model.User{ID: "alice", Name: "Alice", Status: model.StatusApproved}))
	require.NoError(t, userRepo.Create(model.User{ID: "bob", Name: "Bob", Status: model.StatusApproved}))
	require.NoError(t, userRepo.Create(model.User{ID: "carol", Name: "Carol", Status: model.StatusApproved}))
	return NewMessageService(repository.NewMessageRepository(st), userRepo)
}

func TestMessageService_Send(t *testing.T) {
	svc := newTestMessageService(t)

	msg, err := svc.Send("alice", "bob", "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg.Content)
	assert.False(t, msg.Read)

	_, err = svc.Send("alice", "ghost", "hi")
	assert.ErrorIs(t, err, util.ErrReceiverNotFound)

	_, err = svc.Send("alice", "bob", "   ")
	assert.ErrorIs(t, err, util.ErrEmptyContent)
}

func TestMessageService_GetConversationMarksRead(t *testing.T) {
	svc := newTestMessageService(t)

	_, err := svc.Send("bob", "alice", "one")
	require.NoError(t, err)
	_, err = svc.Send("bob", "alice", "two")
	require.NoError(t, err)

	assert.Equal(t, 2, svc.UnreadCount("alice"))

	// 首次拉取返回置读前的快照
	conv := svc.GetConversation("alice", "bob")
	require.Len(t, conv, 2)
	assert.False(t, conv[0].Read)

	// 副作用已写盘：未读归零，再次拉取体现已读
	assert.Equal(t, 0, svc.UnreadCount("alice"))
	conv = svc.GetConversation("alice", "bob")
	require.Len(t, conv, 2)
	assert.True(t, conv[0].Read)
	assert.True(t, conv[1].Read)
}

func TestMessageService_GetConversationReadFlipIsOneDirectional(t *testing.T) {
	svc := newTestMessageService(t)

	_, err := svc.Send("alice", "bob", "to bob")
	require.NoError(t, err)

	// alice 拉取会话不会把自己发出的消息对 bob 置读
	svc.GetConversation("alice", "bob")
	assert.Equal(t, 1, svc.UnreadCount("bob"))
}

func TestMessageService_EmptyConversationIsNotNil(t *testing.T) {
	svc := newTestMessageService(t)
	conv := svc.GetConversation("alice", "bob")
	assert.NotNil(t, conv)
	assert.Empty(t, conv)
}

func TestMessageService_GetConversationSummaries(t *testing.T) {
	svc := newTestMessageService(t)

	_, err := svc.Send("bob", "alice", "from bob")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Send("alice", "carol", "to carol")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Send("carol", "alice", "latest")
	require.NoError(t, err)

	summaries := svc.GetConversationSummaries("alice")
	require.Len(t, summaries, 2)

	// 最后一条消息最新的会话排在前面
	assert.Equal(t, "carol", summaries[0].User.ID)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "latest", summaries[0].LastMessage.Content)
	assert.Equal(t, 1, summaries[0].UnreadCount)

	assert.Equal(t, "bob", summaries[1].User.ID)
	assert.Equal(t, 1, summaries[1].UnreadCount)
	assert.Empty(t, summaries[0].User.Password)
}
