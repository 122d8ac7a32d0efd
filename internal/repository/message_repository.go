package repository

import (
	"sort"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/pkg/store"
)

type MessageRepository struct {
	messages *store.Collection[model.Message]
}

func NewMessageRepository(s *store.Store) *MessageRepository {
	return &MessageRepository{messages: s.Messages}
}

// GetAll 返回全部消息，按创建时间正序（会话按时间顺序渲染）
func (r *MessageRepository) GetAll() []model.Message {
	messages := r.messages.LoadAll()
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages
}

// GetConversation 返回两个用户之间的全部消息，不分参数顺序，正序排列
func (r *MessageRepository) GetConversation(userA, userB string) []model.Message {
	var conv []model.Message
	for _, m := range r.GetAll() {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			conv = append(conv, m)
		}
	}
	return conv
}

// GetConversationPartners 返回与指定用户有过消息往来的对端ID去重集合
func (r *MessageRepository) GetConversationPartners(userID string) []string {
	seen := make(map[string]bool)
	var partners []string
	for _, m := range r.GetAll() {
		var other string
		switch userID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			partners = append(partners, other)
		}
	}
	return partners
}

// CountUnread 指定用户的未读消息总数
func (r *MessageRepository) CountUnread(userID string) int {
	count := 0
	for _, m := range r.messages.LoadAll() {
		if m.ReceiverID == userID && !m.Read {
			count++
		}
	}
	return count
}

func (r *MessageRepository) Create(m model.Message) error {
	return r.messages.Mutate(func(items []model.Message) ([]model.Message, bool) {
		return append(items, m), true
	})
}

// MarkAsRead 把 senderID 发给 receiverID 的未读消息批量置为已读，一次写盘
func (r *MessageRepository) MarkAsRead(senderID, receiverID string) error {
	return r.messages.Mutate(func(items []model.Message) ([]model.Message, bool) {
		changed := false
		for i := range items {
			if items[i].SenderID == senderID && items[i].ReceiverID == receiverID && !items[i].Read {
				items[i].Read = true
				changed = true
			}
		}
		return items, changed
	})
}
