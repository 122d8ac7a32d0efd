package service

import (
	"sort"
	"strings"
	"time"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"
	"schoolnet_backend/pkg/logger"

	"go.uber.org/zap"
)

type MessageService struct {
	MessageRepo *repository.MessageRepository
	UserRepo    *repository.UserRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, userRepo *repository.UserRepository) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
	}
}

// Send 发送私信，新消息初始为未读
func (s *MessageService) Send(senderID, receiverID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyContent
	}

	if s.UserRepo.GetByID(receiverID) == nil {
		return nil, util.ErrReceiverNotFound
	}

	message := model.Message{
		ID:         model.GenerateID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
		CreatedAt:  time.Now(),
	}

	if err := s.MessageRepo.Create(message); err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversation 拉取与对方的会话，按时间正序。
// 作为副作用，对方发来的未读消息全部置为已读；返回的是置读前的快照，
// 所以首次拉取时消息仍显示未读，下次拉取才体现已读
func (s *MessageService) GetConversation(userID, otherID string) []model.Message {
	messages := s.MessageRepo.GetConversation(userID, otherID)
	if err := s.MessageRepo.MarkAsRead(otherID, userID); err != nil {
		logger.Log.Warn("置读写回失败", zap.String("sender", otherID), zap.String("receiver", userID), zap.Error(err))
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages
}

// ConversationSummary 会话列表条目
type ConversationSummary struct {
	User        model.User     `json:"user"`
	LastMessage *model.Message `json:"lastMessage,omitempty"`
	UnreadCount int            `json:"unreadCount"`
}

// GetConversationSummaries 全部会话概要，按最后一条消息时间倒序
func (s *MessageService) GetConversationSummaries(userID string) []ConversationSummary {
	summaries := []ConversationSummary{}
	for _, partnerID := range s.MessageRepo.GetConversationPartners(userID) {
		partner := s.UserRepo.GetByID(partnerID)
		if partner == nil {
			continue
		}

		messages := s.MessageRepo.GetConversation(userID, partnerID)
		var last *model.Message
		unread := 0
		for i := range messages {
			if messages[i].ReceiverID == userID && !messages[i].Read {
				unread++
			}
		}
		if len(messages) > 0 {
			last = &messages[len(messages)-1]
		}

		summaries = append(summaries, ConversationSummary{
			User:        partner.WithoutPassword(),
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].LastMessage == nil || summaries[j].LastMessage == nil {
			return false
		}
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})
	return summaries
}

// UnreadCount 未读消息总数，导航栏角标轮询用
func (s *MessageService) UnreadCount(userID string) int {
	return s.MessageRepo.CountUnread(userID)
}
