package service

import (
	"time"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"
)

type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
	}
}

// SendRequest 发起好友请求。同一对用户（不分方向）只允许一条记录，
// 已存在任何状态的记录都算重复
func (s *FriendshipService) SendRequest(userID, friendID string) (*model.Friendship, error) {
	if userID == friendID {
		return nil, util.ErrSelfFriend
	}

	if s.UserRepo.GetByID(friendID) == nil {
		return nil, util.ErrUserNotFound
	}

	if existing := s.FriendRepo.Find(userID, friendID); existing != nil {
		return nil, util.ErrFriendshipExists
	}

	friendship := model.Friendship{
		ID:        model.GenerateID(),
		UserID:    userID,
		FriendID:  friendID,
		Status:    model.FriendshipPending,
		CreatedAt: time.Now(),
	}

	if err := s.FriendRepo.Create(friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}

// AcceptRequest 只有接收方可以接受请求
func (s *FriendshipService) AcceptRequest(userID, requestID string) error {
	friendship := s.FriendRepo.GetByID(requestID)
	if friendship == nil {
		return util.ErrRequestNotFound
	}

	if friendship.FriendID != userID {
		return util.ErrPermissionDenied
	}

	return s.FriendRepo.Update(requestID, func(f *model.Friendship) {
		f.Status = model.FriendshipAccepted
	})
}

// GetFriends 返回好友的用户资料（已去除密码）
func (s *FriendshipService) GetFriends(userID string) []model.User {
	friends := []model.User{}
	for _, id := range s.FriendRepo.GetFriendIDs(userID) {
		if friend := s.UserRepo.GetByID(id); friend != nil {
			friends = append(friends, friend.WithoutPassword())
		}
	}
	return friends
}

// PendingRequest 待处理请求及发起人资料
type PendingRequest struct {
	Friendship model.Friendship `json:"friendship"`
	Sender     model.User       `json:"sender"`
}

// GetPendingRequests 当前用户收到的待处理好友请求
func (s *FriendshipService) GetPendingRequests(userID string) []PendingRequest {
	requests := []PendingRequest{}
	for _, f := range s.FriendRepo.GetPendingFor(userID) {
		sender := s.UserRepo.GetByID(f.UserID)
		if sender == nil {
			continue
		}
		requests = append(requests, PendingRequest{
			Friendship: f,
			Sender:     sender.WithoutPassword(),
		})
	}
	return requests
}
