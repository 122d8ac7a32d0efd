package repository

import (
	"schoolnet_backend/internal/model"
	"schoolnet_backend/pkg/store"
)

type FriendshipRepository struct {
	friendships *store.Collection[model.Friendship]
}

func NewFriendshipRepository(s *store.Store) *FriendshipRepository {
	return &FriendshipRepository{friendships: s.Friendships}
}

func (r *FriendshipRepository) GetAll() []model.Friendship {
	return r.friendships.LoadAll()
}

func (r *FriendshipRepository) GetByID(id string) *model.Friendship {
	for _, f := range r.friendships.LoadAll() {
		if f.ID == id {
			return &f
		}
	}
	return nil
}

// Find 查找两个用户之间的关系记录，不分方向：Find(a,b) 与 Find(b,a) 等价
func (r *FriendshipRepository) Find(userID, friendID string) *model.Friendship {
	for _, f := range r.friendships.LoadAll() {
		if f.Involves(userID, friendID) {
			return &f
		}
	}
	return nil
}

// GetFriendIDs 返回与指定用户处于 accepted 关系的对端ID集合
func (r *FriendshipRepository) GetFriendIDs(userID string) []string {
	var ids []string
	for _, f := range r.friendships.LoadAll() {
		if f.Status != model.FriendshipAccepted {
			continue
		}
		switch userID {
		case f.UserID:
			ids = append(ids, f.FriendID)
		case f.FriendID:
			ids = append(ids, f.UserID)
		}
	}
	return ids
}

// GetPendingFor 返回发给指定用户、尚未处理的好友请求
func (r *FriendshipRepository) GetPendingFor(userID string) []model.Friendship {
	var pending []model.Friendship
	for _, f := range r.friendships.LoadAll() {
		if f.FriendID == userID && f.Status == model.FriendshipPending {
			pending = append(pending, f)
		}
	}
	return pending
}

func (r *FriendshipRepository) Create(f model.Friendship) error {
	return r.friendships.Mutate(func(items []model.Friendship) ([]model.Friendship, bool) {
		return append(items, f), true
	})
}

// Update 合并式修改，ID不存在时为无操作
func (r *FriendshipRepository) Update(id string, apply func(*model.Friendship)) error {
	return r.friendships.Mutate(func(items []model.Friendship) ([]model.Friendship, bool) {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
				return items, true
			}
		}
		return items, false
	})
}

// Delete 删除关系记录，不存在时为无操作
func (r *FriendshipRepository) Delete(id string) error {
	return r.friendships.Mutate(func(items []model.Friendship) ([]model.Friendship, bool) {
		filtered := items[:0]
		removed := false
		for _, f := range items {
			if f.ID == id {
				removed = true
				continue
			}
			filtered = append(filtered, f)
		}
		return filtered, removed
	})
}
