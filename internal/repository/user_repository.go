package repository

import (
	"sort"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/pkg/store"
)

// UserRepository 用户仓储。每次调用都重新读取整个文件，
// 单进程内保证读己之写，不做任何跨调用缓存
type UserRepository struct {
	users *store.Collection[model.User]
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{users: s.Users}
}

func (r *UserRepository) GetAll() []model.User {
	return r.users.LoadAll()
}

func (r *UserRepository) Count() int {
	return len(r.users.LoadAll())
}

func (r *UserRepository) GetByID(id string) *model.User {
	for _, u := range r.users.LoadAll() {
		if u.ID == id {
			return &u
		}
	}
	return nil
}

// GetByEmail 精确匹配，邮箱按存储原样区分大小写
func (r *UserRepository) GetByEmail(email string) *model.User {
	for _, u := range r.users.LoadAll() {
		if u.Email == email {
			return &u
		}
	}
	return nil
}

func (r *UserRepository) GetPending() []model.User {
	var pending []model.User
	for _, u := range r.users.LoadAll() {
		if u.Status == model.StatusPending {
			pending = append(pending, u)
		}
	}
	return pending
}

func (r *UserRepository) Create(user model.User) error {
	return r.users.Mutate(func(items []model.User) ([]model.User, bool) {
		return append(items, user), true
	})
}

// Update 对指定ID的记录做合并式修改，apply 只改动它关心的字段；
// ID不存在时为无操作，不报错
func (r *UserRepository) Update(id string, apply func(*model.User)) error {
	return r.users.Mutate(func(items []model.User) ([]model.User, bool) {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
				return items, true
			}
		}
		return items, false
	})
}

// FirstCreated 返回创建时间最早的用户，空集合返回 nil
func (r *UserRepository) FirstCreated() *model.User {
	users := r.users.LoadAll()
	if len(users) == 0 {
		return nil
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return &users[0]
}
