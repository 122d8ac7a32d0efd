package repository

import (
	"sort"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/pkg/store"
)

type PostRepository struct {
	posts *store.Collection[model.Post]
}

func NewPostRepository(s *store.Store) *PostRepository {
	return &PostRepository{posts: s.Posts}
}

// GetAll 返回全部帖子，按创建时间倒序（最新在前）
func (r *PostRepository) GetAll() []model.Post {
	posts := r.posts.LoadAll()
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (r *PostRepository) GetByID(id string) *model.Post {
	for _, p := range r.posts.LoadAll() {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func (r *PostRepository) GetByAuthor(authorID string) []model.Post {
	var result []model.Post
	for _, p := range r.GetAll() {
		if p.AuthorID == authorID {
			result = append(result, p)
		}
	}
	return result
}

func (r *PostRepository) Create(post model.Post) error {
	return r.posts.Mutate(func(items []model.Post) ([]model.Post, bool) {
		return append(items, post), true
	})
}

// Update 合并式修改，ID不存在时为无操作
func (r *PostRepository) Update(id string, apply func(*model.Post)) error {
	return r.posts.Mutate(func(items []model.Post) ([]model.Post, bool) {
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
				return items, true
			}
		}
		return items, false
	})
}

// Delete 删除指定帖子，不存在时为无操作
func (r *PostRepository) Delete(id string) error {
	return r.posts.Mutate(func(items []model.Post) ([]model.Post, bool) {
		filtered := items[:0]
		removed := false
		for _, p := range items {
			if p.ID == id {
				removed = true
				continue
			}
			filtered = append(filtered, p)
		}
		return filtered, removed
	})
}
