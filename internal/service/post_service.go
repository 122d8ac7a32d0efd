package service

import (
	"strings"
	"time"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"
)

type PostService struct {
	PostRepo *repository.PostRepository
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{PostRepo: postRepo}
}

// Feed 全量帖子，最新在前
func (s *PostService) Feed() []model.Post {
	return s.PostRepo.GetAll()
}

func (s *PostService) PostsByAuthor(authorID string) []model.Post {
	return s.PostRepo.GetByAuthor(authorID)
}

func (s *PostService) GetPost(id string) (*model.Post, error) {
	post := s.PostRepo.GetByID(id)
	if post == nil {
		return nil, util.ErrPostNotFound
	}
	return post, nil
}

// CreatePost 创建帖子，作者名称和头像在此刻做快照
func (s *PostService) CreatePost(author *model.User, content, image string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyContent
	}

	post := model.Post{
		ID:           model.GenerateID(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Content:      content,
		Image:        image,
		Likes:        []string{},
		Comments:     []model.Comment{},
		CreatedAt:    time.Now(),
	}

	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost 只有作者本人可以修改内容
func (s *PostService) UpdatePost(user *model.User, postID, content string) (*model.Post, error) {
	post := s.PostRepo.GetByID(postID)
	if post == nil {
		return nil, util.ErrPostNotFound
	}
	if post.AuthorID != user.ID {
		return nil, util.ErrPermissionDenied
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyContent
	}

	if err := s.PostRepo.Update(postID, func(p *model.Post) {
		p.Content = content
	}); err != nil {
		return nil, err
	}
	return s.GetPost(postID)
}

// DeletePost 只有作者本人可以删除
func (s *PostService) DeletePost(user *model.User, postID string) error {
	post := s.PostRepo.GetByID(postID)
	if post == nil {
		return util.ErrPostNotFound
	}
	if post.AuthorID != user.ID {
		return util.ErrPermissionDenied
	}
	return s.PostRepo.Delete(postID)
}

// ToggleLike 点赞开关：未赞则加入，已赞则移除，同一用户不会重复出现。
// 返回翻转后的点赞ID列表
func (s *PostService) ToggleLike(userID, postID string) ([]string, error) {
	if s.PostRepo.GetByID(postID) == nil {
		return nil, util.ErrPostNotFound
	}

	var likes []string
	err := s.PostRepo.Update(postID, func(p *model.Post) {
		found := false
		next := make([]string, 0, len(p.Likes)+1)
		for _, id := range p.Likes {
			if id == userID {
				found = true
				continue
			}
			next = append(next, id)
		}
		if !found {
			next = append(next, userID)
		}
		p.Likes = next
		likes = next
	})
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// CreateComment 任何登录用户都可以评论，作者信息同样做快照
func (s *PostService) CreateComment(author *model.User, postID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyContent
	}

	if s.PostRepo.GetByID(postID) == nil {
		return nil, util.ErrPostNotFound
	}

	comment := model.Comment{
		ID:           model.GenerateID(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Content:      content,
		CreatedAt:    time.Now(),
	}

	if err := s.PostRepo.Update(postID, func(p *model.Post) {
		p.Comments = append(p.Comments, comment)
	}); err != nil {
		return nil, err
	}
	return &comment, nil
}
