package model

import (
	"time"
)

// Post 动态帖子。作者名称和头像是创建时刻的快照，
// 之后作者修改资料不会回写到已有帖子
// swagger:model Post
type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	Likes        []string  `json:"likes"`    // 点赞用户ID集合，靠成员判断去重
	Comments     []Comment `json:"comments"` // 插入顺序即展示顺序
	CreatedAt    time.Time `json:"createdAt"`
}

// Comment 评论，只内嵌在帖子里，不单独寻址
// swagger:model Comment
type Comment struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}
