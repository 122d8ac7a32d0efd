package model

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusRejected UserStatus = "rejected"
)

// swagger:model User
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"` // bcrypt哈希；写入存储文件，响应前必须用 WithoutPassword 清空
	Name      string     `json:"name"`
	Avatar    string     `json:"avatar,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Grade     string     `json:"grade,omitempty"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// WithoutPassword 返回去掉密码哈希的副本，所有响应路径统一经过这里
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
