package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountRejected    = errors.New("您的账号已被管理员拒绝")
	ErrPermissionDenied   = errors.New("没有权限")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrEmptyContent       = errors.New("内容不能为空")
	ErrSelfFriend         = errors.New("不能添加自己为好友")
	ErrFriendshipExists   = errors.New("好友请求已存在")
	ErrRequestNotFound    = errors.New("好友请求不存在")
	ErrReceiverNotFound   = errors.New("接收者不存在")
)
