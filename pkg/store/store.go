package store

import (
	"os"
	"path/filepath"

	"schoolnet_backend/internal/model"
)

// Store 全部实体集合的句柄。进程启动时构造一次，
// 经依赖注入传给各仓储，不使用任何包级单例
type Store struct {
	Dir         string
	Users       *Collection[model.User]
	Posts       *Collection[model.Post]
	Friendships *Collection[model.Friendship]
	Messages    *Collection[model.Message]
}

// Open 打开数据目录，缺失的实体文件以空数组初始化
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Store{
		Dir:         dir,
		Users:       NewCollection[model.User](filepath.Join(dir, "users.json")),
		Posts:       NewCollection[model.Post](filepath.Join(dir, "posts.json")),
		Friendships: NewCollection[model.Friendship](filepath.Join(dir, "friendships.json")),
		Messages:    NewCollection[model.Message](filepath.Join(dir, "messages.json")),
	}, nil
}
