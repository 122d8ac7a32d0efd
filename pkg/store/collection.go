package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"schoolnet_backend/pkg/logger"
	"schoolnet_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Collection 单个实体类型的JSON数组文件。
// 所有写操作在集合自己的互斥锁内串行执行，序列化粒度是"每实体类型一把锁"；
// 跨实体类型的操作没有事务语义
type Collection[T any] struct {
	path string
	name string // 实体类型名，取自文件名，用于指标标签
	mu   sync.Mutex
}

func NewCollection[T any](path string) *Collection[T] {
	c := &Collection[T]{
		path: path,
		name: strings.TrimSuffix(filepath.Base(path), ".json"),
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			logger.Log.Warn("初始化数据文件失败", zap.String("file", path), zap.Error(err))
		}
	}
	return c
}

// LoadAll 读取整个集合。文件缺失、不可读或内容损坏时退化为空集合，
// 只记录告警不向调用方报错——调用方无法区分"没有数据"和"存储不可读"
func (c *Collection[T]) LoadAll() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

func (c *Collection[T]) loadLocked() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		logger.Log.Warn("读取数据文件失败，按空集合处理", zap.String("file", c.path), zap.Error(err))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Log.Warn("数据文件内容损坏，按空集合处理", zap.String("file", c.path), zap.Error(err))
		return []T{}
	}
	return items
}

// ReplaceAll 全量覆盖写入
func (c *Collection[T]) ReplaceAll(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(items)
}

func (c *Collection[T]) saveLocked(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return err
	}
	monitoring.StoreWriteCounter.WithLabelValues(c.name).Inc()
	return nil
}

// Mutate 在集合锁内执行 读取-修改-写回。fn 返回 false 表示没有变更，跳过写盘。
// 并发的 Mutate 之间不会互相丢失更新
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.loadLocked()
	next, changed := fn(items)
	if !changed {
		return nil
	}
	return c.saveLocked(next)
}
