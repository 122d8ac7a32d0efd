package model

import (
	"github.com/google/uuid"
)

// GenerateID 生成实体主键（不透明唯一字符串）
func GenerateID() string {
	return uuid.New().String()
}
