package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeImage     = "image/"
	MaxUploadSize = 5 * 1024 * 1024 // 5MB

	// SearchMinQueryLen 搜索最少字符数，低于它直接返回空结果
	SearchMinQueryLen = 2
	// SearchMaxResults 搜索结果上限
	SearchMaxResults = 20
)
