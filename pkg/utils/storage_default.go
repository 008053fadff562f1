//go:build !android

package utils

// EnsureStorageDir 桌面端 gdata 会自己在用户配置目录下创建设置目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 桌面端由 gdata 决定存储位置，返回空字符串
func GetStoragePath() string {
	return ""
}
