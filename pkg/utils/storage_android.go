//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开之前创建查看器设置目录
// gdata 在 Android 上把数据写到 /data/data/{package}/saves，但不会自己创建该目录。
func EnsureStorageDir() error {
	root, err := appDataDir()
	if err != nil {
		return err
	}
	return ensureWritableDir(filepath.Join(root, "saves"))
}

// GetStoragePath 返回应用私有数据目录，启动日志会打印它
func GetStoragePath() string {
	root, err := appDataDir()
	if err != nil {
		return ""
	}
	return root
}

func appDataDir() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	pkg, err := packageFromCmdline(data)
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	return filepath.Join(androidDataRoot, pkg), nil
}
