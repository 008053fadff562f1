package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot is where Android keeps each package's private files.
const androidDataRoot = "/data/data"

// packageFromCmdline extracts the process name from the contents of
// /proc/self/cmdline. Android app processes are named after their package.
func packageFromCmdline(data []byte) (string, error) {
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", fmt.Errorf("empty process name in cmdline")
	}
	return string(name), nil
}

// ensureWritableDir creates dir when missing and checks a file can be written in it.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(testFile)
}
