package cache

import (
	"os"
	"path/filepath"
)

// DefaultDir returns the per-user cache directory for mindmap, honouring
// XDG_CACHE_HOME.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "mindmap"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mindmap"), nil
}
