package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// KeyFor derives the cache key identifying one inventory source: a hash
// over the resolved source path and the file's current content. Editing
// the source therefore changes its key, so a stale entry written under an
// older configuration can never be returned for the new one.
func KeyFor(sourcePath string) (string, error) {
	resolved, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", fmt.Errorf("cache: resolving source path: %w", err)
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("cache: reading source for fingerprint: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(resolved))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil)), nil
}
