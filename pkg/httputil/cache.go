package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but is older
// than the TTL. The stale value is still decoded so callers can revalidate.
var ErrExpired = errors.New("cache entry expired")

// Cache stores JSON values as files named by the SHA-256 of their key.
// Entries expire by file modification time; a TTL of 0 never expires.
//
// Cache is not goroutine-safe, but several instances (even in different
// processes) may share a directory.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates a Cache in dir, creating the directory if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Get decodes the entry for key into v.
//
//   - (true, nil): fresh hit
//   - (false, nil): miss, v unchanged
//   - (true, ErrExpired): stale hit, v holds the stale value
//   - (false, err): I/O or decode failure
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return true, ErrExpired
	}
	return true, nil
}

// Set stores v under key, resetting its age.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp := c.keyPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.keyPath(key))
}

// Touch resets the age of key's entry without rewriting it.
func (c *Cache) Touch(key string) error {
	now := time.Now()
	return os.Chtimes(c.keyPath(key), now, now)
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
