// Package cache mirrors the last known-good profile into a persistent
// key-value store so the console can start without a remote round trip.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-console/internal/platform/logging"
	"github.com/janisto/profile-console/internal/profile"
)

// DefaultKey is the fixed key the profile record is stored under.
const DefaultKey = "profile"

// FileCache stores one JSON-encoded profile as "<dir>/<key>.json" on an afero filesystem.
type FileCache struct {
	fs  afero.Fs
	dir string
	key string
}

// Option configures a FileCache.
type Option func(*FileCache)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(c *FileCache) {
		c.key = key
	}
}

// New creates a cache rooted at dir on fsys.
func New(fsys afero.Fs, dir string, opts ...Option) *FileCache {
	c := &FileCache{fs: fsys, dir: dir, key: DefaultKey}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewOS creates a cache on the operating system filesystem.
func NewOS(dir string, opts ...Option) *FileCache {
	return New(afero.NewOsFs(), dir, opts...)
}

func (c *FileCache) path() string {
	return path.Join(c.dir, c.key+".json")
}

// Save overwrites the stored record with p.
func (c *FileCache) Save(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return errors.New("cache: nil profile")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding cached profile: %w", err)
	}
	if err := c.fs.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	// Write then rename: readers see the previous record or the new one, never a partial write.
	tmp := c.path() + ".tmp"
	if err := afero.WriteFile(c.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing cached profile: %w", err)
	}
	if err := c.fs.Rename(tmp, c.path()); err != nil {
		return fmt.Errorf("replacing cached profile: %w", err)
	}
	applog.LogInfo(ctx, "profile cached", zap.String("key", c.key))
	return nil
}

// Load returns the stored profile, or nil when nothing usable is stored.
// Unreadable or malformed records are reported as absent.
func (c *FileCache) Load(ctx context.Context) *profile.Profile {
	data, err := afero.ReadFile(c.fs, c.path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			applog.LogWarn(ctx, "cached profile unreadable", zap.String("key", c.key), zap.Error(err))
		}
		return nil
	}
	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		applog.LogWarn(ctx, "cached profile malformed", zap.String("key", c.key), zap.Error(err))
		return nil
	}
	if p.Name == "" {
		applog.LogWarn(ctx, "cached profile malformed", zap.String("key", c.key), zap.String("reason", "missing name"))
		return nil
	}
	return &p
}

// Clear removes the stored record. Clearing an empty cache is a no-op.
func (c *FileCache) Clear(ctx context.Context) error {
	if err := c.fs.Remove(c.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing cached profile: %w", err)
	}
	applog.LogInfo(ctx, "profile cache cleared", zap.String("key", c.key))
	return nil
}
