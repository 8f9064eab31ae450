package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"
)

// Текущая версия схемы; увеличить при изменении HeaderEntry или вывода эмиттера.
const cacheSchemaVersion uint16 = 2

// HeaderCache stores rendered headers on disk keyed by source and options.
// A nil *HeaderCache is a valid no-op cache. Safe for concurrent use.
type HeaderCache struct {
	mu  sync.RWMutex
	dir string
}

// HeaderEntry is the cached outcome of a clean run.
type HeaderEntry struct {
	Schema uint16
	Header string
	Items  int
}

// OpenCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenCache(app string) (*HeaderCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir opens a cache rooted at dir, creating it when missing.
func OpenCacheDir(dir string) (*HeaderCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &HeaderCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *HeaderCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey combines the source hash, the header identifier and the options.
// The identifier matters because the guard is derived from it.
func CacheKey(sourceHash uint64, outputID string, fingerprint uint64) uint64 {
	return xxh3.HashString(strconv.FormatUint(sourceHash, 16) + "\x00" + outputID + "\x00" + strconv.FormatUint(fingerprint, 16))
}

func (c *HeaderCache) pathFor(key uint64) string {
	name := fmt.Sprintf("%016x", key)
	// подкаталог по первым двум символам, чтобы не раздувать одну директорию
	return filepath.Join(c.dir, "headers", name[:2], name+".mp")
}

// Put serializes and writes an entry.
func (c *HeaderCache) Put(key uint64, entry *HeaderEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	entry.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(entry); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. Entries written by another schema are misses.
func (c *HeaderCache) Get(key uint64) (*HeaderEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry HeaderEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if entry.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll removes every cached entry.
func (c *HeaderCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовать и удалить, чтобы параллельный Get не увидел полупустой каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
