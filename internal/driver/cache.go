package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stratum/internal/diag"
	"stratum/internal/dump"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies one fixture content analyzed with one set of options.
type Digest [sha256.Size]byte

// CacheKey hashes fixture content together with everything that changes the
// analysis output.
func CacheKey(content []byte, opts dump.Options, maxDiagnostics int) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "stratum/%d/trailing=%t/max=%d\n", cacheSchemaVersion, opts.TrailingComma, maxDiagnostics)
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// SnapshotCache keeps analysis results on disk keyed by Digest.
// Thread-safe for concurrent access.
type SnapshotCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is what a cache entry stores. Spans are kept with their
// offsets; the file ID is rebound to the current file set on load.
type CachePayload struct {
	Schema      uint16
	Snapshot    *dump.Snapshot
	Diagnostics []diag.Diagnostic
	Checks      []CheckOutcome
	Freed       int
}

// OpenSnapshotCache initializes the cache at the standard location.
func OpenSnapshotCache(app string) (*SnapshotCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewSnapshotCache(filepath.Join(base, app))
}

// NewSnapshotCache uses dir as the cache root, creating it if needed.
func NewSnapshotCache(dir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotCache{dir: dir}, nil
}

func (c *SnapshotCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "snapshots", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes a payload.
func (c *SnapshotCache) Put(key Digest, payload *CachePayload) error {
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
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get reads a payload. Entries written by another schema version are
// treated as misses.
func (c *SnapshotCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == cacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *SnapshotCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
