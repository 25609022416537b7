package favicon

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/fsearch/internal/infrastructure/cache"
)

const (
	memCacheEntries     = 256
	diskWriteBufferSize = 100
	diskCacheDirPerm    = 0o750
	diskCacheFilePerm   = 0o600
)

type diskWrite struct {
	key  string
	data []byte
}

// Cache keeps recently used favicon bytes in memory and, when diskDir is
// set, every favicon on disk. Disk writes happen on a background goroutine
// and are dropped when the queue is full.
type Cache struct {
	mem       *cache.LRU[string, []byte]
	diskDir   string
	writeChan chan diskWrite
	done      chan struct{}
	closeOnce sync.Once
}

// NewCache creates a cache. An empty diskDir keeps everything in memory.
func NewCache(diskDir string) *Cache {
	c := &Cache{
		mem:       cache.NewLRU[string, []byte](memCacheEntries),
		diskDir:   diskDir,
		writeChan: make(chan diskWrite, diskWriteBufferSize),
		done:      make(chan struct{}),
	}
	if diskDir != "" {
		go c.diskWriter()
	} else {
		close(c.done)
	}
	return c
}

// Get looks key up in memory, then on disk.
func (c *Cache) Get(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	if data, ok := c.mem.Get(key); ok {
		return data, true
	}

	if data := c.loadFromDisk(key); data != nil {
		c.mem.Set(key, data)
		return data, true
	}
	return nil, false
}

// Set stores data in memory and queues a disk write.
func (c *Cache) Set(key string, data []byte) {
	if key == "" || len(data) == 0 {
		return
	}

	c.mem.Set(key, data)

	if c.diskDir == "" {
		return
	}
	select {
	case c.writeChan <- diskWrite{key: key, data: data}:
	default:
	}
}

// DiskPath returns where key is stored on disk, or "" without a disk dir.
// Files are named by the SHA-256 of the key so distinct URLs never share one.
func (c *Cache) DiskPath(key string) string {
	if c.diskDir == "" || key == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.diskDir, hex.EncodeToString(sum[:]))
}

// Size returns the number of entries held in memory.
func (c *Cache) Size() int {
	return c.mem.Len()
}

// Close stops the disk writer after draining queued writes.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		close(c.writeChan)
		<-c.done
	})
}

func (c *Cache) loadFromDisk(key string) []byte {
	path := c.DiskPath(key)
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}

// writeToDisk writes through a temp file and renames it into place.
func (c *Cache) writeToDisk(key string, data []byte) {
	if err := os.MkdirAll(c.diskDir, diskCacheDirPerm); err != nil {
		return
	}

	finalPath := c.DiskPath(key)
	tempPath := finalPath + ".tmp"
	if err := os.WriteFile(tempPath, data, diskCacheFilePerm); err != nil {
		return
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
	}
}

func (c *Cache) diskWriter() {
	defer close(c.done)
	for write := range c.writeChan {
		c.writeToDisk(write.key, write.data)
	}
}
