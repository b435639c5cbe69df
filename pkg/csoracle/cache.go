package csoracle

import (
	"sort"

	"github.com/devlin-oss/varinsight/pkg/cache"
)

// fileSignature is the serializable shape cache.LRUCache actually stores:
// the declared type names a file contributes, alongside a hash of its
// content. tree-sitter trees hold raw C pointers and
// cannot be serialized, so the cache never skips parsing — it only lets
// the workspace log when a file's external surface changed between runs
// (see DESIGN.md).
type fileSignature struct {
	ContentHash string   `msgpack:"hash"`
	Types       []string `msgpack:"types"`
}

// parseCache persists fileSignatures across invocations using pkg/cache's
// msgpack-backed LRU and its SHA256 content hasher.
type parseCache struct {
	path string
	lru  *cache.LRUCache
}

// OpenParseCache loads a signature cache from path, or starts an empty one
// if the file does not exist yet.
func OpenParseCache(path string) (*parseCache, error) {
	lru := cache.New(cache.Options{MaxSize: 4096})
	if err := cache.LoadFromFile(lru, path); err != nil {
		return nil, err
	}
	return &parseCache{path: path, lru: lru}, nil
}

// Save persists the cache back to disk.
func (c *parseCache) Save() error {
	return cache.PersistToFile(c.lru, c.path)
}

// checkAndUpdate compares f's current content hash against the cached
// signature for its path, returning true if the content hash differs
// (or the path was never seen before), and stores the fresh signature.
func (c *parseCache) checkAndUpdate(f *file, types []string) bool {
	sort.Strings(types)
	hash := cache.HashBytes(f.content)

	changed := true
	if prev, ok := c.lru.Get(f.path); ok {
		switch sig := prev.(type) {
		case fileSignature:
			changed = sig.ContentHash != hash
		case map[string]interface{}:
			// Entries restored from disk decode as generic msgpack maps.
			prevHash, _ := sig["hash"].(string)
			changed = prevHash != hash
		}
	}
	c.lru.Set(f.path, fileSignature{ContentHash: hash, Types: types})
	return changed
}
