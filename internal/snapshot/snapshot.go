// Package snapshot caches a compilation's structured dump output
// (internal/hir's AST tree, internal/symbols's scope tables,
// internal/types's type-arena entries) on disk with msgpack, so a
// `turingc build --dump` re-run over an unchanged source skips
// re-rendering the dump and serves the cached structured form instead.
// This is test/tooling infrastructure for golden-test caching, not a
// stable wire format (spec section 6).
package snapshot

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"turingc/internal/hir"
	"turingc/internal/symbols"
	"turingc/internal/types"
)

// schemaVersion guards against decoding a payload written by an earlier,
// incompatible snapshot.go. Bump it whenever Payload's shape changes.
const schemaVersion uint16 = 1

// Digest is a content hash over a unit's source bytes plus the requested
// dump targets, used as the cache key.
type Digest [sha256.Size]byte

// Key returns the Digest for content under the given dump targets, so
// the same source cached under "ast" alone doesn't collide with a cache
// entry that also carries "scope"/"types".
func Key(content []byte, targets []string) Digest {
	h := sha256.New()
	h.Write(content)
	for _, t := range targets {
		h.Write([]byte{0})
		h.Write([]byte(t))
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Payload is the structured form cached for one source: whichever of
// AST/Scopes/Types the driver's --dump flags requested, in the same
// shape Dump returns.
type Payload struct {
	Schema uint16
	AST    *hir.Node           `msgpack:",omitempty"`
	Scopes []symbols.ScopeDump `msgpack:",omitempty"`
	Types  []types.EntryDump   `msgpack:",omitempty"`
}

// NewPayload wraps the dump structures a driver already built (via
// hir.BuildAST, symbols.DumpScopes, types.Dump) for caching. Any of the
// three may be nil when its dump target wasn't requested.
func NewPayload(ast *hir.Node, scopes []symbols.ScopeDump, typeEntries []types.EntryDump) *Payload {
	return &Payload{Schema: schemaVersion, AST: ast, Scopes: scopes, Types: typeEntries}
}

// Cache is a directory of msgpack-encoded Payloads keyed by Digest.
// Thread-safe for concurrent Put/Get, mirroring the driver's per-unit
// parallel validation (internal/sema's errgroup-based CheckUnits).
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a Cache rooted at dir, creating it if necessary.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: failed to create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, fmt.Sprintf("%x.mp", key))
}

// Put serializes and atomically writes payload under key.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: failed to create temp file: %w", err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: failed to encode payload: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("snapshot: failed to install cache entry: %w", err)
	}
	return nil
}

// Get deserializes the payload cached under key. ok is false (with a
// nil error) on a cache miss.
func (c *Cache) Get(key Digest) (payload *Payload, ok bool, err error) {
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
		return nil, false, fmt.Errorf("snapshot: failed to open cache entry: %w", err)
	}
	defer f.Close()

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("snapshot: failed to decode cache entry: %w", err)
	}
	if p.Schema != schemaVersion {
		return nil, false, nil
	}
	return &p, true, nil
}
