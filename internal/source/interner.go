package source

import (
	"slices"
	"sync"
)

// StringID is a handle into an Interner.
type StringID uint32

// NoStringID marks the empty/absent string.
const NoStringID StringID = 0

// Interner deduplicates strings (identifiers, string/char literal bodies)
// behind small stable handles. Safe for concurrent use so a single
// interner can be shared across units validated in parallel.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

// NewInterner returns an Interner seeded with NoStringID -> "".
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the stable StringID for s, interning it if necessary.
func (in *Interner) Intern(s string) StringID {
	in.mu.RLock()
	if id, ok := in.index[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	cpy := string([]byte(s))

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[cpy]; ok {
		return id
	}
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the string for id, or ("", false) if id is invalid.
func (in *Interner) Lookup(id StringID) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup returns the string for id, panicking if id is invalid.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Len returns the number of distinct strings interned, including NoStringID.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byID)
}

// Snapshot returns a copy of every interned string, indexed by StringID.
func (in *Interner) Snapshot() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Clone(in.byID)
}
