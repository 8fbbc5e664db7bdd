package wire

import (
	"sync"
	"time"
)

// uniquer is a content-addressed intern table: hash -> last-interned
// value. spec.md calls the handles it holds "weak references" -- Go has
// no cheap first-class weak pointer, so this package approximates the
// same externally observable behavior (an entry disappears once nothing
// has asked for it in a while) with a last-seen timestamp and a
// mutex-guarded sweep, in the spirit of the teacher's qCache.refresh()
// and peer table cooling-down pattern.
type uniquer[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
}

type entry[V any] struct {
	value    V
	lastSeen time.Time
}

func newUniquer[K comparable, V any]() *uniquer[K, V] {
	return &uniquer[K, V]{entries: make(map[K]entry[V])}
}

// unique interns candidate under key, returning the already-live value if
// one exists (dropping candidate) or candidate itself otherwise.
func (u *uniquer[K, V]) unique(key K, candidate V) V {
	u.mu.Lock()
	defer u.mu.Unlock()

	if e, ok := u.entries[key]; ok {
		u.entries[key] = entry[V]{value: e.value, lastSeen: time.Now()}
		return e.value
	}
	u.entries[key] = entry[V]{value: candidate, lastSeen: time.Now()}
	return candidate
}

// sweep removes entries whose handle hasn't been touched in maxAge,
// simulating the expiry of a weak reference. Returns the count removed.
func (u *uniquer[K, V]) sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	u.mu.Lock()
	defer u.mu.Unlock()

	removed := 0
	for k, e := range u.entries {
		if e.lastSeen.Before(cutoff) {
			delete(u.entries, k)
			removed++
		}
	}
	return removed
}

func (u *uniquer[K, V]) len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.entries)
}

// DefaultUniquerTTL is how long an interned block or vote survives
// without being re-requested before a sweep evicts it.
const DefaultUniquerTTL = 5 * time.Minute

// BlockUniquer interns decoded blocks by content hash, shared across
// publish/confirm_req deserializers and across parsers.
type BlockUniquer struct {
	u *uniquer[[32]byte, Block]
}

func NewBlockUniquer() *BlockUniquer {
	return &BlockUniquer{u: newUniquer[[32]byte, Block]()}
}

// Unique returns the interned block with the same hash as candidate, or
// interns and returns candidate if none existed yet.
func (b *BlockUniquer) Unique(candidate Block) Block {
	return b.u.unique(candidate.Hash(), candidate)
}

// Sweep evicts entries untouched for maxAge and returns how many were
// removed. Callers should run this periodically (e.g. from a ticker in
// node).
func (b *BlockUniquer) Sweep(maxAge time.Duration) int { return b.u.sweep(maxAge) }

// Len reports how many blocks are currently interned.
func (b *BlockUniquer) Len() int { return b.u.len() }

// VoteUniquer interns decoded votes by content hash, shared across
// confirm_ack deserializers and across parsers.
type VoteUniquer struct {
	u *uniquer[[32]byte, Vote]
}

func NewVoteUniquer() *VoteUniquer {
	return &VoteUniquer{u: newUniquer[[32]byte, Vote]()}
}

func (v *VoteUniquer) Unique(candidate Vote) Vote {
	return v.u.unique(candidate.Hash(), candidate)
}

func (v *VoteUniquer) Sweep(maxAge time.Duration) int { return v.u.sweep(maxAge) }

func (v *VoteUniquer) Len() int { return v.u.len() }
