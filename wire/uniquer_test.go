package wire

import (
	"testing"
	"time"
)

func TestBlockUniquerDedupesByHash(t *testing.T) {
	u := NewBlockUniquer()
	a := &fakeBlock{blockType: BlockTypeState, payload: []byte("same content")}
	b := &fakeBlock{blockType: BlockTypeState, payload: []byte("same content")}

	first := u.Unique(a)
	second := u.Unique(b)

	if first != second {
		t.Fatal("two blocks with the same hash should intern to the same value")
	}
	if u.Len() != 1 {
		t.Fatalf("expected one interned entry, got %d", u.Len())
	}
}

func TestBlockUniquerKeepsDistinctHashes(t *testing.T) {
	u := NewBlockUniquer()
	u.Unique(&fakeBlock{payload: []byte("one")})
	u.Unique(&fakeBlock{payload: []byte("two")})

	if u.Len() != 2 {
		t.Fatalf("expected two interned entries, got %d", u.Len())
	}
}

func TestBlockUniquerSweepEvictsStaleEntries(t *testing.T) {
	u := NewBlockUniquer()
	u.Unique(&fakeBlock{payload: []byte("stale")})

	removed := u.Sweep(-time.Second) // cutoff in the future relative to lastSeen
	if removed != 1 {
		t.Fatalf("expected to evict 1 entry, evicted %d", removed)
	}
	if u.Len() != 0 {
		t.Fatal("uniquer should be empty after sweeping its only entry")
	}
}

func TestVoteUniquerDedupesByHash(t *testing.T) {
	u := NewVoteUniquer()
	account := randHash()
	sig := randSig()

	hashes := [][32]byte{randHash()}
	a, _ := fakeVoteCodec{}.DeserializeHashes(account, sig, 1, hashes)
	b, _ := fakeVoteCodec{}.DeserializeHashes(account, sig, 1, hashes) // distinct value, same content, simulating a re-received datagram

	first := u.Unique(a)
	second := u.Unique(b)
	if first != second {
		t.Fatal("re-receiving the same vote should intern to the same value")
	}
}
