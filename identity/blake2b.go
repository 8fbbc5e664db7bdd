package identity

import "golang.org/x/crypto/blake2b"

// Hash256 is the 32-byte content hash used throughout ledger for blocks,
// votes, and work-proof verification. The original rai node hashes with
// Blake2b rather than SHA-2; we follow it rather than reach for the
// standard library's sha256, since Blake2b is what every hash-bearing
// structure in the retrieved source actually uses.
func Hash256(parts ...[]byte) [32]byte {
	h, _ := blake2b.New256(nil)
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash8 returns an unkeyed Blake2b digest with an 8-byte output size over
// work followed by seed; ledger/work.go reads it as a little-endian
// uint64 for its threshold check. Hashing the seed in alongside the work
// is what binds a valid proof to the block it was computed for.
func Hash8(work [8]byte, seed []byte) [8]byte {
	h, _ := blake2b.New(8, nil)
	h.Write(work[:])
	h.Write(seed)
	var out [8]byte
	copy(out[:], h.Sum(nil))
	return out
}
