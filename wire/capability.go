package wire

import (
	"errors"
	"io"
)

// ErrInsufficientWork is returned by a variant deserializer when a caller
// supplied WorkVerifier rejects the decoded block's attached work proof.
// The parser maps it to StatusInsufficientWork rather than the variant's
// generic invalid-message status, per spec.md 4.C step 6.
var ErrInsufficientWork = errors.New("wire: insufficient work")

// Block is the minimal shape wire needs from a decoded ledger block: a
// stable content hash and the ability to re-serialize itself. wire never
// interprets a block's fields -- that's ledger's job.
type Block interface {
	Hash() [32]byte
	Serialize(w io.Writer) error
}

// Vote is the minimal shape wire needs from a decoded vote.
type Vote interface {
	Hash() [32]byte
	Account() [32]byte
	Serialize(w io.Writer) error
}

// BlockCodec deserializes a block of the given wire type from a stream;
// the returned Block's own Hash is what the parser keys the block
// uniquer on. Supplied by ledger in this repo; wire only depends on the
// interface, never a concrete block representation, per spec.md 6.
type BlockCodec interface {
	Deserialize(r io.Reader, t BlockType) (Block, error)
}

// VoteCodec deserializes a vote (account + signature + sequence + one or
// more block hashes, or a single full block when the header nibble isn't
// not_a_block).
type VoteCodec interface {
	// DeserializeHashes builds a vote whose body is a list of 32-byte
	// hashes; the wire layer has already split the datagram's remaining
	// bytes into hashes (terminated by the datagram simply running out,
	// per spec.md 4.C's "count/length convention of the external block
	// format").
	DeserializeHashes(account [32]byte, signature [64]byte, sequence uint64, hashes [][32]byte) (Vote, error)
	// DeserializeBlock builds a vote whose body is a single full block.
	DeserializeBlock(account [32]byte, signature [64]byte, sequence uint64, block Block) (Vote, error)
}

// WorkVerifier gates publication rate: it reports whether a block's
// attached work proof meets the network's current difficulty threshold.
type WorkVerifier interface {
	Sufficient(b Block) bool
}
