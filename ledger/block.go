package ledger

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/996BC/latticenet/identity"
	"github.com/996BC/latticenet/wire"
)

// balanceSize, linkSize etc. follow rai's state_block layout: a single
// block format that folds send/receive/open/change into one shape via
// the link field's overloaded meaning (destination account for a send,
// source block hash for a receive/open). Legacy send/receive/open/change
// header nibbles are still accepted by the wire-level parser (spec.md
// never narrows the nibble space) but this codec treats them as
// unsupported: StateBlockCodec.Deserialize only builds a StateBlock, and
// rejects any other wire.BlockType outright, the same way a modern Nano
// node refuses to originate legacy blocks while still forwarding them.
const (
	accountSize        = 32
	balanceSize        = 16
	linkSize           = 32
	signatureSize      = 64
	workSize           = 8
	stateBlockWireSize = accountSize*3 + balanceSize + linkSize + signatureSize + workSize
)

// StateBlock is the one block type this repo's ledger fully implements.
type StateBlock struct {
	Account        [32]byte
	Previous       [32]byte
	Representative [32]byte
	Balance        [16]byte // big-endian u128, matching rai's wire balance encoding
	Link           [32]byte
	Signature      [64]byte
	WorkValue      Work

	hash [32]byte
}

// NewStateBlock builds a StateBlock and signs it with priv, computing its
// content hash and deriving a valid work value from scratch. Intended for
// tests and tools; a real node signs with identity.KeyPair.Sign and mints
// work out-of-band.
func NewStateBlock(account, previous, representative, link [32]byte, balance [16]byte, priv ed25519.PrivateKey, threshold uint64) *StateBlock {
	b := &StateBlock{
		Account:        account,
		Previous:       previous,
		Representative: representative,
		Balance:        balance,
		Link:           link,
	}
	b.hash = b.computeHash()
	sig := ed25519.Sign(priv, b.hash[:])
	copy(b.Signature[:], sig)
	b.WorkValue, _ = Generate(b.WorkSeed(), threshold, Work{})
	return b
}

func (b *StateBlock) computeHash() [32]byte {
	return identity.Hash256(
		b.Account[:], b.Previous[:], b.Representative[:],
		b.Balance[:], b.Link[:],
	)
}

// Hash implements wire.Block.
func (b *StateBlock) Hash() [32]byte { return b.hash }

// WorkSeed is the value work is hashed against: the account for an open
// block (Previous all-zero), the previous block's hash otherwise --
// matching rai's rule that work is tied to whichever hash a peer can
// check without waiting on the new block itself.
func (b *StateBlock) WorkSeed() []byte {
	if b.Previous == ([32]byte{}) {
		return b.Account[:]
	}
	return b.Previous[:]
}

// Work implements the workedBlock interface ledger.Verifier checks.
func (b *StateBlock) Work() Work { return b.WorkValue }

// Verify checks the embedded signature against Account. It does not
// check ledger-level validity (balance direction, frontier match) --
// that belongs to the state-transition layer spec.md keeps external.
func (b *StateBlock) Verify() error {
	if !ed25519.Verify(ed25519.PublicKey(b.Account[:]), b.hash[:], b.Signature[:]) {
		return fmt.Errorf("ledger: state block signature invalid")
	}
	return nil
}

// Serialize implements wire.Block: account, previous, representative,
// balance, link, signature, work, all fixed-width, in field order.
func (b *StateBlock) Serialize(w io.Writer) error {
	var buf [stateBlockWireSize]byte
	off := 0
	off += copy(buf[off:], b.Account[:])
	off += copy(buf[off:], b.Previous[:])
	off += copy(buf[off:], b.Representative[:])
	off += copy(buf[off:], b.Balance[:])
	off += copy(buf[off:], b.Link[:])
	off += copy(buf[off:], b.Signature[:])
	off += copy(buf[off:], b.WorkValue[:])
	_, err := w.Write(buf[:])
	return err
}

// DeserializeStateBlock reads a fixed stateBlockWireSize-byte body and
// recomputes the content hash; it does not verify the signature or work
// -- callers that need those call Verify / a WorkVerifier themselves, the
// same split wire.BlockCodec keeps between framing and validation.
func DeserializeStateBlock(r io.Reader) (*StateBlock, error) {
	var buf [stateBlockWireSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("ledger: short state block: %w", err)
	}

	b := &StateBlock{}
	off := 0
	off += copy(b.Account[:], buf[off:off+accountSize])
	off += copy(b.Previous[:], buf[off:off+accountSize])
	off += copy(b.Representative[:], buf[off:off+accountSize])
	off += copy(b.Balance[:], buf[off:off+balanceSize])
	off += copy(b.Link[:], buf[off:off+linkSize])
	off += copy(b.Signature[:], buf[off:off+signatureSize])
	copy(b.WorkValue[:], buf[off:off+workSize])

	b.hash = b.computeHash()
	return b, nil
}

// StateBlockCodec implements wire.BlockCodec for StateBlock only.
type StateBlockCodec struct{}

func (StateBlockCodec) Deserialize(r io.Reader, t wire.BlockType) (wire.Block, error) {
	if t != wire.BlockTypeState {
		return nil, fmt.Errorf("ledger: block type %s not supported, only state blocks", t)
	}
	return DeserializeStateBlock(r)
}
