package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/996BC/latticenet/identity"
	"github.com/996BC/latticenet/wire"
)

// Vote is a representative's signed statement that one or more blocks
// should be confirmed, per spec.md's confirm_ack. HashList is nil when
// Block is set and vice versa -- exactly one of the two wire shapes
// confirm_ack carries.
type Vote struct {
	AccountID [32]byte
	Signature [64]byte
	Sequence  uint64
	HashList  [][32]byte
	Block     *StateBlock

	hash [32]byte
}

func (v *Vote) computeHash() [32]byte {
	// The signature is not part of the hashed content: it is computed over
	// this hash, so Verify can check it.
	parts := [][]byte{v.AccountID[:], sequenceBytes(v.Sequence)}
	if v.Block != nil {
		h := v.Block.Hash()
		parts = append(parts, h[:])
	} else {
		for _, h := range v.HashList {
			parts = append(parts, h[:])
		}
	}
	return identity.Hash256(parts...)
}

func sequenceBytes(seq uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seq)
	return b[:]
}

// Hash implements wire.Vote.
func (v *Vote) Hash() [32]byte { return v.hash }

// Account implements wire.Vote.
func (v *Vote) Account() [32]byte { return v.AccountID }

// Serialize implements wire.Vote: account, signature, sequence, then
// either the hash list or the full block, matching what the caller built
// it with. wire's ConfirmAck.Serialize writes its header and then calls
// this for the vote body.
func (v *Vote) Serialize(w io.Writer) error {
	if _, err := w.Write(v.AccountID[:]); err != nil {
		return err
	}
	if _, err := w.Write(v.Signature[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.Sequence); err != nil {
		return err
	}
	if v.Block != nil {
		return v.Block.Serialize(w)
	}
	for _, h := range v.HashList {
		if _, err := w.Write(h[:]); err != nil {
			return err
		}
	}
	return nil
}

// Verify checks the vote's signature over its content hash against its
// claimed account. Ballot weight / quorum tallying is out of scope here,
// same as ledger as a whole.
func (v *Vote) Verify() error {
	if !ed25519.Verify(ed25519.PublicKey(v.AccountID[:]), v.hash[:], v.Signature[:]) {
		return fmt.Errorf("ledger: vote signature invalid")
	}
	return nil
}

// VoteCodec implements wire.VoteCodec against ledger's Vote/StateBlock.
type VoteCodec struct{}

func (VoteCodec) DeserializeHashes(account [32]byte, signature [64]byte, sequence uint64, hashes [][32]byte) (wire.Vote, error) {
	v := &Vote{AccountID: account, Signature: signature, Sequence: sequence, HashList: hashes}
	v.hash = v.computeHash()
	return v, nil
}

func (VoteCodec) DeserializeBlock(account [32]byte, signature [64]byte, sequence uint64, block wire.Block) (wire.Vote, error) {
	sb, ok := block.(*StateBlock)
	if !ok {
		return nil, fmt.Errorf("ledger: confirm_ack block must be a state block")
	}
	v := &Vote{AccountID: account, Signature: signature, Sequence: sequence, Block: sb}
	v.hash = v.computeHash()
	return v, nil
}
