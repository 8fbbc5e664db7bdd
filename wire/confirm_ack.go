package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const hashSize = 32

// ConfirmAck carries a vote: a representative's signed statement that a
// block (or list of blocks) should be confirmed.
type ConfirmAck struct {
	Header MessageHeader
	Vote   Vote
}

// NewConfirmAckHashes builds an outgoing confirm_ack whose vote covers a
// list of block hashes (header nibble set to not_a_block).
func NewConfirmAckHashes(network NetworkTag, vote Vote) *ConfirmAck {
	h := NewHeader(network, TypeConfirmAck)
	h.BlockTypeSet(BlockTypeNotABlock)
	return &ConfirmAck{Header: h, Vote: vote}
}

// NewConfirmAckBlock builds an outgoing confirm_ack whose vote covers a
// single full block (header nibble set to that block's type).
func NewConfirmAckBlock(network NetworkTag, blockType BlockType, vote Vote) *ConfirmAck {
	h := NewHeader(network, TypeConfirmAck)
	h.BlockTypeSet(blockType)
	return &ConfirmAck{Header: h, Vote: vote}
}

// DeserializeConfirmAck decodes account(32) + signature(64) + sequence(u64 LE),
// then either a hash list filling the rest of the datagram (block type
// not_a_block) or a single full block (any other block type), per
// spec.md 4.C. r must expose how many bytes remain so the hash-list case
// can tell when it has consumed the whole payload; the parser always
// hands confirm_ack a *bytes.Reader sized to exactly one datagram.
func DeserializeConfirmAck(r *bytes.Reader, header MessageHeader, blockCodec BlockCodec, voteCodec VoteCodec, verifier WorkVerifier, uniquer *VoteUniquer) (*ConfirmAck, error) {
	var account [32]byte
	var signature [64]byte
	if _, err := io.ReadFull(r, account[:]); err != nil {
		return nil, fmt.Errorf("confirm_ack account: %w", err)
	}
	if _, err := io.ReadFull(r, signature[:]); err != nil {
		return nil, fmt.Errorf("confirm_ack signature: %w", err)
	}
	var sequence uint64
	if err := binary.Read(r, binary.LittleEndian, &sequence); err != nil {
		return nil, fmt.Errorf("confirm_ack sequence: %w", err)
	}

	var vote Vote
	var err error
	if header.BlockType() == BlockTypeNotABlock {
		vote, err = deserializeVoteHashes(r, account, signature, sequence, voteCodec)
	} else {
		var block Block
		block, err = blockCodec.Deserialize(r, header.BlockType())
		if err == nil {
			if verifier != nil && !verifier.Sufficient(block) {
				return nil, ErrInsufficientWork
			}
			vote, err = voteCodec.DeserializeBlock(account, signature, sequence, block)
		}
	}
	if err != nil {
		return nil, err
	}

	if uniquer != nil {
		vote = uniquer.Unique(vote)
	}
	return &ConfirmAck{Header: header, Vote: vote}, nil
}

func deserializeVoteHashes(r *bytes.Reader, account [32]byte, signature [64]byte, sequence uint64, codec VoteCodec) (Vote, error) {
	remaining := r.Len()
	if remaining == 0 || remaining%hashSize != 0 {
		return nil, fmt.Errorf("confirm_ack: hash list length %d not a multiple of %d", remaining, hashSize)
	}

	count := remaining / hashSize
	hashes := make([][32]byte, count)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, hashes[i][:]); err != nil {
			return nil, fmt.Errorf("confirm_ack hash %d: %w", i, err)
		}
	}
	return codec.DeserializeHashes(account, signature, sequence, hashes)
}

func (c *ConfirmAck) Serialize(w io.Writer) error {
	if err := c.Header.Serialize(w); err != nil {
		return err
	}
	return c.Vote.Serialize(w)
}

func (c *ConfirmAck) Visit(v Visitor) { v.ConfirmAck(c) }

// Equal compares vote hash, not pointer identity, per spec.md 4.C.
func (c *ConfirmAck) Equal(o *ConfirmAck) bool {
	return o != nil && c.Vote.Hash() == o.Vote.Hash()
}
